package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/config"
	"finitefield.org/hanko-docs/internal/docs"
	"finitefield.org/hanko-docs/internal/handlers"
	"finitefield.org/hanko-docs/internal/locale"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
	"finitefield.org/hanko-docs/internal/siteconfig"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var (
		addr  string
		check bool
	)
	flag.StringVar(&cfg.Site.ConfigPath, "config", cfg.Site.ConfigPath, "site navigation config (YAML or JSON)")
	flag.StringVar(&cfg.Site.DocsDir, "docs", cfg.Site.DocsDir, "Markdown sources used to fill missing sidebar titles")
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.BoolVar(&check, "check", false, "validate the site config and exit")
	flag.Parse()

	baseLogger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("docnav")

	table, err := loadTable(cfg.Site, logger)
	if err != nil {
		logConfigError(logger, cfg.Site.ConfigPath, err)
		_ = baseLogger.Sync()
		os.Exit(1)
	}
	if check {
		logger.Info("site config ok", zap.String("config", cfg.Site.ConfigPath), zap.Int("locales", table.Len()))
		return
	}

	metrics := observability.NewNavMetrics(nil, logger)
	holder := nav.NewHolder(nav.NewResolver(table))
	router := handlers.NewRouter(holder, logger, metrics)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)
	go func() {
		for range reload {
			ok := reloadTable(holder, cfg.Site, logger)
			metrics.Reload(ctx, ok)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("starting server", zap.Int("locales", table.Len()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	sig := <-shutdown
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadTable reads the site config, filling untitled sidebar entries from the
// Markdown sources when a docs directory is configured.
func loadTable(site config.SiteConfig, logger *zap.Logger) (*locale.Table, error) {
	var opts []siteconfig.Option
	if site.DocsDir != "" {
		opts = append(opts, siteconfig.WithTitleSource(docs.NewSource(site.DocsDir, logger.Named("docs"))))
	}
	return siteconfig.Load(site.ConfigPath, opts...)
}

// reloadTable publishes a freshly loaded table. A bad config keeps the current
// table in service.
func reloadTable(holder *nav.Holder, site config.SiteConfig, logger *zap.Logger) bool {
	table, err := loadTable(site, logger)
	if err != nil {
		logConfigError(logger.With(zap.Bool("reload", true)), site.ConfigPath, err)
		return false
	}
	previous := holder.Store(nav.NewResolver(table))
	fields := []zap.Field{zap.Int("locales", table.Len())}
	if previous != nil {
		fields = append(fields, zap.Int("previous_locales", previous.Table().Len()))
	}
	logger.Info("site config reloaded", fields...)
	return true
}

func logConfigError(logger *zap.Logger, path string, err error) {
	fields := []zap.Field{zap.String("config", path), zap.Error(err)}
	var cfgErr *locale.ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Prefix != "" {
			fields = append(fields, zap.String("locale", cfgErr.Prefix))
		}
		if cfgErr.Group != "" {
			fields = append(fields, zap.String("group", cfgErr.Group))
		}
	}
	logger.Error("invalid site config", fields...)
}
