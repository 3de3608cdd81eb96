package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/httpx"
	mw "finitefield.org/hanko-docs/internal/middleware"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
)

// NewRouter wires the navigation API on top of the currently published
// resolver in holder. metrics may be nil.
func NewRouter(holder *nav.Holder, logger *zap.Logger, metrics *observability.NavMetrics) http.Handler {
	api := navAPI{metrics: metrics}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware)
	r.Use(observability.RequestLoggerMiddleware(logger))
	r.Use(observability.RecoveryMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.Locale(holder))

	r.Get("/healthz", health)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.VaryLocale)
		r.Get("/nav", api.nav)
		r.Get("/locales", api.locales)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, httpx.NewError("not_found", "resource not found", http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(r.Context(), w, httpx.NewError("method_not_allowed", "method not allowed", http.StatusMethodNotAllowed))
	})
	return r
}
