package handlers

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-docs/internal/httpx"
	"finitefield.org/hanko-docs/internal/locale"
	mw "finitefield.org/hanko-docs/internal/middleware"
	"finitefield.org/hanko-docs/internal/nav"
	"finitefield.org/hanko-docs/internal/observability"
)

// LocaleView is the JSON shape of a locale.
type LocaleView struct {
	Prefix      string `json:"prefix"`
	Lang        string `json:"lang"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// LanguagesView feeds the language switcher.
type LanguagesView struct {
	SelectText string               `json:"selectText,omitempty"`
	Options    []nav.LanguageOption `json:"options"`
}

// NavResponse is the payload of GET /api/nav.
type NavResponse struct {
	Path        string              `json:"path"`
	Locale      LocaleView          `json:"locale"`
	Nav         []nav.RenderedLink  `json:"nav"`
	Sidebar     []nav.RenderedGroup `json:"sidebar"`
	Breadcrumbs []nav.Crumb         `json:"breadcrumbs"`
	Languages   LanguagesView       `json:"languages"`
}

func localeView(l locale.Locale) LocaleView {
	v := LocaleView{
		Prefix:      l.Prefix,
		Lang:        l.Lang,
		Title:       l.Title,
		Description: l.Description,
	}
	if !l.Tag.IsRoot() {
		v.Tag = l.Tag.String()
	}
	return v
}

type navAPI struct {
	metrics *observability.NavMetrics
}

// nav resolves the document path to its locale, nav bar and sidebar.
func (a navAPI) nav(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	resolver, ok := mw.ResolverFromContext(ctx)
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("resolver_unavailable", "navigation is not loaded", http.StatusServiceUnavailable))
		return
	}
	docPath := mw.DocumentPath(r)

	res, err := resolver.Resolve(docPath)
	if err != nil {
		a.metrics.Resolution(ctx, "", resolutionOutcome(err))
		writeResolutionError(w, r, resolver, docPath, err)
		return
	}
	a.metrics.Resolution(ctx, res.Locale.Prefix, "ok")
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("docs.path", docPath),
		attribute.String("docs.locale", res.Locale.Prefix),
	)

	cfg, _ := resolver.Table().Lookup(res.Locale.Prefix)
	resp := NavResponse{
		Path:        docPath,
		Locale:      localeView(res.Locale),
		Nav:         nav.BuildNav(res.Nav, docPath),
		Sidebar:     nav.MarkActive(res.Sidebar, docPath),
		Breadcrumbs: nav.Breadcrumbs(res, docPath),
		Languages: LanguagesView{
			SelectText: cfg.SelectText,
			Options:    resolver.LanguageOptions(docPath),
		},
	}
	logger.Debug("nav resolved", zap.String("doc_path", docPath), zap.String("locale", res.Locale.Prefix))
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// locales lists the registered locales in registration order.
func (a navAPI) locales(w http.ResponseWriter, r *http.Request) {
	resolver, ok := mw.ResolverFromContext(r.Context())
	if !ok {
		httpx.WriteError(r.Context(), w, httpx.NewError("resolver_unavailable", "navigation is not loaded", http.StatusServiceUnavailable))
		return
	}
	locales := resolver.Table().Locales()
	out := make([]LocaleView, 0, len(locales))
	for _, l := range locales {
		out = append(out, localeView(l))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"locales": out})
}

// writeResolutionError reports NoLocaleMatch as a per-request 404 with a
// negotiated suggestion; anything else is a defect and logged as such.
func writeResolutionError(w http.ResponseWriter, r *http.Request, resolver *nav.Resolver, docPath string, err error) {
	ctx := r.Context()
	if errors.Is(err, nav.ErrNoLocaleMatch) {
		details := map[string]any{"path": docPath}
		if loc, ok := resolver.Negotiate(r.Header.Get("Accept-Language")); ok {
			details["suggested"] = localeView(loc)
		}
		httpx.WriteError(ctx, w, httpx.NewError("no_locale_match", err.Error(), http.StatusNotFound).WithDetails(details))
		return
	}
	observability.FromContext(ctx).Error("nav resolution failed", zap.String("doc_path", docPath), zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
}

func resolutionOutcome(err error) string {
	if errors.Is(err, nav.ErrNoLocaleMatch) {
		return "no_locale_match"
	}
	return "error"
}
