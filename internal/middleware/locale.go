package middleware

import (
	"context"
	"net/http"

	"finitefield.org/hanko-docs/internal/locale"
	"finitefield.org/hanko-docs/internal/nav"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyLocale   ctxKey = "locale"
	ctxKeyResolver ctxKey = "resolver"
)

// PathParam names the query parameter carrying the document path being resolved.
const PathParam = "path"

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale pins the currently published resolver for the request and stores the
// locale for the requested document path. The path comes from the "path" query
// parameter, else the URL path. An unmatched path leaves no locale on the
// context; handlers decide how to report it.
func Locale(holder *nav.Holder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolver := holder.Load()
			ctx := context.WithValue(r.Context(), ctxKeyResolver, resolver)
			docPath := DocumentPath(r)
			if loc, err := resolver.ResolveLocale(docPath); err == nil {
				ctx = context.WithValue(ctx, ctxKeyLocale, loc)
				// surface Content-Language
				if !loc.Tag.IsRoot() {
					w.Header().Set("Content-Language", loc.Tag.String())
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DocumentPath returns the document path a request asks about.
func DocumentPath(r *http.Request) string {
	if p := r.URL.Query().Get(PathParam); p != "" {
		return p
	}
	return r.URL.Path
}

// LocaleFromContext returns the locale resolved by Locale.
func LocaleFromContext(ctx context.Context) (locale.Locale, bool) {
	loc, ok := ctx.Value(ctxKeyLocale).(locale.Locale)
	return loc, ok
}

// ResolverFromContext returns the resolver pinned by Locale, so one request
// never observes two tables across a reload.
func ResolverFromContext(ctx context.Context) (*nav.Resolver, bool) {
	r, ok := ctx.Value(ctxKeyResolver).(*nav.Resolver)
	return r, ok && r != nil
}
