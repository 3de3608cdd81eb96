package nav

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"finitefield.org/hanko-docs/internal/locale"
)

var (
	// ErrNoLocaleMatch is returned when no prefix (and no root fallback) matches a path.
	ErrNoLocaleMatch = errors.New("no locale matches path")
	// ErrUnknownLocale is returned when a caller passes a locale the table does not hold.
	ErrUnknownLocale = errors.New("unknown locale")
)

// ResolutionError carries the path or prefix a query failed on.
type ResolutionError struct {
	Kind   error
	Path   string
	Prefix string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Prefix != "" {
		return fmt.Sprintf("nav: %v: %q", e.Kind, e.Prefix)
	}
	return fmt.Sprintf("nav: %v: %q", e.Kind, e.Path)
}

// Unwrap exposes the sentinel kind for errors.Is.
func (e *ResolutionError) Unwrap() error { return e.Kind }

// Result is the tuple handed to the rendering pipeline for one request path.
type Result struct {
	Locale  locale.Locale
	Nav     []locale.NavLink
	Sidebar []locale.SidebarGroup
}

// Resolver answers path→locale and locale→sidebar queries over a frozen table.
// All methods are pure and safe for concurrent use.
type Resolver struct {
	table   *locale.Table
	matcher language.Matcher
	tagged  []locale.Locale
}

// NewResolver wraps table. The table must not be nil.
func NewResolver(table *locale.Table) *Resolver {
	r := &Resolver{table: table}
	var tags []language.Tag
	for _, l := range table.Locales() {
		if l.Tag.IsRoot() {
			continue
		}
		tags = append(tags, l.Tag)
		r.tagged = append(r.tagged, l)
	}
	if len(tags) > 0 {
		r.matcher = language.NewMatcher(tags)
	}
	return r
}

// Table returns the underlying locale table.
func (r *Resolver) Table() *locale.Table { return r.table }

// ResolveLocale picks the locale with the longest prefix matching requestPath on
// a segment boundary. Equal lengths resolve to the earliest registered locale.
// Without a match the root locale is used when registered.
func (r *Resolver) ResolveLocale(requestPath string) (locale.Locale, error) {
	p := normalizePath(requestPath)

	var (
		best  locale.Locale
		found bool
		root  locale.Locale
		hasRt bool
	)
	for _, l := range r.table.Locales() {
		if l.IsRoot() {
			if !hasRt {
				root, hasRt = l, true
			}
			continue
		}
		if !prefixMatches(l.Prefix, p) {
			continue
		}
		// strictly longer only, so the earlier registration keeps a tie
		if !found || len(l.Prefix) > len(best.Prefix) {
			best, found = l, true
		}
	}
	if found {
		return best, nil
	}
	if hasRt {
		return root, nil
	}
	return locale.Locale{}, &ResolutionError{Kind: ErrNoLocaleMatch, Path: requestPath}
}

// SidebarFor returns the sidebar declared for loc, in declaration order.
// requestPath is accepted for page-scoped filtering later and is ignored today.
func (r *Resolver) SidebarFor(loc locale.Locale, requestPath string) ([]locale.SidebarGroup, error) {
	_ = requestPath
	groups, ok := r.table.Sidebar(loc.Prefix)
	if !ok {
		return nil, &ResolutionError{Kind: ErrUnknownLocale, Prefix: loc.Prefix}
	}
	return groups, nil
}

// NavFor returns the nav links declared for loc.
func (r *Resolver) NavFor(loc locale.Locale) ([]locale.NavLink, error) {
	cfg, ok := r.table.Lookup(loc.Prefix)
	if !ok {
		return nil, &ResolutionError{Kind: ErrUnknownLocale, Prefix: loc.Prefix}
	}
	return cfg.Nav, nil
}

// Resolve returns the locale, nav links and sidebar for requestPath.
func (r *Resolver) Resolve(requestPath string) (Result, error) {
	loc, err := r.ResolveLocale(requestPath)
	if err != nil {
		return Result{}, err
	}
	cfg, ok := r.table.Lookup(loc.Prefix)
	if !ok {
		return Result{}, &ResolutionError{Kind: ErrUnknownLocale, Prefix: loc.Prefix}
	}
	return Result{Locale: cfg.Locale, Nav: cfg.Nav, Sidebar: cfg.Sidebar}, nil
}

// Negotiate picks the locale best matching an Accept-Language header.
// Locales without a tag are never chosen. The bool is false when the header
// names nothing the site offers.
func (r *Resolver) Negotiate(acceptLanguage string) (locale.Locale, bool) {
	if r.matcher == nil || strings.TrimSpace(acceptLanguage) == "" {
		return locale.Locale{}, false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return locale.Locale{}, false
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return locale.Locale{}, false
	}
	return r.tagged[idx], true
}

// prefixMatches reports whether prefix (always slash-terminated) covers p.
// "/zh_hans" is treated as the index of "/zh_hans/".
func prefixMatches(prefix, p string) bool {
	if strings.HasPrefix(p, prefix) {
		return true
	}
	return p+"/" == prefix
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i != -1 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
