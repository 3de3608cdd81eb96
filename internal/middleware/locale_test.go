package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-docs/internal/locale"
	"finitefield.org/hanko-docs/internal/nav"
)

func testHolder(t *testing.T) *nav.Holder {
	t.Helper()
	table, err := locale.NewTable(
		locale.LocaleConfig{
			Locale:  locale.Locale{Prefix: "/en_us/", Lang: "English", Tag: locale.TagForPrefix("/en_us/")},
			Sidebar: []locale.SidebarGroup{{Title: "Home", Path: "/en_us/"}},
		},
		locale.LocaleConfig{
			Locale:  locale.Locale{Prefix: "/zh_hans/", Lang: "简体中文", Tag: locale.TagForPrefix("/zh_hans/")},
			Sidebar: []locale.SidebarGroup{{Title: "首页", Path: "/zh_hans/"}},
		},
	)
	require.NoError(t, err)
	return nav.NewHolder(nav.NewResolver(table))
}

func TestLocaleStoresResolvedLocale(t *testing.T) {
	t.Parallel()

	var got locale.Locale
	var found, pinned bool
	h := Locale(testHolder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = LocaleFromContext(r.Context())
		_, pinned = ResolverFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav?path=/zh_hans/1_HttpClient.md", nil))
	require.True(t, found)
	require.True(t, pinned)
	require.Equal(t, "/zh_hans/", got.Prefix)
	require.Equal(t, "zh-Hans", rec.Header().Get("Content-Language"))
}

func TestLocaleUsesURLPathWithoutQuery(t *testing.T) {
	t.Parallel()

	var got locale.Locale
	h := Locale(testHolder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = LocaleFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/en_us/guide", nil))
	require.Equal(t, "/en_us/", got.Prefix)
	require.Equal(t, "en-US", rec.Header().Get("Content-Language"))
}

func TestLocaleLeavesUnmatchedPathEmpty(t *testing.T) {
	t.Parallel()

	var found bool
	h := Locale(testHolder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = LocaleFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav?path=/", nil))
	require.False(t, found)
	require.Empty(t, rec.Header().Get("Content-Language"))
}

func TestVaryLocale(t *testing.T) {
	t.Parallel()

	h := VaryLocale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "Accept-Language", rec.Header().Get("Vary"))
}
