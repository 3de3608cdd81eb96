package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleConfig(prefix string) LocaleConfig {
	return LocaleConfig{
		Locale: Locale{Prefix: prefix, Lang: "English", Title: "libfv", Tag: TagForPrefix(prefix)},
		Nav:    []NavLink{{Text: "Github", Link: "https://github.com/fawdlstty/libfv"}},
		Sidebar: []SidebarGroup{
			{Title: "Home", Path: prefix, Children: nil},
			{Title: "Startup", Path: prefix + "0_startup/", Children: []SidebarEntry{IndexEntry()}},
		},
	}
}

func TestRegisterPreservesOrder(t *testing.T) {
	t.Parallel()

	table, err := NewTable(sampleConfig("/zh_hans/"), sampleConfig("/"), sampleConfig("/en_us/"))
	require.NoError(t, err)

	var prefixes []string
	for _, cfg := range table.All() {
		prefixes = append(prefixes, cfg.Locale.Prefix)
	}
	require.Equal(t, []string{"/zh_hans/", "/", "/en_us/"}, prefixes)
	require.Equal(t, 1, table.Position("/"))
	require.Equal(t, -1, table.Position("/fr/"))
	require.Equal(t, 3, table.Len())
}

func TestRegisterRejectsDuplicatePrefix(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	require.NoError(t, b.Register(sampleConfig("/en_us/")))
	err := b.Register(sampleConfig("/en_us/"))
	require.ErrorIs(t, err, ErrDuplicatePrefix)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "/en_us/", cfgErr.Prefix)
}

func TestRegisterRejectsMalformedPrefix(t *testing.T) {
	t.Parallel()

	for _, prefix := range []string{"", "en_us/", "/en_us", "//", "/a//b/", "/a b/"} {
		prefix := prefix
		t.Run(prefix, func(t *testing.T) {
			t.Parallel()
			err := NewBuilder().Register(sampleConfig(prefix))
			require.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}

func TestRegisterRejectsMalformedSidebarPaths(t *testing.T) {
	t.Parallel()

	cases := map[string]SidebarEntry{
		"empty":    DocumentEntry("", "x"),
		"relative": DocumentEntry("guide.md", ""),
		"protocol": DocumentEntry("https://example.com/a", ""),
		"query":    DocumentEntry("/a?b=1", ""),
		"fragment": DocumentEntry("/a#top", ""),
		"parent":   DocumentEntry("/a/../b", ""),
		"unknown":  {Kind: EntryKind(9), Path: "/a"},
	}
	for name, entry := range cases {
		name, entry := name, entry
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := sampleConfig("/en_us/")
			cfg.Sidebar = append(cfg.Sidebar, SidebarGroup{
				Title:    "HTTP client",
				Path:     "/en_us/1_HttpClient/",
				Children: []SidebarEntry{entry},
			})
			err := NewBuilder().Register(cfg)
			require.ErrorIs(t, err, ErrMalformedEntry)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			require.Equal(t, "/en_us/", cfgErr.Prefix)
			require.Equal(t, "HTTP client", cfgErr.Group)
			require.Contains(t, err.Error(), `group "HTTP client"`)
		})
	}
}

func TestRegisterAllowsEmptyChildren(t *testing.T) {
	t.Parallel()

	cfg := sampleConfig("/")
	cfg.Sidebar = []SidebarGroup{{Title: "Home", Path: "/"}}
	_, err := NewTable(cfg)
	require.NoError(t, err)
}

func TestRegisterValidatesNavLinks(t *testing.T) {
	t.Parallel()

	ok := sampleConfig("/en_us/")
	ok.Nav = append(ok.Nav, NavLink{Text: "Guide", Link: "/en_us/guide/"})
	_, err := NewTable(ok)
	require.NoError(t, err)

	for _, link := range []NavLink{
		{Text: "", Link: "/x/"},
		{Text: "Bad", Link: "mailto:someone@example.com"},
		{Text: "No host", Link: "https:///path"},
		{Text: "Bad host", Link: "https://exa mple.com/"},
	} {
		cfg := sampleConfig("/en_us/")
		cfg.Nav = []NavLink{link}
		_, err := NewTable(cfg)
		require.ErrorIs(t, err, ErrMalformedEntry, "link %+v", link)
	}
}

func TestTableReturnsCopies(t *testing.T) {
	t.Parallel()

	table, err := NewTable(sampleConfig("/en_us/"))
	require.NoError(t, err)

	all := table.All()
	all[0].Sidebar[1].Children[0] = DocumentEntry("/mutated", "")
	all[0].Nav[0].Text = "mutated"

	cfg, ok := table.Lookup("/en_us/")
	require.True(t, ok)
	require.Equal(t, EntryIndex, cfg.Sidebar[1].Children[0].Kind)
	require.Equal(t, "Github", cfg.Nav[0].Text)
}

func TestBuilderInputIsNotAliased(t *testing.T) {
	t.Parallel()

	cfg := sampleConfig("/en_us/")
	table, err := NewTable(cfg)
	require.NoError(t, err)

	cfg.Sidebar[0].Title = "changed after register"
	groups, ok := table.Sidebar("/en_us/")
	require.True(t, ok)
	require.Equal(t, "Home", groups[0].Title)
}

func TestTagForPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]language.Tag{
		"/":              language.Und,
		"/en_us/":        language.AmericanEnglish,
		"/zh_hans/":      language.SimplifiedChinese,
		"/zh/":           language.Chinese,
		"/zh_hans/docs/": language.SimplifiedChinese,
		"/0_startup/":    language.Und,
	}
	for prefix, want := range cases {
		require.Equal(t, want.String(), TagForPrefix(prefix).String(), prefix)
	}
}

func TestEntryHref(t *testing.T) {
	t.Parallel()

	g := SidebarGroup{Title: "Startup", Path: "/0_startup/"}
	require.Equal(t, "/0_startup/", IndexEntry().Href(g))
	require.Equal(t, "/0_startup/build", DocumentEntry("/0_startup/build", "").Href(g))
	require.Equal(t, "index", EntryIndex.String())
	require.Equal(t, "document", EntryDocument.String())
}
