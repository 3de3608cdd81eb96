package siteconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-docs/internal/locale"
)

// TitleSource supplies a display title for a site path when the config gives none.
type TitleSource interface {
	Title(sitePath string) (string, bool)
}

// TitleSourceFunc adapts ordinary functions to TitleSource.
type TitleSourceFunc func(string) (string, bool)

// Title implements TitleSource.
func (f TitleSourceFunc) Title(p string) (string, bool) { return f(p) }

// Option customises Parse behaviour.
type Option func(*options)

type options struct {
	titles TitleSource
}

// WithTitleSource fills missing group and document titles from src before the
// table is frozen.
func WithTitleSource(src TitleSource) Option {
	return func(o *options) {
		o.titles = src
	}
}

type localeDoc struct {
	Lang        string `yaml:"lang"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tag         string `yaml:"tag"`
}

type navDoc struct {
	Text string `yaml:"text"`
	Link string `yaml:"link"`
}

type groupDoc struct {
	Title    string      `yaml:"title"`
	Path     string      `yaml:"path"`
	Children []yaml.Node `yaml:"children"`
}

type childDoc struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

type themeLocaleDoc struct {
	SelectText string     `yaml:"selectText"`
	Label      string     `yaml:"label"`
	Nav        *[]navDoc  `yaml:"nav"`
	Sidebar    []groupDoc `yaml:"sidebar"`
}

type entry[T any] struct {
	prefix string
	value  T
}

// Load reads and validates the site config at path.
func Load(path string, opts ...Option) (*locale.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("siteconfig: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse reads a single YAML (or JSON) document describing locales and theme
// navigation, and returns the frozen locale table. Any ConfigError aborts the
// whole load.
func Parse(r io.Reader, opts ...Option) (*locale.Table, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	dec := yaml.NewDecoder(r)
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("siteconfig: empty document")
		}
		return nil, fmt.Errorf("siteconfig: decode: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, locale.NewConfigError(locale.ErrDuplicateTable, "", "", "source holds more than one document")
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("siteconfig: decode: %w", err)
	}

	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) == 1 {
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("siteconfig: top level must be a mapping")
	}

	localesNode, err := uniqueKey(top, "locales")
	if err != nil {
		return nil, err
	}
	themeNode, err := uniqueKey(top, "themeConfig")
	if err != nil {
		return nil, err
	}

	locales, err := decodePrefixed[localeDoc](localesNode)
	if err != nil {
		return nil, err
	}

	var globalNav []navDoc
	var themeLocales []entry[themeLocaleDoc]
	if themeNode != nil {
		if themeNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("siteconfig: themeConfig must be a mapping")
		}
		navNode, err := uniqueKey(themeNode, "nav")
		if err != nil {
			return nil, err
		}
		if navNode != nil {
			if err := navNode.Decode(&globalNav); err != nil {
				return nil, locale.NewConfigError(locale.ErrMalformedEntry, "", "", fmt.Sprintf("themeConfig.nav: %v", err))
			}
		}
		tlNode, err := uniqueKey(themeNode, "locales")
		if err != nil {
			return nil, err
		}
		if themeLocales, err = decodePrefixed[themeLocaleDoc](tlNode); err != nil {
			return nil, err
		}
	}

	if err := checkOrphans(locales, themeLocales); err != nil {
		return nil, err
	}

	theme := make(map[string]themeLocaleDoc, len(themeLocales))
	for _, tl := range themeLocales {
		theme[tl.prefix] = tl.value
	}

	b := locale.NewBuilder()
	for _, l := range locales {
		cfg, err := buildLocale(l.prefix, l.value, theme[l.prefix], globalNav, o.titles)
		if err != nil {
			return nil, err
		}
		if err := b.Register(cfg); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// uniqueKey returns the value node for key in m, or nil. A key declared twice is
// two competing tables, never "last one wins".
func uniqueKey(m *yaml.Node, key string) (*yaml.Node, error) {
	var found *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		if found != nil {
			return nil, locale.NewConfigError(locale.ErrDuplicateTable, "", "",
				fmt.Sprintf("key %q declared twice (lines %d and %d)", key, found.Line, m.Content[i+1].Line))
		}
		found = m.Content[i+1]
	}
	return found, nil
}

// decodePrefixed decodes a prefix-keyed mapping keeping declaration order.
func decodePrefixed[T any](m *yaml.Node) ([]entry[T], error) {
	if m == nil || (m.Kind == yaml.ScalarNode && m.Tag == "!!null") {
		return nil, nil
	}
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("siteconfig: locales must be a mapping (line %d)", m.Line)
	}
	seen := map[string]int{}
	out := make([]entry[T], 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		prefix := key.Value
		if line, dup := seen[prefix]; dup {
			return nil, locale.NewConfigError(locale.ErrDuplicatePrefix, prefix, "",
				fmt.Sprintf("declared at lines %d and %d", line, key.Line))
		}
		seen[prefix] = key.Line
		var v T
		if val.Kind != yaml.ScalarNode || val.Tag != "!!null" {
			if err := val.Decode(&v); err != nil {
				return nil, locale.NewConfigError(locale.ErrMalformedEntry, prefix, "", err.Error())
			}
		}
		out = append(out, entry[T]{prefix: prefix, value: v})
	}
	return out, nil
}

func checkOrphans(locales []entry[localeDoc], theme []entry[themeLocaleDoc]) error {
	inLocales := make(map[string]struct{}, len(locales))
	for _, l := range locales {
		inLocales[l.prefix] = struct{}{}
	}
	inTheme := make(map[string]struct{}, len(theme))
	for _, tl := range theme {
		inTheme[tl.prefix] = struct{}{}
		if _, ok := inLocales[tl.prefix]; !ok {
			return locale.NewConfigError(locale.ErrOrphanPrefix, tl.prefix, "", "themeConfig.locales entry has no locales definition")
		}
	}
	for _, l := range locales {
		if _, ok := inTheme[l.prefix]; !ok {
			return locale.NewConfigError(locale.ErrOrphanPrefix, l.prefix, "", "locales entry has no themeConfig.locales definition")
		}
	}
	return nil
}

func buildLocale(prefix string, ld localeDoc, tl themeLocaleDoc, globalNav []navDoc, titles TitleSource) (locale.LocaleConfig, error) {
	tag := locale.TagForPrefix(prefix)
	if raw := strings.TrimSpace(ld.Tag); raw != "" {
		parsed, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
		if err != nil {
			return locale.LocaleConfig{}, locale.NewConfigError(locale.ErrMalformedEntry, prefix, "", fmt.Sprintf("tag %q: %v", raw, err))
		}
		tag = parsed
	}

	navSrc := globalNav
	if tl.Nav != nil {
		navSrc = *tl.Nav
	}
	nav := make([]locale.NavLink, 0, len(navSrc))
	for _, n := range navSrc {
		nav = append(nav, locale.NavLink{Text: n.Text, Link: n.Link})
	}

	groups := make([]locale.SidebarGroup, 0, len(tl.Sidebar))
	for _, gd := range tl.Sidebar {
		g := locale.SidebarGroup{Title: gd.Title, Path: gd.Path}
		if g.Title == "" && titles != nil {
			g.Title, _ = titles.Title(g.Path)
		}
		for i := range gd.Children {
			child, err := decodeChild(&gd.Children[i])
			if err != nil {
				return locale.LocaleConfig{}, locale.NewConfigError(locale.ErrMalformedEntry, prefix, gd.Title, fmt.Sprintf("child %d: %v", i, err))
			}
			if child.Kind == locale.EntryDocument && child.Title == "" && titles != nil {
				child.Title, _ = titles.Title(child.Path)
			}
			g.Children = append(g.Children, child)
		}
		groups = append(groups, g)
	}

	return locale.LocaleConfig{
		Locale: locale.Locale{
			Prefix:      prefix,
			Lang:        ld.Lang,
			Title:       ld.Title,
			Description: ld.Description,
			Tag:         tag,
		},
		Nav:        nav,
		Sidebar:    groups,
		SelectText: tl.SelectText,
		Label:      tl.Label,
	}, nil
}

// decodeChild maps "/" to the group's index, any other string to an untitled
// document, and {path, title} to a document.
func decodeChild(n *yaml.Node) (locale.SidebarEntry, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag != "!!str" {
			return locale.SidebarEntry{}, fmt.Errorf("line %d: expected a path string, got %s", n.Line, n.Tag)
		}
		if n.Value == "/" {
			return locale.IndexEntry(), nil
		}
		return locale.DocumentEntry(n.Value, ""), nil
	case yaml.MappingNode:
		var c childDoc
		if err := n.Decode(&c); err != nil {
			return locale.SidebarEntry{}, fmt.Errorf("line %d: %v", n.Line, err)
		}
		if c.Path == "" {
			return locale.SidebarEntry{}, fmt.Errorf("line %d: entry has no path", n.Line)
		}
		if c.Path == "/" {
			e := locale.IndexEntry()
			e.Title = c.Title
			return e, nil
		}
		return locale.DocumentEntry(c.Path, c.Title), nil
	default:
		return locale.SidebarEntry{}, fmt.Errorf("line %d: expected a path string or {path, title}", n.Line)
	}
}
