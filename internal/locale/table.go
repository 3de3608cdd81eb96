package locale

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Table is the immutable registry of locales. It is safe for concurrent use
// because nothing can mutate it after Build.
type Table struct {
	configs []LocaleConfig
	index   map[string]int
}

// Builder registers locales in order and freezes them into a Table.
// A Builder is not safe for concurrent use.
type Builder struct {
	configs []LocaleConfig
	index   map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: map[string]int{}}
}

// Register validates cfg and appends it. Registration order is the
// tie-break order used during resolution.
func (b *Builder) Register(cfg LocaleConfig) error {
	prefix := cfg.Locale.Prefix
	if err := validatePrefix(prefix); err != nil {
		return err
	}
	if _, dup := b.index[prefix]; dup {
		return configErr(ErrDuplicatePrefix, prefix, "", "prefix already registered")
	}
	for _, link := range cfg.Nav {
		if err := validateNavLink(prefix, link); err != nil {
			return err
		}
	}
	for _, g := range cfg.Sidebar {
		if err := validateGroup(prefix, g); err != nil {
			return err
		}
	}
	b.index[prefix] = len(b.configs)
	b.configs = append(b.configs, cfg.clone())
	return nil
}

// Build freezes the registered locales. The Builder must not be reused afterwards.
func (b *Builder) Build() *Table {
	t := &Table{
		configs: b.configs,
		index:   b.index,
	}
	b.configs = nil
	b.index = map[string]int{}
	return t
}

// NewTable registers configs in order and returns the frozen table.
func NewTable(configs ...LocaleConfig) (*Table, error) {
	b := NewBuilder()
	for _, cfg := range configs {
		if err := b.Register(cfg); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// All returns the registered locale configs in registration order.
func (t *Table) All() []LocaleConfig {
	if t == nil {
		return nil
	}
	out := make([]LocaleConfig, len(t.configs))
	for i, c := range t.configs {
		out[i] = c.clone()
	}
	return out
}

// Locales returns the registered locales in registration order.
func (t *Table) Locales() []Locale {
	if t == nil {
		return nil
	}
	out := make([]Locale, len(t.configs))
	for i, c := range t.configs {
		out[i] = c.Locale
	}
	return out
}

// Len returns the number of registered locales.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.configs)
}

// Lookup returns the config registered under prefix.
func (t *Table) Lookup(prefix string) (LocaleConfig, bool) {
	if t == nil {
		return LocaleConfig{}, false
	}
	i, ok := t.index[prefix]
	if !ok {
		return LocaleConfig{}, false
	}
	return t.configs[i].clone(), true
}

// Sidebar returns the groups declared for prefix without copying the nav links.
func (t *Table) Sidebar(prefix string) ([]SidebarGroup, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[prefix]
	if !ok {
		return nil, false
	}
	return cloneGroups(t.configs[i].Sidebar), true
}

// Position returns the registration index of prefix, or -1.
func (t *Table) Position(prefix string) int {
	if t == nil {
		return -1
	}
	if i, ok := t.index[prefix]; ok {
		return i
	}
	return -1
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return configErr(ErrMalformedEntry, prefix, "", "prefix is empty")
	case !strings.HasPrefix(prefix, "/") || !strings.HasSuffix(prefix, "/"):
		return configErr(ErrMalformedEntry, prefix, "", "prefix must begin and end with /")
	case strings.Contains(prefix, "//"):
		return configErr(ErrMalformedEntry, prefix, "", "prefix contains an empty segment")
	}
	if err := checkPath(prefix); err != nil {
		return configErr(ErrMalformedEntry, prefix, "", "prefix: %v", err)
	}
	return nil
}

func validateGroup(prefix string, g SidebarGroup) error {
	if err := checkPath(g.Path); err != nil {
		return configErr(ErrMalformedEntry, prefix, g.Title, "group path: %v", err)
	}
	for i, child := range g.Children {
		switch child.Kind {
		case EntryIndex:
		case EntryDocument:
			if err := checkPath(child.Path); err != nil {
				return configErr(ErrMalformedEntry, prefix, g.Title, "child %d: %v", i, err)
			}
		default:
			return configErr(ErrMalformedEntry, prefix, g.Title, "child %d: unknown entry kind %d", i, child.Kind)
		}
	}
	return nil
}

func validateNavLink(prefix string, link NavLink) error {
	if strings.TrimSpace(link.Text) == "" {
		return configErr(ErrMalformedEntry, prefix, "", "nav link %q has no text", link.Link)
	}
	if !link.External() {
		if err := checkPath(link.Link); err != nil {
			return configErr(ErrMalformedEntry, prefix, "", "nav link %q: %v", link.Text, err)
		}
		return nil
	}
	u, err := url.Parse(link.Link)
	if err != nil {
		return configErr(ErrMalformedEntry, prefix, "", "nav link %q: %v", link.Text, err)
	}
	if u.Hostname() == "" {
		return configErr(ErrMalformedEntry, prefix, "", "nav link %q: missing host", link.Text)
	}
	if _, err := idna.Lookup.ToASCII(u.Hostname()); err != nil {
		return configErr(ErrMalformedEntry, prefix, "", "nav link %q: invalid host: %v", link.Text, err)
	}
	return nil
}

// checkPath accepts site-relative paths: a leading slash, no scheme, query,
// fragment, whitespace or ".." segment.
func checkPath(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("path %q must begin with /", p)
	}
	if strings.HasPrefix(p, "//") || strings.Contains(p, "://") {
		return fmt.Errorf("path %q must not carry a protocol or host", p)
	}
	if strings.ContainsAny(p, "?#") {
		return fmt.Errorf("path %q must not carry a query or fragment", p)
	}
	if strings.ContainsAny(p, " \t\r\n\\") {
		return fmt.Errorf("path %q contains whitespace or backslash", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return fmt.Errorf("path %q must not contain ..", p)
		}
	}
	return nil
}
