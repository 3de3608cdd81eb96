package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// RootPrefix is the prefix of the default locale, used when nothing more specific matches.
const RootPrefix = "/"

// Locale identifies one language variant of the docs site.
type Locale struct {
	Prefix      string       // e.g. "/en_us/"
	Lang        string       // display language, e.g. "English"
	Title       string
	Description string
	Tag         language.Tag // BCP 47 tag used for Content-Language and negotiation
}

// IsRoot reports whether the locale is the "/" fallback.
func (l Locale) IsRoot() bool { return l.Prefix == RootPrefix }

// NavLink is a top-level navigation bar entry.
type NavLink struct {
	Text string
	Link string
}

// External reports whether the link points off-site.
func (n NavLink) External() bool {
	return strings.HasPrefix(n.Link, "http://") || strings.HasPrefix(n.Link, "https://")
}

// EntryKind tags the SidebarEntry variant.
type EntryKind int

const (
	// EntryIndex references the owning group's own index page.
	EntryIndex EntryKind = iota
	// EntryDocument references a specific document.
	EntryDocument
)

// String returns the lowercase name of the kind.
func (k EntryKind) String() string {
	switch k {
	case EntryIndex:
		return "index"
	case EntryDocument:
		return "document"
	default:
		return "unknown"
	}
}

// SidebarEntry is a child of a SidebarGroup.
type SidebarEntry struct {
	Kind  EntryKind
	Path  string // empty for EntryIndex
	Title string // optional
}

// IndexEntry returns an entry pointing at the group's index page.
func IndexEntry() SidebarEntry { return SidebarEntry{Kind: EntryIndex} }

// DocumentEntry returns an entry pointing at path with an optional title.
func DocumentEntry(path, title string) SidebarEntry {
	return SidebarEntry{Kind: EntryDocument, Path: path, Title: title}
}

// Href returns the link the entry renders to inside group.
func (e SidebarEntry) Href(group SidebarGroup) string {
	if e.Kind == EntryIndex {
		return group.Path
	}
	return e.Path
}

// SidebarGroup is a named section of the sidebar. Children order is significant.
type SidebarGroup struct {
	Title    string
	Path     string
	Children []SidebarEntry
}

// LocaleConfig is the navigation owned by one locale.
type LocaleConfig struct {
	Locale  Locale
	Nav     []NavLink
	Sidebar []SidebarGroup

	// SelectText captions the language switcher; Label names this locale in it.
	SelectText string
	Label      string
}

func (c LocaleConfig) clone() LocaleConfig {
	out := c
	out.Nav = append([]NavLink(nil), c.Nav...)
	out.Sidebar = cloneGroups(c.Sidebar)
	return out
}

func cloneGroups(groups []SidebarGroup) []SidebarGroup {
	if groups == nil {
		return nil
	}
	out := make([]SidebarGroup, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Children = append([]SidebarEntry(nil), g.Children...)
	}
	return out
}

// TagForPrefix derives a language tag from a prefix such as "/zh_hans/".
// The root prefix and unparseable segments yield language.Und.
func TagForPrefix(prefix string) language.Tag {
	seg := strings.Trim(prefix, "/")
	if seg == "" {
		return language.Und
	}
	if i := strings.IndexByte(seg, '/'); i != -1 {
		seg = seg[:i]
	}
	tag, err := language.Parse(strings.ReplaceAll(seg, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}
