package nav

import (
    "path"
    "strings"

    "finitefield.org/hanko-docs/internal/locale"
)

// RenderedLink is a view model for a top-level nav entry.
type RenderedLink struct {
    Href     string `json:"href"`
    Text     string `json:"text"`
    External bool   `json:"external,omitempty"`
    Active   bool   `json:"active,omitempty"`
}

// RenderedEntry is a view model for one sidebar child.
type RenderedEntry struct {
    Kind   string `json:"kind"`
    Href   string `json:"href"`
    Title  string `json:"title,omitempty"`
    Active bool   `json:"active,omitempty"`
}

// RenderedGroup is a view model for a sidebar group.
type RenderedGroup struct {
    Title    string          `json:"title"`
    Href     string          `json:"href"`
    Active   bool            `json:"active,omitempty"`
    Children []RenderedEntry `json:"children"`
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
    Href   string `json:"href"`
    Label  string `json:"label"`
    Active bool   `json:"active,omitempty"`
}

// LanguageOption is one choice in the language switcher.
type LanguageOption struct {
    Prefix string `json:"prefix"`
    Label  string `json:"label"`
    Href   string `json:"href"`
    Active bool   `json:"active,omitempty"`
}

// BuildNav renders nav links with active state given the current path.
func BuildNav(links []locale.NavLink, currentPath string) []RenderedLink {
    if currentPath == "" {
        currentPath = "/"
    }
    items := make([]RenderedLink, 0, len(links))
    for _, l := range links {
        ext := l.External()
        items = append(items, RenderedLink{
            Href:     l.Link,
            Text:     l.Text,
            External: ext,
            Active:   !ext && isActive(l.Link, currentPath),
        })
    }
    return items
}

// MarkActive renders groups in declaration order, flagging the entry for
// currentPath and the group that holds it. Groups are never filtered.
func MarkActive(groups []locale.SidebarGroup, currentPath string) []RenderedGroup {
    current := normalizePath(currentPath)
    out := make([]RenderedGroup, 0, len(groups))
    for _, g := range groups {
        rg := RenderedGroup{
            Title:    g.Title,
            Href:     g.Path,
            Children: make([]RenderedEntry, 0, len(g.Children)),
        }
        for _, c := range g.Children {
            href := c.Href(g)
            active := samePage(href, current)
            rg.Children = append(rg.Children, RenderedEntry{
                Kind:   c.Kind.String(),
                Href:   href,
                Title:  c.Title,
                Active: active,
            })
            if active {
                rg.Active = true
            }
        }
        if samePage(g.Path, current) {
            rg.Active = true
        }
        out = append(out, rg)
    }
    return out
}

// Breadcrumbs builds a trail for currentPath:
// - always start at the locale home
// - then the first group holding the page, if any
// - then the page itself when it is a document entry
func Breadcrumbs(res Result, currentPath string) []Crumb {
    current := normalizePath(currentPath)
    home := res.Locale.Prefix
    crumbs := []Crumb{{Href: home, Label: homeLabel(res.Locale), Active: samePage(home, current)}}
    if samePage(home, current) {
        return crumbs
    }
    for _, g := range res.Sidebar {
        groupActive := samePage(g.Path, current)
        var leaf *Crumb
        for _, c := range g.Children {
            if c.Kind != locale.EntryDocument || !samePage(c.Path, current) {
                continue
            }
            label := c.Title
            if label == "" {
                label = titleFromSegment(path.Base(strings.TrimSuffix(c.Path, "/")))
            }
            leaf = &Crumb{Href: c.Path, Label: label, Active: true}
            break
        }
        if !groupActive && leaf == nil {
            continue
        }
        if g.Path != home {
            crumbs = append(crumbs, Crumb{Href: g.Path, Label: g.Title, Active: leaf == nil})
        }
        if leaf != nil {
            crumbs = append(crumbs, *leaf)
        }
        return crumbs
    }
    return crumbs
}

// LanguageOptions lists every locale with the equivalent of requestPath under
// its prefix, for a language switcher.
func (r *Resolver) LanguageOptions(requestPath string) []LanguageOption {
    current, err := r.ResolveLocale(requestPath)
    if err != nil {
        current = locale.Locale{}
    }
    p := normalizePath(requestPath)
    rest := strings.TrimPrefix(p, current.Prefix)
    if current.Prefix == "" || p+"/" == current.Prefix {
        rest = ""
    }
    configs := r.table.All()
    opts := make([]LanguageOption, 0, len(configs))
    for _, cfg := range configs {
        label := cfg.Label
        if label == "" {
            label = cfg.Locale.Lang
        }
        opts = append(opts, LanguageOption{
            Prefix: cfg.Locale.Prefix,
            Label:  label,
            Href:   cfg.Locale.Prefix + strings.TrimPrefix(rest, "/"),
            Active: cfg.Locale.Prefix == current.Prefix,
        })
    }
    return opts
}

func homeLabel(l locale.Locale) string {
    if l.Title != "" {
        return l.Title
    }
    return "Home"
}

func isActive(itemPath, currentPath string) bool {
    if itemPath == "/" {
        return currentPath == "/"
    }
    itemPath = strings.TrimSuffix(itemPath, "/")
    // match exact or prefix boundary: "/guide" or "/guide/..."
    if currentPath == itemPath {
        return true
    }
    if strings.HasPrefix(currentPath, itemPath+"/") {
        return true
    }
    return false
}

// samePage treats "/a", "/a/", "/a.md" and "/a.html" as one page.
func samePage(a, b string) bool {
    return pageKey(a) == pageKey(b)
}

func pageKey(p string) string {
    p = normalizePath(p)
    for _, ext := range []string{".md", ".html"} {
        p = strings.TrimSuffix(p, ext)
    }
    if strings.HasSuffix(p, "/README") || strings.HasSuffix(p, "/index") {
        p = p[:strings.LastIndexByte(p, '/')+1]
    }
    if len(p) > 1 {
        p = strings.TrimSuffix(p, "/")
    }
    return p
}

func titleFromSegment(seg string) string {
    if seg == "" {
        return seg
    }
    for _, ext := range []string{".md", ".html"} {
        seg = strings.TrimSuffix(seg, ext)
    }
    // replace hyphens/underscores with spaces and capitalize first letter
    s := strings.ReplaceAll(seg, "-", " ")
    s = strings.ReplaceAll(s, "_", " ")
    r := []rune(s)
    if len(r) == 0 {
        return s
    }
    r[0] = toUpper(r[0])
    return string(r)
}

func toUpper(r rune) rune {
    // ASCII only is sufficient for slugs here
    if r >= 'a' && r <= 'z' {
        return r - ('a' - 'A')
    }
    return r
}
