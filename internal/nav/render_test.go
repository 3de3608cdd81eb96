package nav

import (
	"testing"

	"finitefield.org/hanko-docs/internal/locale"
)

func TestBuildNavActive(t *testing.T) {
	links := []locale.NavLink{
		{Text: "Guide", Link: "/zh_hans/1_HttpClient/"},
		{Text: "Github", Link: "https://github.com/fawdlstty/libfv"},
	}
	items := BuildNav(links, "/zh_hans/1_HttpClient/proxy.md")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Active {
		t.Errorf("expected guide link active")
	}
	if items[1].Active || !items[1].External {
		t.Errorf("expected github link external and inactive, got %+v", items[1])
	}
	if BuildNav(links, "")[0].Active {
		t.Errorf("empty path must not activate a section link")
	}
}

func TestMarkActiveKeepsOrderAndFlags(t *testing.T) {
	groups := zhHansConfig().Sidebar
	rendered := MarkActive(groups, "/zh_hans/1_HttpClient/websocket.md")
	if len(rendered) != len(groups) {
		t.Fatalf("expected %d groups, got %d", len(groups), len(rendered))
	}
	for i, g := range rendered {
		if g.Title != groups[i].Title {
			t.Fatalf("group %d: expected %q, got %q", i, groups[i].Title, g.Title)
		}
		if len(g.Children) != len(groups[i].Children) {
			t.Fatalf("group %q: children dropped", g.Title)
		}
	}
	http := rendered[2]
	if !http.Active {
		t.Fatalf("expected HTTP group active")
	}
	if http.Children[0].Kind != "index" || http.Children[0].Href != "/zh_hans/1_HttpClient/" || http.Children[0].Active {
		t.Errorf("unexpected index child: %+v", http.Children[0])
	}
	if !http.Children[1].Active || http.Children[1].Title != "WebSocket" {
		t.Errorf("expected websocket child active: %+v", http.Children[1])
	}
	if rendered[0].Active || rendered[1].Active {
		t.Errorf("unexpected active groups: %+v", rendered[:2])
	}
}

func TestMarkActiveIndexPage(t *testing.T) {
	rendered := MarkActive(zhHansConfig().Sidebar, "/zh_hans/0_Startup/README.md")
	if !rendered[1].Active || !rendered[1].Children[0].Active {
		t.Fatalf("expected startup index active: %+v", rendered[1])
	}
}

func TestBreadcrumbs(t *testing.T) {
	res := Result{Locale: zhHansConfig().Locale, Sidebar: zhHansConfig().Sidebar}

	crumbs := Breadcrumbs(res, "/zh_hans/")
	if len(crumbs) != 1 || !crumbs[0].Active || crumbs[0].Label != "libfv 文档" {
		t.Fatalf("unexpected home crumbs: %+v", crumbs)
	}

	crumbs = Breadcrumbs(res, "/zh_hans/1_HttpClient/proxy.md")
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 crumbs, got %+v", crumbs)
	}
	if crumbs[1].Label != "HTTP 客户端" || crumbs[1].Active {
		t.Errorf("unexpected group crumb: %+v", crumbs[1])
	}
	if crumbs[2].Label != "Proxy" || !crumbs[2].Active {
		t.Errorf("unexpected leaf crumb: %+v", crumbs[2])
	}

	crumbs = Breadcrumbs(res, "/zh_hans/2_HttpServer/")
	if len(crumbs) != 2 || crumbs[1].Label != "HTTP 服务器" || !crumbs[1].Active {
		t.Fatalf("unexpected group crumbs: %+v", crumbs)
	}

	crumbs = Breadcrumbs(res, "/zh_hans/unlisted.md")
	if len(crumbs) != 1 || crumbs[0].Active {
		t.Fatalf("unexpected crumbs for unlisted page: %+v", crumbs)
	}
}

func TestLanguageOptions(t *testing.T) {
	table, err := locale.NewTable(enUSConfig(), zhHansConfig())
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	r := NewResolver(table)

	opts := r.LanguageOptions("/zh_hans/1_HttpClient/proxy.md")
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[0].Href != "/en_us/1_HttpClient/proxy.md" || opts[0].Active || opts[0].Label != "English" {
		t.Errorf("unexpected english option: %+v", opts[0])
	}
	if opts[1].Href != "/zh_hans/1_HttpClient/proxy.md" || !opts[1].Active || opts[1].Label != "简体中文" {
		t.Errorf("unexpected chinese option: %+v", opts[1])
	}

	opts = r.LanguageOptions("/zh_hans")
	if opts[0].Href != "/en_us/" {
		t.Errorf("expected locale home, got %q", opts[0].Href)
	}

	opts = r.LanguageOptions("/fr/")
	for _, o := range opts {
		if o.Active || o.Href != o.Prefix {
			t.Errorf("unmatched path should link to locale homes: %+v", o)
		}
	}
}

func TestTitleFromSegment(t *testing.T) {
	cases := map[string]string{
		"proxy.md":       "Proxy",
		"http-client":    "Http client",
		"1_HttpClient":   "1 HttpClient",
		"":               "",
		"websocket.html": "Websocket",
	}
	for in, want := range cases {
		if got := titleFromSegment(in); got != want {
			t.Errorf("titleFromSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
