package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

func section(id string, kind site.SectionType, order int, content string) site.Section {
	var c site.Content
	if err := json.Unmarshal([]byte(content), &c); err != nil {
		panic(err)
	}
	return site.Section{ID: id, Type: kind, Content: c, Order: order, Visible: true}
}

func testDoc(sections ...site.Section) *site.Document {
	return &site.Document{
		ID:       "doc-1",
		Metadata: site.Metadata{Title: "Acme", Description: "Widgets & more"},
		GlobalStyles: site.GlobalStyles{
			ColorScheme: site.ColorScheme{Primary: "#3b82f6", Secondary: "#1e40af", Accent: "#f59e0b", Background: "#ffffff", Text: "#111827"},
			Typography:  site.Typography{FontFamily: "Inter, sans-serif"},
		},
		Sections: sections,
	}
}

// blocks parses page and returns every element carrying data-section-id, in
// document order.
func blocks(t *testing.T, page string) []*html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "data-section-id") != "" {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestRenderEmptyDocument(t *testing.T) {
	page := Render(&site.Document{})
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Untitled site</title>")
	assert.Empty(t, blocks(t, page))

	assert.Contains(t, Render(nil), "<title>Untitled site</title>")
}

func TestRenderOrderAndVisibility(t *testing.T) {
	hidden := section("s-hidden", site.SectionAbout, 1, `{"heading":"Secret"}`)
	hidden.Visible = false
	doc := testDoc(
		section("s-footer", site.SectionFooter, 3, `{"text":"Bye"}`),
		section("s-hero", site.SectionHero, 0, `{"heading":"Hello"}`),
		hidden,
		section("s-features", site.SectionFeatures, 2, `{"heading":"Why us","features":[{"title":"Fast"}]}`),
	)

	page := Render(doc)
	var ids, kinds []string
	for _, n := range blocks(t, page) {
		ids = append(ids, attr(n, "data-section-id"))
		kinds = append(kinds, attr(n, "data-section-type"))
	}
	assert.Equal(t, []string{"s-hero", "s-features", "s-footer"}, ids)
	assert.Equal(t, []string{"hero", "features", "footer"}, kinds)
	assert.NotContains(t, page, "Secret")
	assert.Contains(t, page, "<footer")
}

func TestRenderHeroBackgroundOverlay(t *testing.T) {
	doc := testDoc(section("h", site.SectionHero, 0, `{"heading":"Fresh bread","backgroundImage":"https://img.example/bread.jpg"}`))

	got := blocks(t, Render(doc))
	require.Len(t, got, 1)
	style := attr(got[0], "style")
	assert.Contains(t, style, `background-image: linear-gradient(rgba(0,0,0,0.4), rgba(0,0,0,0.4)), url("https://img.example/bread.jpg")`)
	assert.Contains(t, style, "background-size: cover")
	assert.Contains(t, style, "min-height: 80vh")
}

func TestRenderStyleOrder(t *testing.T) {
	s := section("a", site.SectionAbout, 0, `{"heading":"About"}`)
	s.Styles = site.Styles{
		BackgroundColor: "#fafafa",
		TextColor:       "#222222",
		Padding:         &site.Box{Top: "2rem", Right: "1rem", Bottom: "2rem"},
		CustomCSS:       "letter-spacing: 2px; width: expression(alert(1))",
	}
	got := blocks(t, Render(testDoc(s)))
	require.Len(t, got, 1)
	style := attr(got[0], "style")
	assert.Equal(t, "background-color: #fafafa; color: #222222; padding: 2rem 1rem 2rem 0; letter-spacing: 2px;", style)
}

func TestRenderGradientBackground(t *testing.T) {
	s := section("t", site.SectionTestimonials, 0, `{"heading":"Love"}`)
	s.Styles.BackgroundColor = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
	got := blocks(t, Render(testDoc(s)))
	require.Len(t, got, 1)
	assert.Equal(t, "background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);", attr(got[0], "style"))
}

func TestRenderKindDefaults(t *testing.T) {
	doc := testDoc(
		section("c", site.SectionCTA, 0, `{"heading":"Join","ctaText":"Go"}`),
		section("f", site.SectionFooter, 1, `{}`),
	)
	page := Render(doc)
	got := blocks(t, page)
	require.Len(t, got, 2)
	assert.Contains(t, attr(got[0], "style"), "linear-gradient(135deg, #667eea 0%, #764ba2 100%)")
	assert.Equal(t, "background-color: #1f2937; color: #ffffff;", attr(got[1], "style"))
	assert.Contains(t, page, "© Acme. All rights reserved.")
}

func TestRenderAnchors(t *testing.T) {
	doc := testDoc(
		section("p1", site.SectionPricing, 0, `{"heading":"Plans"}`),
		section("p2", site.SectionPricing, 1, `{"heading":"More plans"}`),
	)
	got := blocks(t, Render(doc))
	require.Len(t, got, 2)
	assert.Equal(t, "pricing", attr(got[0], "id"))
	assert.Equal(t, "", attr(got[1], "id"))
}

func TestRenderPricingHighlight(t *testing.T) {
	doc := testDoc(section("p", site.SectionPricing, 0,
		`{"plans":[{"name":"Basic","price":"$9"},{"name":"Pro","price":"$29"},{"name":"Team","price":"$99"}]}`))
	page := Render(doc)
	assert.Equal(t, 1, strings.Count(page, "sc-plan sc-plan-popular"))
	assert.Contains(t, page, "Most Popular")

	flagged := testDoc(section("p", site.SectionPricing, 0,
		`{"plans":[{"name":"Basic","popular":true},{"name":"Pro"}]}`))
	assert.Equal(t, 1, strings.Count(Render(flagged), "sc-plan sc-plan-popular"))
}

func TestRenderCustomSections(t *testing.T) {
	doc := testDoc(
		section("empty", site.SectionCustom, 0, `{}`),
		section("raw", site.SectionCustom, 1, `{"html":"<p onclick=\"steal()\">Hi<script>alert(1)</script></p>"}`),
		section("md", site.SectionCustom, 2, `{"markdown":"## Notes\n\n**bold** text"}`),
	)
	page := Render(doc)
	assert.Contains(t, page, "This section needs content. Please edit it to add your content.")
	assert.Contains(t, page, "<p>Hi</p>")
	assert.NotContains(t, page, "alert(1)")
	assert.NotContains(t, page, "steal()")
	assert.Contains(t, page, "<strong>bold</strong>")
}

func TestRenderUnknownKindFallsBackToCustom(t *testing.T) {
	doc := testDoc(section("x", site.SectionType("carousel"), 0, `{"heading":"Spin"}`))
	got := blocks(t, Render(doc))
	require.Len(t, got, 1)
	assert.Equal(t, "custom", attr(got[0], "data-section-type"))
}

func TestRenderNeutralizesScriptURLs(t *testing.T) {
	doc := testDoc(section("h", site.SectionHero, 0,
		`{"heading":"Hi","ctaText":"Click","ctaLink":"javascript:alert(1)","backgroundImage":"javascript:alert(2)"}`))
	page := Render(doc)
	assert.NotContains(t, page, "javascript:")
	got := blocks(t, page)
	require.Len(t, got, 1)
	assert.NotContains(t, attr(got[0], "style"), "background-image")
}

func TestRenderEscapesText(t *testing.T) {
	doc := testDoc(section("a", site.SectionAbout, 0, `{"heading":"<img src=x onerror=alert(1)>"}`))
	page := Render(doc)
	assert.NotContains(t, page, "<img src=x")
	assert.Contains(t, page, "&lt;img src=x")
}

func TestRenderModes(t *testing.T) {
	doc := testDoc(section("h", site.SectionHero, 0, `{"heading":"Hi"}`))

	preview := Render(doc)
	assert.Contains(t, preview, "<script>")
	assert.Contains(t, preview, "section-clicked")
	assert.Contains(t, preview, "section-hover-end")
	assert.Contains(t, preview, "[data-section-id]:hover")

	static := New(Options{Static: true}).Render(doc)
	assert.NotContains(t, static, "<script>")
	assert.NotContains(t, static, "[data-section-id]:hover")
	assert.Len(t, blocks(t, static), 1)
}

func TestGlobalCSSFallbacks(t *testing.T) {
	css := globalCSS(site.GlobalStyles{ColorScheme: site.ColorScheme{Primary: "red; } body { display:none"}}, true)
	assert.Contains(t, css, "a { color: #3b82f6;")
	assert.NotContains(t, css, "display:none")
	assert.Contains(t, css, "font-size: 16px")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "<p>Hello <strong>world</strong></p>", "<p>Hello <strong>world</strong></p>"},
		{"script dropped", "<div>a<script>alert(1)</script>b</div>", "<div>ab</div>"},
		{"unknown tag unwrapped", "<section><p>x</p></section>", "<p>x</p>"},
		{"event handler", `<p onclick="x()">y</p>`, "<p>y</p>"},
		{"javascript href", `<a href="javascript:alert(1)">x</a>`, "<a>x</a>"},
		{"safe href", `<a href="https://example.com" target="_blank">x</a>`, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">x</a>`},
		{"style scrubbed", `<span style="color: red; background: url(javascript:x)">x</span>`, `<span style="color: red;">x</span>`},
		{"iframe", `<iframe src="https://evil.example"></iframe>ok`, "ok"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSafeURL(t *testing.T) {
	for _, u := range []string{"https://a.example/x.png", "/img/a.png", "#contact", "mailto:a@b.c", "tel:+123", "data:image/png;base64,AAAA", "images/a.png"} {
		assert.Equal(t, u, safeURL(u), u)
	}
	for _, u := range []string{"javascript:alert(1)", "JAVASCRIPT:alert(1)", "vbscript:x", "data:text/html,<b>", "data:image/svg+xml,<svg>", "//evil.example/x", ""} {
		assert.Empty(t, safeURL(u), u)
	}
}

func TestCache(t *testing.T) {
	c, err := NewCache(New(Options{}), 2)
	require.NoError(t, err)

	doc := testDoc(section("h", site.SectionHero, 0, `{"heading":"Hi"}`))
	first := c.Render(doc)
	assert.Equal(t, first, c.Render(doc.Clone()))
	assert.Equal(t, 1, c.Len())

	other := doc.Clone()
	other.Metadata.Title = "Other"
	assert.NotEqual(t, first, c.Render(other))
	assert.Equal(t, 2, c.Len())

	assert.Contains(t, c.Render(nil), "Untitled site")
	assert.Equal(t, 2, c.Len())
}
