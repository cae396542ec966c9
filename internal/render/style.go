package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

type decl struct{ prop, value string }

// kindStyle holds declarations a section kind contributes. base comes
// before the user's style record so it can be overridden; withImage is
// added whenever the section has a background image.
type kindStyle struct {
	base      []decl
	image     string
	withImage []decl
}

const imageOverlay = "linear-gradient(rgba(0,0,0,0.4), rgba(0,0,0,0.4))"

var (
	footerDecls = []decl{{"background-color", "#1f2937"}, {"color", "#ffffff"}}
	ctaDecls    = []decl{{"background", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"}, {"color", "#ffffff"}}

	heroImageDecls = []decl{{"min-height", "80vh"}, {"display", "flex"}, {"align-items", "center"}, {"color", "#ffffff"}}
)

// inlineStyle converts a style record into an inline style string in a fixed
// order: kind defaults, background, text color, padding, margin, radius,
// shadow, then raw custom CSS last.
func inlineStyle(st site.Styles, k kindStyle) template.CSS {
	d := append([]decl(nil), k.base...)

	if bg := cssValue(st.BackgroundColor); bg != "" {
		switch {
		case site.IsColor(bg):
			d = append(d, decl{"background-color", bg})
		case site.IsBackground(bg):
			d = append(d, decl{"background", bg})
		}
	}

	img := st.BackgroundImage
	if img == "" {
		img = k.image
	}
	if u := cssURL(img); u != "" {
		d = append(d,
			decl{"background-image", imageOverlay + ", " + u},
			decl{"background-size", "cover"},
			decl{"background-position", "center"},
			decl{"background-repeat", "no-repeat"},
		)
		d = append(d, k.withImage...)
	}

	if c := cssValue(st.TextColor); c != "" && site.IsColor(c) {
		d = append(d, decl{"color", c})
	}
	if v := boxValue(st.Padding); v != "" {
		d = append(d, decl{"padding", v})
	}
	if v := boxValue(st.Margin); v != "" {
		d = append(d, decl{"margin", v})
	}
	if v := cssValue(st.BorderRadius); v != "" {
		d = append(d, decl{"border-radius", v})
	}
	if v := cssValue(st.BoxShadow); v != "" {
		d = append(d, decl{"box-shadow", v})
	}

	var b strings.Builder
	for _, x := range d {
		b.WriteString(x.prop)
		b.WriteString(": ")
		b.WriteString(x.value)
		b.WriteString("; ")
	}
	if custom := customCSS(st.CustomCSS); custom != "" {
		b.WriteString(custom)
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

func boxValue(b *site.Box) string {
	if b == nil {
		return ""
	}
	side := func(s string) string {
		if s = cssValue(s); s == "" {
			return "0"
		}
		return s
	}
	return side(b.Top) + " " + side(b.Right) + " " + side(b.Bottom) + " " + side(b.Left)
}

// blockedCSS are tokens that can execute script or pull remote resources
// in legacy engines.
var blockedCSS = []string{"expression", "javascript:", "vbscript:", "behavior", "-moz-binding", "@import", "</"}

// cssValue scrubs a single declaration value: no block, tag or declaration
// delimiters, no control characters.
func cssValue(v string) string {
	v = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>' || r == '{' || r == '}' || r == ';' || r == '\\':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, v)
	if hasBlockedCSS(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// customCSS scrubs the raw CSS escape hatch. Declarations are kept but any
// declaration containing a blocked token is dropped.
func customCSS(v string) string {
	v = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>' || r == '{' || r == '}' || r == '\\':
			return -1
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, v)
	var kept []string
	for _, part := range strings.Split(v, ";") {
		part = strings.TrimSpace(part)
		if part == "" || !strings.Contains(part, ":") || hasBlockedCSS(part) {
			continue
		}
		kept = append(kept, part+";")
	}
	return strings.Join(kept, " ")
}

func hasBlockedCSS(v string) bool {
	lower := strings.ToLower(v)
	for _, tok := range blockedCSS {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// cssURL returns a quoted url() token for u, or "" if u is unsafe.
func cssURL(u string) string {
	u = safeURL(u)
	if u == "" {
		return ""
	}
	r := strings.NewReplacer(`"`, "%22", `'`, "%27", "(", "%28", ")", "%29", `\`, "%5C", " ", "%20", "<", "%3C", ">", "%3E")
	return `url("` + r.Replace(u) + `")`
}

// safeURL returns u if it is a relative reference or uses an allowed scheme,
// otherwise "".
func safeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.ContainsAny(u, "\x00\r\n\t") || strings.HasPrefix(u, "//") {
		return ""
	}
	if strings.HasPrefix(u, "#") || strings.HasPrefix(u, "/") {
		return u
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return u
	case "data":
		lower := strings.ToLower(u)
		if strings.HasPrefix(lower, "data:image/") && !strings.HasPrefix(lower, "data:image/svg") {
			return u
		}
	}
	return ""
}
