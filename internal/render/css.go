package render

import (
	"strings"
	"text/template"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

type cssData struct {
	FontFamily, HeadingFont                string
	Base, H1, H2, H3, H4                   string
	Primary, Secondary, Accent, Background string
	Text, SectionGap, ContainerPadding     string
	Static                                 bool
}

var cssTemplate = template.Must(template.New("css").Parse(`
*, *::before, *::after { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: {{.FontFamily}}; font-size: {{.Base}}; color: {{.Text}}; background-color: {{.Background}}; line-height: 1.6; }
{{- if .HeadingFont}}
h1, h2, h3, h4 { font-family: {{.HeadingFont}}; }
{{- end}}
h1 { font-size: {{.H1}}; line-height: 1.2; margin-bottom: 1rem; }
h2 { font-size: {{.H2}}; line-height: 1.3; margin-bottom: 0.875rem; }
h3 { font-size: {{.H3}}; line-height: 1.4; margin-bottom: 0.75rem; }
h4 { font-size: {{.H4}}; line-height: 1.5; margin-bottom: 0.625rem; }
p { margin-bottom: 1rem; }
img { max-width: 100%; }
a { color: {{.Primary}}; text-decoration: none; transition: opacity 0.2s; }
a:hover { opacity: 0.8; }
button, .btn { display: inline-block; padding: 0.75rem 1.5rem; background-color: {{.Primary}}; color: #ffffff; border: 2px solid transparent; border-radius: 0.375rem; font-size: 1rem; font-weight: 600; cursor: pointer; transition: transform 0.2s, box-shadow 0.2s; }
button:hover, .btn:hover { transform: translateY(-2px); box-shadow: 0 4px 12px rgba(0,0,0,0.15); opacity: 1; }
.btn-outline { background-color: transparent; border-color: currentColor; color: inherit; }
.btn-light { background-color: #ffffff; color: #667eea; }
.btn-muted { background-color: #6b7280; }
.container { max-width: 1200px; margin: 0 auto; padding: 0 {{.ContainerPadding}}; }
section { margin-bottom: {{.SectionGap}}; }
.sc-pad { padding-top: 4rem; padding-bottom: 4rem; }
.sc-narrow { max-width: 600px; }
.sc-center { text-align: center; }
.sc-sr-only { position: absolute; width: 1px; height: 1px; overflow: hidden; clip: rect(0 0 0 0); }
.sc-title { text-align: center; margin-bottom: 1.5rem; font-weight: 700; }
.sc-subtitle { text-align: center; font-size: 1.2rem; color: #6b7280; max-width: 700px; margin: 0 auto 3rem; }
.sc-lead { font-size: 1.25rem; margin-bottom: 2rem; }
.sc-body { font-size: 1.1rem; line-height: 1.8; color: #4b5563; }
.sc-muted { color: #6b7280; }
.sc-actions { display: flex; gap: 1rem; justify-content: center; flex-wrap: wrap; margin-top: 1.5rem; }
.sc-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(280px, 1fr)); gap: 2rem; }
.sc-grid-team { grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); }
.card { position: relative; padding: 2rem; border-radius: 1rem; background: #ffffff; color: #1f2937; box-shadow: 0 4px 6px rgba(0,0,0,0.1); transition: transform 0.3s, box-shadow 0.3s; }
.card:hover { transform: translateY(-5px); box-shadow: 0 8px 12px rgba(0,0,0,0.15); }
.sc-card-media { width: 100%; height: 200px; object-fit: cover; border-radius: 0.5rem; margin-bottom: 1.5rem; }
.sc-icon { font-size: 3rem; margin-bottom: 1rem; text-align: center; }
.sc-price { font-size: 1.5rem; font-weight: 700; color: {{.Primary}}; }
.sc-hero-inner { text-align: center; padding-top: 5rem; padding-bottom: 5rem; width: 100%; }
.sc-hero-inner h1, .sc-hero-inner p { text-shadow: 1px 1px 3px rgba(0,0,0,0.3); }
.sc-split { display: grid; grid-template-columns: 1fr; gap: 3rem; align-items: center; }
.sc-split-media { grid-template-columns: 1fr 1fr; }
.sc-media { width: 100%; height: auto; border-radius: 1rem; box-shadow: 0 8px 16px rgba(0,0,0,0.1); }
.sc-stats { display: flex; gap: 2rem; margin-top: 1.5rem; }
.sc-stat strong { display: block; font-size: 2rem; color: {{.Primary}}; }
.sc-plan-popular { border: 2px solid {{.Primary}}; box-shadow: 0 8px 16px rgba(0,0,0,0.15); }
.sc-badge { position: absolute; top: -12px; left: 50%; transform: translateX(-50%); background: {{.Primary}}; color: #ffffff; padding: 0.25rem 1rem; border-radius: 1rem; font-size: 0.875rem; font-weight: 600; }
.sc-amount { font-size: 3rem; font-weight: 700; }
.sc-checklist { list-style: none; margin: 1rem 0 2rem; }
.sc-checklist li { padding: 0.5rem 0; color: #4b5563; }
.sc-check { color: #10b981; margin-right: 0.5rem; }
.sc-plan .btn { display: block; text-align: center; }
.sc-person { display: flex; align-items: center; gap: 1rem; margin-bottom: 1rem; }
.sc-avatar { width: 60px; height: 60px; border-radius: 50%; object-fit: cover; }
.sc-stars { color: #fbbf24; margin-bottom: 1rem; }
.sc-testimonial blockquote { color: #4b5563; font-style: italic; }
.sc-member { text-align: center; }
.sc-portrait { width: 150px; height: 150px; border-radius: 50%; object-fit: cover; margin: 0 auto 1rem; display: block; border: 4px solid #e5e7eb; }
.sc-role { color: {{.Primary}}; font-weight: 500; }
.sc-social { display: flex; justify-content: center; gap: 0.75rem; margin-top: 1rem; }
.sc-contact-details { list-style: none; text-align: center; margin-bottom: 2rem; }
.sc-form { display: flex; flex-direction: column; gap: 1rem; }
.sc-form input, .sc-form textarea { padding: 0.75rem; border: 1px solid #d1d5db; border-radius: 0.375rem; font: inherit; }
.sc-footer-inner { padding-top: 3rem; padding-bottom: 3rem; text-align: center; }
.sc-footer-links { display: flex; justify-content: center; gap: 1.5rem; }
.sc-footer a { color: inherit; }
.sc-cta-inner { padding-top: 5rem; padding-bottom: 5rem; text-align: center; }
.sc-gallery { display: grid; grid-template-columns: repeat(auto-fill, minmax(250px, 1fr)); gap: 1rem; }
.sc-tile { overflow: hidden; border-radius: 0.5rem; aspect-ratio: 1; box-shadow: 0 4px 6px rgba(0,0,0,0.1); transition: transform 0.3s; }
.sc-tile:hover { transform: scale(1.05); }
.sc-tile img { width: 100%; height: 100%; object-fit: cover; }
.sc-markdown pre { overflow-x: auto; padding: 1rem; border-radius: 0.5rem; }
.sc-placeholder { text-align: center; color: #9ca3af; font-style: italic; }
{{- if not .Static}}
[data-section-id] { position: relative; transition: outline 0.2s; }
[data-section-id]:hover { outline: 2px dashed {{.Primary}}; outline-offset: 4px; }
{{- end}}
@media (max-width: 768px) {
  body { font-size: 14px; }
  h1 { font-size: 2rem; }
  h2 { font-size: 1.75rem; }
  h3 { font-size: 1.5rem; }
  h4 { font-size: 1.25rem; }
  .sc-split-media { grid-template-columns: 1fr; }
}
`))

// globalCSS derives the page stylesheet from the global styles. Missing or
// unsafe tokens fall back to neutral defaults.
func globalCSS(gs site.GlobalStyles, static bool) string {
	cs, ty, sp := gs.ColorScheme, gs.Typography, gs.Spacing
	color := func(v, fallback string) string {
		if v = cssValue(v); v == "" || !site.IsColor(v) {
			return fallback
		}
		return v
	}
	value := func(v, fallback string) string {
		if v = cssValue(v); v == "" {
			return fallback
		}
		return v
	}

	data := cssData{
		FontFamily:       value(ty.FontFamily, "system-ui, -apple-system, sans-serif"),
		HeadingFont:      cssValue(ty.HeadingFont),
		Base:             value(ty.FontSize.Base, "16px"),
		H1:               value(ty.FontSize.H1, "3rem"),
		H2:               value(ty.FontSize.H2, "2.25rem"),
		H3:               value(ty.FontSize.H3, "1.5rem"),
		H4:               value(ty.FontSize.H4, "1.25rem"),
		Primary:          color(cs.Primary, "#3b82f6"),
		Secondary:        color(cs.Secondary, "#1e40af"),
		Accent:           color(cs.Accent, "#f59e0b"),
		Background:       color(cs.Background, "#ffffff"),
		Text:             color(cs.Text, "#1f2937"),
		SectionGap:       value(sp.SectionGap, "0"),
		ContainerPadding: value(sp.ContainerPadding, "1rem"),
		Static:           static,
	}

	var b strings.Builder
	if err := cssTemplate.Execute(&b, data); err != nil {
		return ""
	}
	return strings.TrimSpace(b.String())
}
