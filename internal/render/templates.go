package render

import (
	"html/template"
	"strings"
)

var templates = template.Must(template.New("page").Funcs(template.FuncMap{
	"stars":      stars,
	"isURL":      isImageURL,
	"socialIcon": socialIcon,
}).Parse(pageTemplate + sectionTemplates))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  {{- with .Description}}
  <meta name="description" content="{{.}}">
  {{- end}}
  <title>{{.Title}}</title>
  {{- with .Favicon}}
  <link rel="icon" href="{{.}}">
  {{- end}}
  <style>{{.CSS}}</style>
</head>
<body>
{{- range .Sections}}
{{.}}
{{- end}}
{{- with .Script}}
<script>{{.}}</script>
{{- end}}
</body>
</html>
`

const sectionTemplates = `
{{- define "block" -}}
{{- if .Footer -}}
<footer data-section-id="{{.ID}}" data-section-type="{{.Type}}"{{with .Anchor}} id="{{.}}"{{end}} class="{{.Class}}"{{with .Style}} style="{{.}}"{{end}}>{{.Inner}}</footer>
{{- else -}}
<section data-section-id="{{.ID}}" data-section-type="{{.Type}}"{{with .Anchor}} id="{{.}}"{{end}} class="{{.Class}}"{{with .Style}} style="{{.}}"{{end}}>{{.Inner}}</section>
{{- end -}}
{{- end}}

{{- define "hero" -}}
<div class="container sc-hero-inner">
  {{- if .BackgroundImage}}<span class="sc-sr-only" role="img" aria-label="{{or .ImageAlt "Hero image"}}"></span>{{end}}
  {{- with .Heading}}<h1>{{.}}</h1>{{end}}
  {{- with .Subheading}}<p class="sc-lead">{{.}}</p>{{end}}
  {{- if or .Primary.Text .Secondary.Text}}
  <div class="sc-actions">
    {{- if .Primary.Text}}<a href="{{or .Primary.Link "#"}}" class="btn">{{.Primary.Text}}</a>{{end}}
    {{- if .Secondary.Text}}<a href="{{or .Secondary.Link "#"}}" class="btn btn-outline">{{.Secondary.Text}}</a>{{end}}
  </div>
  {{- end}}
</div>
{{- end}}

{{- define "about" -}}
<div class="container sc-pad">
  <div class="sc-split{{if .Image}} sc-split-media{{end}}">
    {{- with .Image}}<div><img src="{{.}}" alt="{{or $.ImageAlt "About us"}}" class="sc-media"></div>{{end}}
    <div>
      {{- with .Heading}}<h2>{{.}}</h2>{{end}}
      {{- with .Text}}<p class="sc-body">{{.}}</p>{{end}}
      {{- with .Mission}}<p class="sc-body"><strong>Our Mission:</strong> {{.}}</p>{{end}}
      {{- with .Stats}}<div class="sc-stats">{{range .}}<div class="sc-stat"><strong>{{.Value}}</strong><span>{{.Label}}</span></div>{{end}}</div>{{end}}
    </div>
  </div>
</div>
{{- end}}

{{- define "card" -}}
<div class="card">
  {{- if .Image}}<img src="{{.Image}}" alt="{{or .ImageAlt .Title "Image"}}" class="sc-card-media">
  {{- else if isURL .Icon}}<img src="{{.Icon}}" alt="{{or .ImageAlt .Title "Icon"}}" class="sc-card-media">
  {{- else if .Icon}}<div class="sc-icon">{{.Icon}}</div>{{end}}
  {{- with .Title}}<h3>{{.}}</h3>{{end}}
  {{- with .Description}}<p class="sc-muted">{{.}}</p>{{end}}
  {{- with .Price}}<p class="sc-price">{{.}}</p>{{end}}
</div>
{{- end}}

{{- define "intro" -}}
{{- with .Heading}}<h2 class="sc-title">{{.}}</h2>{{end}}
{{- with .Subheading}}<p class="sc-subtitle">{{.}}</p>{{end}}
{{- end}}

{{- define "features" -}}
<div class="container sc-pad">
  {{- template "intro" .}}
  {{- with .Features}}<div class="sc-grid">{{range .}}{{template "card" .}}{{end}}</div>{{end}}
</div>
{{- end}}

{{- define "services" -}}
<div class="container sc-pad">
  {{- template "intro" .}}
  {{- with .Services}}<div class="sc-grid">{{range .}}{{template "card" .}}{{end}}</div>{{end}}
</div>
{{- end}}

{{- define "pricing" -}}
<div class="container sc-pad">
  {{- template "intro" .}}
  {{- with .Plans}}
  <div class="sc-grid sc-grid-pricing">
    {{- range .}}
    <div class="card sc-plan{{if .Popular}} sc-plan-popular{{end}}">
      {{- if .Popular}}<div class="sc-badge">Most Popular</div>{{end}}
      <h3>{{or .Name "Plan"}}</h3>
      <div class="sc-plan-price"><span class="sc-amount">{{or .Price "$0"}}</span>{{with .Period}}<span class="sc-period">/{{.}}</span>{{end}}</div>
      {{- with .Description}}<p class="sc-muted">{{.}}</p>{{end}}
      {{- with .Features}}<ul class="sc-checklist">{{range .}}<li><span class="sc-check">✓</span>{{.}}</li>{{end}}</ul>{{end}}
      <a href="{{or .CTA.Link "#"}}" class="btn{{if not .Popular}} btn-muted{{end}}">{{or .CTA.Text "Get Started"}}</a>
    </div>
    {{- end}}
  </div>
  {{- end}}
</div>
{{- end}}

{{- define "testimonials" -}}
<div class="container sc-pad">
  {{- with .Heading}}<h2 class="sc-title">{{.}}</h2>{{end}}
  {{- with .Testimonials}}
  <div class="sc-grid">
    {{- range $t := .}}
    <figure class="card sc-testimonial">
      <figcaption class="sc-person">
        {{- with $t.Avatar}}<img src="{{.}}" alt="{{or $t.Name "Customer"}}" class="sc-avatar">{{end -}}
        <div><h4>{{or $t.Name "Customer"}}</h4>{{with $t.Role}}<p class="sc-muted">{{.}}</p>{{end}}</div>
      </figcaption>
      {{- with stars $t.Rating}}<div class="sc-stars" aria-label="rating">{{.}}</div>{{end}}
      {{- with $t.Quote}}<blockquote>&ldquo;{{.}}&rdquo;</blockquote>{{end}}
    </figure>
    {{- end}}
  </div>
  {{- end}}
</div>
{{- end}}

{{- define "team" -}}
<div class="container sc-pad">
  {{- template "intro" .}}
  {{- with .Members}}
  <div class="sc-grid sc-grid-team">
    {{- range $m := .}}
    <div class="card sc-member">
      {{- with $m.Image}}<img src="{{.}}" alt="{{or $m.Name "Team member"}}" class="sc-portrait">{{end}}
      <h3>{{or $m.Name "Team Member"}}</h3>
      {{- with $m.Role}}<p class="sc-role">{{.}}</p>{{end}}
      {{- with $m.Bio}}<p class="sc-muted">{{.}}</p>{{end}}
      {{- with $m.Social}}<div class="sc-social">{{range .}}<a href="{{.Href}}" aria-label="{{.Text}}">{{socialIcon .Text}}</a>{{end}}</div>{{end}}
    </div>
    {{- end}}
  </div>
  {{- end}}
</div>
{{- end}}

{{- define "contact" -}}
<div class="container sc-pad sc-narrow">
  {{- template "intro" .}}
  {{- if or .Email .Phone .Address}}
  <ul class="sc-contact-details">
    {{- with .Email}}<li><a href="mailto:{{.}}">{{.}}</a></li>{{end}}
    {{- with .Phone}}<li><a href="tel:{{.}}">{{.}}</a></li>{{end}}
    {{- with .Address}}<li>{{.}}</li>{{end}}
  </ul>
  {{- end}}
  <form class="sc-form">
    <input type="text" name="name" placeholder="Name">
    <input type="email" name="email" placeholder="Email">
    <textarea name="message" placeholder="Message" rows="5"></textarea>
    <button type="submit">{{or .ButtonText "Send Message"}}</button>
  </form>
</div>
{{- end}}

{{- define "footer" -}}
<div class="container sc-footer-inner">
  <p>{{.Text}}</p>
  {{- with .Links}}<nav class="sc-footer-links">{{range .}}<a href="{{or .Href "#"}}">{{.Text}}</a>{{end}}</nav>{{end}}
</div>
{{- end}}

{{- define "cta" -}}
<div class="container sc-cta-inner">
  {{- with .Heading}}<h2>{{.}}</h2>{{end}}
  {{- with .Subheading}}<p class="sc-lead">{{.}}</p>{{end}}
  {{- if .Primary.Text}}
  <div class="sc-actions">
    <a href="{{or .Primary.Link "#"}}" class="btn btn-light">{{.Primary.Text}}</a>
    {{- if .Secondary.Text}}<a href="{{or .Secondary.Link "#"}}" class="btn btn-outline">{{.Secondary.Text}}</a>{{end}}
  </div>
  {{- end}}
</div>
{{- end}}

{{- define "gallery" -}}
<div class="container sc-pad">
  {{- with .Heading}}<h2 class="sc-title">{{.}}</h2>{{end}}
  {{- with .Images}}<div class="sc-gallery">{{range .}}<div class="sc-tile"><img src="{{.URL}}" alt="{{or .Alt "Gallery image"}}" loading="lazy"></div>{{end}}</div>{{end}}
</div>
{{- end}}

{{- define "custom" -}}
<div class="container sc-pad">
  {{- if .HTML}}{{.HTML}}{{else}}
  {{- template "intro" .}}
  {{- with .Text}}<p class="sc-body">{{.}}</p>{{end}}
  {{- with .Markdown}}<div class="sc-markdown">{{.}}</div>{{end}}
  {{- with .Items}}<div class="sc-grid">{{range .}}{{template "card" .}}{{end}}</div>{{end}}
  {{- if .CTA.Text}}<div class="sc-actions sc-center"><a href="{{or .CTA.Link "#"}}" class="btn">{{.CTA.Text}}</a></div>{{end}}
  {{- if .Empty}}<p class="sc-placeholder">This section needs content. Please edit it to add your content.</p>{{end}}
  {{- end}}
</div>
{{- end}}
`

func stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating)
}

func socialIcon(platform string) string {
	switch strings.ToLower(platform) {
	case "linkedin":
		return "in"
	case "twitter", "x":
		return "𝕏"
	case "github":
		return "gh"
	case "email", "mail":
		return "✉"
	default:
		if platform == "" {
			return "•"
		}
		return strings.ToUpper(string([]rune(platform)[:1]))
	}
}

func isImageURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "data:image/")
}
