// Package render turns a document into a self-contained HTML page for
// sandboxed preview or static export.
package render

import (
	"bytes"
	"html/template"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Options controls page output.
type Options struct {
	// Static drops the editor script and the hover outline, for export.
	Static bool
}

// Renderer renders documents. The zero value renders preview pages.
type Renderer struct {
	opts Options
}

// New returns a renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render renders doc with preview options.
func Render(doc *site.Document) string {
	return New(Options{}).Render(doc)
}

type pageData struct {
	Title       string
	Description string
	Favicon     string
	CSS         template.CSS
	Sections    []template.HTML
	Script      template.JS
}

// block is the outer element shared by every section kind.
type block struct {
	ID     string
	Type   string
	Anchor string
	Class  string
	Style  template.CSS
	Inner  template.HTML
	Footer bool
}

// Render returns the full page markup. It never fails: a section whose
// template cannot execute is left out of the page.
func (r *Renderer) Render(doc *site.Document) string {
	if doc == nil {
		doc = &site.Document{}
	}
	data := pageData{
		Title:       doc.Metadata.Title,
		Description: doc.Metadata.Description,
		Favicon:     safeURL(doc.Metadata.Favicon),
		CSS:         template.CSS(globalCSS(doc.GlobalStyles, r.opts.Static)),
	}
	if data.Title == "" {
		data.Title = "Untitled site"
	}
	if !r.opts.Static {
		data.Script = template.JS(interactivityScript)
	}

	anchors := make(map[site.SectionType]bool)
	for _, s := range site.SortedSections(doc.Sections) {
		if !s.Visible {
			continue
		}
		if markup, ok := renderSection(doc, s, anchors); ok {
			data.Sections = append(data.Sections, markup)
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", data); err != nil {
		return emptyShell
	}
	return buf.String()
}

func renderSection(doc *site.Document, s site.Section, anchors map[site.SectionType]bool) (template.HTML, bool) {
	name, data, style := sectionView(doc, s)

	var inner bytes.Buffer
	if err := templates.ExecuteTemplate(&inner, name, data); err != nil {
		return "", false
	}
	b := block{
		ID:     s.ID,
		Type:   name,
		Class:  "sc-section sc-" + name,
		Style:  style,
		Inner:  template.HTML(inner.String()),
		Footer: s.Type == site.SectionFooter,
	}
	// The first section of each kind doubles as an in-page anchor (#pricing).
	if !anchors[s.Type] {
		anchors[s.Type] = true
		b.Anchor = name
	}

	var out bytes.Buffer
	if err := templates.ExecuteTemplate(&out, "block", b); err != nil {
		return "", false
	}
	return template.HTML(out.String()), true
}

// sectionView picks the template for s and prepares its data and inline
// style.
func sectionView(doc *site.Document, s site.Section) (string, any, template.CSS) {
	name := string(s.Type)
	if !s.Type.Valid() {
		name = string(site.SectionCustom)
	}

	var k kindStyle
	var data any
	switch p := site.DecodePayload(site.SectionType(name), s.Content).(type) {
	case site.HeroContent:
		k = kindStyle{image: p.BackgroundImage, withImage: heroImageDecls}
		data = p
	case site.PricingContent:
		data = highlightPlan(p)
	case site.FooterContent:
		k = kindStyle{base: footerDecls}
		if p.Text == "" {
			p.Text = defaultFooterText(doc.Metadata.Title)
		}
		data = p
	case site.CTAContent:
		k = kindStyle{base: ctaDecls}
		data = p
	case site.CustomContent:
		data = newCustomView(p)
	default:
		data = p
	}
	return name, data, inlineStyle(s.Styles, k)
}

// highlightPlan marks the second plan as popular when none is flagged.
func highlightPlan(p site.PricingContent) site.PricingContent {
	for _, plan := range p.Plans {
		if plan.Popular {
			return p
		}
	}
	if len(p.Plans) > 1 {
		plans := append([]site.Plan(nil), p.Plans...)
		plans[1].Popular = true
		p.Plans = plans
	}
	return p
}

func defaultFooterText(title string) string {
	if title == "" {
		return "All rights reserved."
	}
	return "© " + title + ". All rights reserved."
}

// customView carries pre-sanitized markup for custom sections.
type customView struct {
	site.CustomContent
	HTML     template.HTML
	Markdown template.HTML
	Empty    bool
}

func newCustomView(c site.CustomContent) customView {
	v := customView{CustomContent: c}
	if c.HTML != "" {
		v.HTML = template.HTML(Sanitize(c.HTML))
	}
	if c.Markdown != "" {
		v.Markdown = template.HTML(markdownToHTML(c.Markdown))
	}
	v.Empty = v.HTML == "" && v.Markdown == "" && c.Heading == "" && c.Subheading == "" &&
		c.Text == "" && len(c.Items) == 0 && c.CTA.Text == ""
	return v
}

const emptyShell = `<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><title>Untitled site</title></head><body></body></html>`
