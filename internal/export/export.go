// Package export writes a document out as a static HTML page, its JSON
// form, or Markdown.
package export

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/sitecraft/internal/render"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Format is an export target.
type Format string

const (
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatJSON, FormatMarkdown}

// ParseFormat maps a user-supplied name (including the "md" shorthand) to
// a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", site.Errorf(site.InvalidInput, "unsupported export format %q (want html, json or markdown)", s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "md"
	}
	return "html"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

var static = render.New(render.Options{Static: true})

// Export renders doc in format f.
func Export(doc *site.Document, f Format) ([]byte, error) {
	switch f {
	case FormatHTML:
		return []byte(static.Render(doc)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling document: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMarkdown:
		return Markdown(doc)
	}
	return nil, site.Errorf(site.InvalidInput, "unsupported export format %q", f)
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Markdown converts the static page body of doc to Markdown, headed by the
// site title.
func Markdown(doc *site.Document) ([]byte, error) {
	page, err := html.Parse(strings.NewReader(static.Render(doc)))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered page: %w", err)
	}
	body := findElement(page, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("rendered page has no body")
	}
	stripElements(body, atom.Script, atom.Style, atom.Form)

	md, err := htmltomarkdown.ConvertNode(body)
	if err != nil {
		return nil, fmt.Errorf("converting to markdown: %w", err)
	}

	var b strings.Builder
	if doc != nil && doc.Metadata.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Metadata.Title)
		if doc.Metadata.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", doc.Metadata.Description)
		}
	}
	b.WriteString(strings.TrimSpace(string(md)))
	b.WriteString("\n")
	return []byte(blankLines.ReplaceAllString(b.String(), "\n\n")), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func stripElements(n *html.Node, atoms ...atom.Atom) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		drop := false
		if c.Type == html.ElementNode {
			for _, a := range atoms {
				if c.DataAtom == a {
					drop = true
					break
				}
			}
		}
		if drop {
			n.RemoveChild(c)
		} else {
			stripElements(c, atoms...)
		}
		c = next
	}
}
