package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedTags = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Strong: true, atom.Em: true, atom.U: true, atom.B: true, atom.I: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.A: true, atom.Span: true, atom.Div: true, atom.Img: true,
	atom.Blockquote: true, atom.Code: true, atom.Pre: true, atom.Hr: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tr: true, atom.Th: true, atom.Td: true,
}

// droppedTags are removed together with everything inside them.
var droppedTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Iframe: true, atom.Frame: true, atom.Frameset: true,
	atom.Object: true, atom.Embed: true, atom.Noscript: true, atom.Template: true, atom.Svg: true,
	atom.Math: true, atom.Title: true, atom.Head: true, atom.Link: true, atom.Meta: true, atom.Base: true,
	atom.Textarea: true, atom.Select: true,
}

var allowedAttrs = map[string]bool{
	"href": true, "target": true, "class": true, "style": true, "src": true, "alt": true, "title": true,
}

// Sanitize reduces an HTML fragment to an allowlisted tag and attribute
// set. Disallowed elements are unwrapped (their text survives) except for
// script-like elements, which are removed entirely.
func Sanitize(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, n := range nodes {
		for _, c := range clean(n) {
			if err := html.Render(&b, c); err != nil {
				return ""
			}
		}
	}
	return b.String()
}

func clean(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return nil
		}
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, clean(c)...)
		}
		if !allowedTags[n.DataAtom] {
			return children
		}
		out := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom, Attr: cleanAttrs(n.Attr)}
		for _, c := range children {
			out.AppendChild(c)
		}
		return []*html.Node{out}
	}
	return nil
}

func cleanAttrs(attrs []html.Attribute) []html.Attribute {
	var out []html.Attribute
	blank := false
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" || !allowedAttrs[key] {
			continue
		}
		val := a.Val
		switch key {
		case "href", "src":
			if val = safeURL(val); val == "" {
				continue
			}
		case "style":
			if val = customCSS(val); val == "" {
				continue
			}
		case "target":
			if val != "_blank" && val != "_self" {
				continue
			}
			blank = val == "_blank"
		}
		out = append(out, html.Attribute{Key: key, Val: val})
	}
	if blank {
		out = append(out, html.Attribute{Key: "rel", Val: "noopener noreferrer"})
	}
	return out
}
