package site

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 500
)

// Violation is a single failed invariant.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

// Valid reports whether doc satisfies every document invariant.
func Valid(doc *Document) bool {
	return len(Validate(doc)) == 0
}

// Validate checks the document invariants: section ids are non-empty and
// unique, section orders form a 0..n-1 permutation, every section kind is
// in the closed set, and every color is a valid color token. All
// violations are returned.
func Validate(doc *Document) []Violation {
	if doc == nil {
		return []Violation{{Path: "", Message: "document is nil"}}
	}
	var out []Violation
	add := func(path, format string, args ...any) {
		out = append(out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	cs := doc.GlobalStyles.ColorScheme
	for _, c := range []struct{ name, value string }{
		{"primary", cs.Primary}, {"secondary", cs.Secondary}, {"accent", cs.Accent},
		{"background", cs.Background}, {"text", cs.Text},
	} {
		if !IsColor(c.value) {
			add("globalStyles.colorScheme."+c.name, "invalid color %q", c.value)
		}
	}

	seen := make(map[int]bool, len(doc.Sections))
	ids := make(map[string]int, len(doc.Sections))
	for i, s := range doc.Sections {
		path := fmt.Sprintf("sections[%d]", i)
		if s.ID == "" {
			add(path+".id", "section id is empty")
		} else if j, dup := ids[s.ID]; dup {
			add(path+".id", "duplicate section id %q (also sections[%d])", s.ID, j)
		} else {
			ids[s.ID] = i
		}
		if !s.Type.Valid() {
			add(path+".type", "unknown section type %q (want one of %s)", s.Type, strings.Join(sortedKinds(), ", "))
		}
		if s.Order < 0 || s.Order >= len(doc.Sections) {
			add(path+".order", "order %d out of range 0..%d", s.Order, len(doc.Sections)-1)
		} else if seen[s.Order] {
			add(path+".order", "duplicate order %d", s.Order)
		}
		seen[s.Order] = true
		if s.Styles.BackgroundColor != "" && !IsBackground(s.Styles.BackgroundColor) {
			add(path+".styles.backgroundColor", "invalid color %q", s.Styles.BackgroundColor)
		}
		if s.Styles.TextColor != "" && !IsColor(s.Styles.TextColor) {
			add(path+".styles.textColor", "invalid color %q", s.Styles.TextColor)
		}
	}
	return out
}

// ValidateSection checks the section-local invariants (kind and colors).
// The id is not checked.
func ValidateSection(s Section) []Violation {
	doc := &Document{
		GlobalStyles: GlobalStyles{ColorScheme: ColorScheme{
			Primary: "#000", Secondary: "#000", Accent: "#000", Background: "#fff", Text: "#000",
		}},
		Sections: []Section{s},
	}
	doc.Sections[0].Order = 0
	var out []Violation
	for _, v := range Validate(doc) {
		v.Path = strings.TrimPrefix(v.Path, "sections[0].")
		if v.Path == "id" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sanitize returns a copy of doc with trimmed metadata and section orders
// renumbered by position.
func Sanitize(doc *Document) *Document {
	out := doc.Clone()
	out.Metadata.Title = truncate(strings.TrimSpace(out.Metadata.Title), maxTitleLen)
	out.Metadata.Description = truncate(strings.TrimSpace(out.Metadata.Description), maxDescriptionLen)
	renumber(out.Sections)
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
