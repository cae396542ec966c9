package site

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(kinds ...SectionType) *Document {
	doc := &Document{
		ID:       "doc-1",
		Metadata: Metadata{Title: "Acme", Description: "Widgets"},
		GlobalStyles: GlobalStyles{ColorScheme: ColorScheme{
			Primary: "#3b82f6", Secondary: "#1e40af", Accent: "#f59e0b", Background: "#ffffff", Text: "#111827",
		}},
	}
	for i, k := range kinds {
		doc.Sections = append(doc.Sections, Section{
			ID:      string(k) + "-id",
			Type:    k,
			Content: Content{"heading": json.RawMessage(`"` + string(k) + `"`)},
			Order:   i,
			Visible: true,
		})
	}
	return doc
}

func assertContiguous(t *testing.T, doc *Document) {
	t.Helper()
	seen := make(map[int]bool)
	for _, s := range doc.Sections {
		assert.False(t, seen[s.Order], "duplicate order %d", s.Order)
		seen[s.Order] = true
	}
	for i := range doc.Sections {
		assert.True(t, seen[i], "missing order %d", i)
	}
}

func TestIsColor(t *testing.T) {
	for _, c := range []string{"#fff", "#FFFF", "#a1b2c3", "#a1b2c3d4", "rgb(0, 0, 0)", "rgba(0,0,0,0.4)", "hsl(210 40% 50%)", "RebeccaPurple", "transparent", "currentColor"} {
		assert.True(t, IsColor(c), c)
	}
	for _, c := range []string{"", "#12", "#ggg", "blu", "rgb(", "url(x.png)", "linear-gradient(#fff, #000)"} {
		assert.False(t, IsColor(c), c)
	}
	assert.True(t, IsBackground("linear-gradient(135deg, #667eea 0%, #764ba2 100%)"))
	assert.True(t, IsBackground("#000"))
	assert.False(t, IsBackground("expression(alert(1))"))
}

func TestValidate(t *testing.T) {
	doc := testDoc(SectionHero, SectionFeatures, SectionFooter)
	assert.Empty(t, Validate(doc))
	assert.True(t, Valid(doc))

	doc.Sections[1].Order = 0
	doc.Sections[2].Type = "carousel"
	doc.GlobalStyles.ColorScheme.Accent = "not-a-color"
	doc.Sections[0].Styles.TextColor = "#12"

	violations := Validate(doc)
	paths := make([]string, 0, len(violations))
	for _, v := range violations {
		paths = append(paths, v.Path)
	}
	assert.ElementsMatch(t, []string{
		"globalStyles.colorScheme.accent",
		"sections[0].styles.textColor",
		"sections[1].order",
		"sections[2].type",
	}, paths)
	assert.False(t, Valid(doc))
	assert.False(t, Valid(nil))
}

func TestValidateSectionIDs(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout, SectionFooter)
	doc.Sections[1].ID = ""
	doc.Sections[2].ID = "hero-id"

	violations := Validate(doc)
	require.Len(t, violations, 2)
	assert.Equal(t, "sections[1].id", violations[0].Path)
	assert.Equal(t, "sections[2].id", violations[1].Path)
	assert.Contains(t, violations[1].Message, "sections[0]")
}

func TestValidateSection(t *testing.T) {
	s := Section{Type: SectionCTA, Styles: Styles{BackgroundColor: "linear-gradient(#667eea, #764ba2)"}, Order: 7}
	assert.Empty(t, ValidateSection(s))

	s.Type = "banner"
	v := ValidateSection(s)
	require.Len(t, v, 1)
	assert.Equal(t, "type", v[0].Path)
}

func TestSanitize(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout)
	doc.Sections[0].Order = 5
	doc.Sections[1].Order = 9
	long := make([]rune, 250)
	for i := range long {
		long[i] = 'é'
	}
	doc.Metadata.Title = "  " + string(long) + "  "

	out := Sanitize(doc)
	assert.Equal(t, 200, len([]rune(out.Metadata.Title)))
	assertContiguous(t, out)
	assert.Equal(t, 5, doc.Sections[0].Order, "input must not be mutated")
}

func TestAddSection(t *testing.T) {
	doc := testDoc(SectionHero, SectionFooter)
	pos := 1
	out, err := AddSection(doc, Section{Type: SectionPricing, Visible: true}, &pos)
	require.NoError(t, err)
	require.Len(t, out.Sections, 3)
	assert.Equal(t, SectionPricing, out.Sections[1].Type)
	assert.NotEmpty(t, out.Sections[1].ID)
	assert.NotNil(t, out.Sections[1].Content)
	assertContiguous(t, out)
	assert.Len(t, doc.Sections, 2)
	assert.False(t, out.Metadata.UpdatedAt.IsZero())

	far := 99
	out, err = AddSection(out, Section{Type: SectionCTA}, &far)
	require.NoError(t, err)
	assert.Equal(t, SectionCTA, out.Sections[3].Type)

	_, err = AddSection(doc, Section{Type: "slider"}, nil)
	assert.True(t, IsKind(err, InvalidInput))
}

// shuffledDoc stores its sections out of display order: about, hero,
// footer are displayed, but held as hero, about, footer.
func shuffledDoc() *Document {
	doc := testDoc(SectionHero, SectionAbout, SectionFooter)
	doc.Sections[0].Order = 1
	doc.Sections[1].Order = 0
	return doc
}

func displayed(doc *Document) []string {
	var ids []string
	for _, s := range SortedSections(doc.Sections) {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestAddSectionUsesDisplayOrder(t *testing.T) {
	pos := 1
	out, err := AddSection(shuffledDoc(), Section{ID: "ignored", Type: SectionCTA}, &pos)
	require.NoError(t, err)
	ids := displayed(out)
	require.Len(t, ids, 4)
	assert.Equal(t, "about-id", ids[0])
	assert.Equal(t, "hero-id", ids[2])
	assert.Equal(t, "footer-id", ids[3])
	assert.NotEqual(t, "ignored", ids[1])
	assertContiguous(t, out)
}

func TestRemoveSectionKeepsDisplayOrder(t *testing.T) {
	out, err := RemoveSection(shuffledDoc(), "footer-id")
	require.NoError(t, err)
	assert.Equal(t, []string{"about-id", "hero-id"}, displayed(out))
	assertContiguous(t, out)

	out, err = RemoveSection(shuffledDoc(), "about-id")
	require.NoError(t, err)
	assert.Equal(t, []string{"hero-id", "footer-id"}, displayed(out))
}

func TestRemoveSection(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout, SectionFooter)
	out, err := RemoveSection(doc, "about-id")
	require.NoError(t, err)
	require.Len(t, out.Sections, 2)
	assertContiguous(t, out)
	assert.Equal(t, 1, out.Sections[1].Order)

	_, err = RemoveSection(doc, "missing")
	assert.True(t, IsKind(err, InvalidInput))
}

func TestReorderSections(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout, SectionFeatures, SectionFooter)
	out, err := ReorderSections(doc, 3, 0)
	require.NoError(t, err)
	assertContiguous(t, out)
	got := make([]SectionType, 0, 4)
	for _, s := range SortedSections(out.Sections) {
		got = append(got, s.Type)
	}
	assert.Equal(t, []SectionType{SectionFooter, SectionHero, SectionAbout, SectionFeatures}, got)

	_, err = ReorderSections(doc, 0, 4)
	assert.True(t, IsKind(err, InvalidInput))
	_, err = ReorderSections(doc, -1, 0)
	assert.True(t, IsKind(err, InvalidInput))
}

func TestDuplicateSection(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout)
	doc.Sections[0].Metadata.EditHistory = []EditHistoryEntry{{Type: EditAI, Description: "brighter"}}

	out, newID, err := DuplicateSection(doc, "hero-id")
	require.NoError(t, err)
	require.Len(t, out.Sections, 3)
	assert.NotEqual(t, "hero-id", newID)
	assert.Equal(t, newID, out.Sections[1].ID)
	assert.Equal(t, SectionHero, out.Sections[1].Type)
	assert.Len(t, out.Sections[1].Metadata.EditHistory, 1)
	assertContiguous(t, out)

	out.Sections[1].Content["heading"] = json.RawMessage(`"changed"`)
	assert.JSONEq(t, `"hero"`, string(doc.Sections[0].Content["heading"]))
}

func TestReplaceSection(t *testing.T) {
	doc := testDoc(SectionHero, SectionAbout)
	s := doc.Sections[1].Clone()
	s.Order = 42
	s.Content["heading"] = json.RawMessage(`"About us"`)

	out, err := ReplaceSection(doc, s)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Sections[1].Order)
	assert.JSONEq(t, `"About us"`, string(out.Sections[1].Content["heading"]))
	assert.JSONEq(t, `"about"`, string(doc.Sections[1].Content["heading"]))
}

func TestPayload(t *testing.T) {
	var c Content
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Plans",
		"pricing": [
			{"name": "Basic", "price": 9, "features": ["1 site", {"text": "Email support"}]},
			{"name": "Pro", "price": "$29", "featured": true}
		]
	}`), &c))

	p, ok := DecodePayload(SectionPricing, c).(PricingContent)
	require.True(t, ok)
	assert.Equal(t, "Plans", p.Heading)
	require.Len(t, p.Plans, 2)
	assert.Equal(t, "9", p.Plans[0].Price)
	assert.Equal(t, []string{"1 site", "Email support"}, p.Plans[0].Features)
	assert.True(t, p.Plans[1].Popular)

	team := Section{Type: SectionTeam, Content: Content{
		"team": json.RawMessage(`[{"name":"Ada","title":"CTO","avatar":"a.png","social":{"twitter":"t","github":"g"}}]`),
	}}.Payload().(TeamContent)
	require.Len(t, team.Members, 1)
	assert.Equal(t, "CTO", team.Members[0].Role)
	assert.Equal(t, "a.png", team.Members[0].Image)
	assert.Equal(t, []Link{{Text: "github", Href: "g"}, {Text: "twitter", Href: "t"}}, team.Members[0].Social)

	gallery := DecodePayload(SectionGallery, Content{
		"images": json.RawMessage(`["a.jpg", {"src": "b.jpg", "alt": "B"}, 3.5, null]`),
	}).(GalleryContent)
	assert.Equal(t, []GalleryImage{{URL: "a.jpg"}, {URL: "b.jpg", Alt: "B"}, {URL: "3.5"}}, gallery.Images)

	custom, ok := DecodePayload("whatever", Content{"body": json.RawMessage(`"hi"`)}).(CustomContent)
	require.True(t, ok)
	assert.Equal(t, "hi", custom.Text)
}

func TestContentHas(t *testing.T) {
	c := Content{"image": json.RawMessage(` null `), "alt": json.RawMessage(`""`)}
	assert.False(t, c.Has("image"))
	assert.True(t, c.Has("alt"))
	assert.False(t, c.Has("missing"))
}

func TestContentMarshalNil(t *testing.T) {
	out, err := json.Marshal(Section{Type: SectionHero})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"content":{}`)
}

func TestErrorKind(t *testing.T) {
	base := Errorf(SchemaViolation, "missing %s", "sections")
	wrapped := Wrap(GenerationFailed, base, "generate")
	assert.Equal(t, GenerationFailed, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
	assert.Equal(t, "SchemaViolation: missing sections", base.Error())
	assert.Contains(t, wrapped.Error(), "generate: SchemaViolation")
	assert.False(t, IsKind(nil, GenerationFailed))
}
