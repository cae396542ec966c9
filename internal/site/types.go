package site

import (
	"encoding/json"
	"time"
)

// SectionType is the closed set of semantic section kinds.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionFeatures     SectionType = "features"
	SectionServices     SectionType = "services"
	SectionPricing      SectionType = "pricing"
	SectionTestimonials SectionType = "testimonials"
	SectionTeam         SectionType = "team"
	SectionContact      SectionType = "contact"
	SectionFooter       SectionType = "footer"
	SectionCTA          SectionType = "cta"
	SectionGallery      SectionType = "gallery"
	SectionCustom       SectionType = "custom"
)

// SectionTypes lists every valid section kind in declaration order.
var SectionTypes = []SectionType{
	SectionHero, SectionAbout, SectionFeatures, SectionServices, SectionPricing,
	SectionTestimonials, SectionTeam, SectionContact, SectionFooter, SectionCTA,
	SectionGallery, SectionCustom,
}

// Valid reports whether t is one of the closed section kinds.
func (t SectionType) Valid() bool {
	for _, v := range SectionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// EditOrigin records who produced an edit.
type EditOrigin string

const (
	EditManual EditOrigin = "manual"
	EditAI     EditOrigin = "ai"
)

// AssetType is the closed set of asset kinds.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetVideo AssetType = "video"
	AssetIcon  AssetType = "icon"
)

// Document is a full generated website.
type Document struct {
	ID           string       `json:"id"`
	Metadata     Metadata     `json:"metadata"`
	Sections     []Section    `json:"sections"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
	Assets       []Asset      `json:"assets"`
}

// Metadata is the title/description pair plus timestamps.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Section is one page block.
type Section struct {
	ID       string          `json:"id"`
	Type     SectionType     `json:"type"`
	Content  Content         `json:"content"`
	Styles   Styles          `json:"styles"`
	Order    int             `json:"order"`
	Visible  bool            `json:"visible"`
	Metadata SectionMetadata `json:"metadata"`
}

// SectionMetadata tracks the origin and edit log of a section.
type SectionMetadata struct {
	GeneratedByAI bool               `json:"generatedByAI"`
	LastEditedAt  time.Time          `json:"lastEditedAt"`
	EditHistory   []EditHistoryEntry `json:"editHistory"`
}

// EditHistoryEntry is one append-only record of a section edit.
type EditHistoryEntry struct {
	Timestamp   time.Time   `json:"timestamp"`
	Type        EditOrigin  `json:"type"`
	Description string      `json:"description"`
	Changes     EditChanges `json:"changes"`
}

// EditChanges lists the top-level keys an edit touched.
type EditChanges struct {
	Content    []string `json:"content,omitempty"`
	Styles     []string `json:"styles,omitempty"`
	Visibility bool     `json:"visibility,omitempty"`
}

// Styles is the per-section style record.
type Styles struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Padding         *Box   `json:"padding,omitempty"`
	Margin          *Box   `json:"margin,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	BoxShadow       string `json:"boxShadow,omitempty"`
	CustomCSS       string `json:"customCSS,omitempty"`
}

// Box holds four-sided CSS lengths.
type Box struct {
	Top    string `json:"top"`
	Right  string `json:"right"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
}

// GlobalStyles is the site-wide style sheet.
type GlobalStyles struct {
	ColorScheme ColorScheme `json:"colorScheme"`
	Typography  Typography  `json:"typography"`
	Spacing     Spacing     `json:"spacing"`
}

// ColorScheme holds the five named color roles.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Typography holds the font stacks and size scale.
type Typography struct {
	FontFamily  string   `json:"fontFamily"`
	HeadingFont string   `json:"headingFont,omitempty"`
	FontSize    FontSize `json:"fontSize"`
}

// FontSize is the base and heading size scale.
type FontSize struct {
	Base string `json:"base"`
	H1   string `json:"h1"`
	H2   string `json:"h2"`
	H3   string `json:"h3"`
	H4   string `json:"h4"`
}

// Spacing holds the two spacing tokens.
type Spacing struct {
	SectionGap       string `json:"sectionGap"`
	ContainerPadding string `json:"containerPadding"`
}

// Asset is a media reference attached to the document.
type Asset struct {
	ID       string                     `json:"id"`
	URL      string                     `json:"url"`
	Type     AssetType                  `json:"type"`
	Alt      string                     `json:"alt,omitempty"`
	Metadata map[string]json.RawMessage `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Sections = make([]Section, len(d.Sections))
	for i := range d.Sections {
		out.Sections[i] = d.Sections[i].Clone()
	}
	out.Assets = make([]Asset, len(d.Assets))
	for i, a := range d.Assets {
		out.Assets[i] = a
		out.Assets[i].Metadata = cloneRawMap(a.Metadata)
	}
	return &out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Content = s.Content.Clone()
	out.Styles = s.Styles.Clone()
	if s.Metadata.EditHistory != nil {
		out.Metadata.EditHistory = make([]EditHistoryEntry, len(s.Metadata.EditHistory))
		for i, e := range s.Metadata.EditHistory {
			e.Changes.Content = append([]string(nil), e.Changes.Content...)
			e.Changes.Styles = append([]string(nil), e.Changes.Styles...)
			out.Metadata.EditHistory[i] = e
		}
	}
	return out
}

// Clone returns a deep copy of the style record.
func (s Styles) Clone() Styles {
	out := s
	if s.Padding != nil {
		p := *s.Padding
		out.Padding = &p
	}
	if s.Margin != nil {
		m := *s.Margin
		out.Margin = &m
	}
	return out
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func cloneRawMap(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
