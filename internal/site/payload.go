package site

import "sort"

// Payload is the typed view of a section's content. Exactly one concrete
// type exists per SectionType.
type Payload interface {
	Kind() SectionType
}

// Link is a labeled hyperlink.
type Link struct {
	Text string
	Href string
}

// CTA is a call-to-action button.
type CTA struct {
	Text string
	Link string
}

// HeroContent is the payload of a hero section.
type HeroContent struct {
	Heading         string
	Subheading      string
	Primary         CTA
	Secondary       CTA
	BackgroundImage string
	ImageAlt        string
}

// AboutContent is the payload of an about section.
type AboutContent struct {
	Heading  string
	Text     string
	Mission  string
	Image    string
	ImageAlt string
	Stats    []Stat
}

// Stat is a labeled metric.
type Stat struct {
	Value string
	Label string
}

// Card is a titled block with optional image or icon, shared by feature,
// service and custom item lists.
type Card struct {
	Title       string
	Description string
	Image       string
	ImageAlt    string
	Icon        string
	Price       string
}

// FeaturesContent is the payload of a features section.
type FeaturesContent struct {
	Heading    string
	Subheading string
	Features   []Card
}

// ServicesContent is the payload of a services section.
type ServicesContent struct {
	Heading    string
	Subheading string
	Services   []Card
}

// Plan is one pricing tier.
type Plan struct {
	Name        string
	Price       string
	Period      string
	Description string
	Features    []string
	Popular     bool
	CTA         CTA
}

// PricingContent is the payload of a pricing section.
type PricingContent struct {
	Heading    string
	Subheading string
	Plans      []Plan
}

// Testimonial is one customer quote.
type Testimonial struct {
	Name   string
	Role   string
	Avatar string
	Quote  string
	Rating int
}

// TestimonialsContent is the payload of a testimonials section.
type TestimonialsContent struct {
	Heading      string
	Testimonials []Testimonial
}

// Member is one team member.
type Member struct {
	Name   string
	Role   string
	Bio    string
	Image  string
	Social []Link
}

// TeamContent is the payload of a team section.
type TeamContent struct {
	Heading    string
	Subheading string
	Members    []Member
}

// ContactContent is the payload of a contact section.
type ContactContent struct {
	Heading    string
	Subheading string
	Email      string
	Phone      string
	Address    string
	ButtonText string
}

// FooterContent is the payload of a footer section.
type FooterContent struct {
	Text  string
	Links []Link
}

// CTAContent is the payload of a call-to-action banner.
type CTAContent struct {
	Heading    string
	Subheading string
	Primary    CTA
	Secondary  CTA
}

// GalleryImage is one gallery tile.
type GalleryImage struct {
	URL string
	Alt string
}

// GalleryContent is the payload of a gallery section.
type GalleryContent struct {
	Heading string
	Images  []GalleryImage
}

// CustomContent is the generic payload used for custom sections and as the
// fallback for content that matches no known shape.
type CustomContent struct {
	Heading    string
	Subheading string
	Text       string
	Items      []Card
	CTA        CTA
	HTML       string
	Markdown   string
	Fields     Content
}

func (HeroContent) Kind() SectionType         { return SectionHero }
func (AboutContent) Kind() SectionType        { return SectionAbout }
func (FeaturesContent) Kind() SectionType     { return SectionFeatures }
func (ServicesContent) Kind() SectionType     { return SectionServices }
func (PricingContent) Kind() SectionType      { return SectionPricing }
func (TestimonialsContent) Kind() SectionType { return SectionTestimonials }
func (TeamContent) Kind() SectionType         { return SectionTeam }
func (ContactContent) Kind() SectionType      { return SectionContact }
func (FooterContent) Kind() SectionType       { return SectionFooter }
func (CTAContent) Kind() SectionType          { return SectionCTA }
func (GalleryContent) Kind() SectionType      { return SectionGallery }
func (CustomContent) Kind() SectionType       { return SectionCustom }

// Payload decodes the section content into its typed variant. Decoding is
// lenient: missing or mistyped keys yield zero values, never errors.
func (s Section) Payload() Payload {
	return DecodePayload(s.Type, s.Content)
}

// DecodePayload decodes content for the given kind. Unknown kinds decode
// as CustomContent.
func DecodePayload(kind SectionType, c Content) Payload {
	switch kind {
	case SectionHero:
		return HeroContent{
			Heading:         c.String("heading", "title"),
			Subheading:      c.String("subheading", "subtitle", "description"),
			Primary:         CTA{Text: c.String("ctaText", "buttonText"), Link: c.String("ctaLink", "buttonLink")},
			Secondary:       CTA{Text: c.String("secondaryCtaText"), Link: c.String("secondaryCtaLink")},
			BackgroundImage: c.String("backgroundImage", "image"),
			ImageAlt:        c.String("imageAlt", "alt"),
		}
	case SectionAbout:
		return AboutContent{
			Heading:  c.String("heading", "title"),
			Text:     c.String("text", "description", "body"),
			Mission:  c.String("mission"),
			Image:    c.String("image", "backgroundImage"),
			ImageAlt: c.String("imageAlt", "alt"),
			Stats:    decodeStats(c.Objects("stats", "metrics")),
		}
	case SectionFeatures:
		return FeaturesContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "description"),
			Features:   decodeCards(c.Objects("features", "items")),
		}
	case SectionServices:
		return ServicesContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "description"),
			Services:   decodeCards(c.Objects("services", "items")),
		}
	case SectionPricing:
		return PricingContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "description"),
			Plans:      decodePlans(c.Objects("plans", "pricing", "items", "tiers")),
		}
	case SectionTestimonials:
		return TestimonialsContent{
			Heading:      c.String("heading", "title"),
			Testimonials: decodeTestimonials(c.Objects("testimonials", "items", "reviews")),
		}
	case SectionTeam:
		return TeamContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "description"),
			Members:    decodeMembers(c.Objects("members", "team", "items")),
		}
	case SectionContact:
		return ContactContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "description", "text"),
			Email:      c.String("email"),
			Phone:      c.String("phone"),
			Address:    c.String("address"),
			ButtonText: c.String("buttonText", "ctaText", "submitText"),
		}
	case SectionFooter:
		return FooterContent{
			Text:  c.String("text", "copyright"),
			Links: decodeLinks(c.Objects("links", "navigation")),
		}
	case SectionCTA:
		return CTAContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading", "text", "description"),
			Primary:    CTA{Text: c.String("ctaText", "buttonText"), Link: c.String("ctaLink", "buttonLink")},
			Secondary:  CTA{Text: c.String("secondaryCtaText"), Link: c.String("secondaryCtaLink")},
		}
	case SectionGallery:
		return GalleryContent{
			Heading: c.String("heading", "title"),
			Images:  decodeGallery(c.Objects("images", "items", "photos")),
		}
	default:
		return CustomContent{
			Heading:    c.String("heading", "title"),
			Subheading: c.String("subheading"),
			Text:       c.String("text", "description", "body"),
			Items:      decodeCards(c.Objects("items")),
			CTA:        CTA{Text: c.String("ctaText", "buttonText"), Link: c.String("ctaLink", "buttonLink")},
			HTML:       c.String("html"),
			Markdown:   c.String("markdown"),
			Fields:     c.Clone(),
		}
	}
}

func decodeCards(items []Content) []Card {
	out := make([]Card, 0, len(items))
	for _, it := range items {
		out = append(out, Card{
			Title:       it.String("title", "name", "value"),
			Description: it.String("description", "text"),
			Image:       it.String("image", "backgroundImage"),
			ImageAlt:    it.String("imageAlt", "alt"),
			Icon:        it.String("icon"),
			Price:       it.String("price"),
		})
	}
	return out
}

func decodeStats(items []Content) []Stat {
	out := make([]Stat, 0, len(items))
	for _, it := range items {
		st := Stat{Value: it.String("value", "number"), Label: it.String("label", "title", "name")}
		if st.Value != "" || st.Label != "" {
			out = append(out, st)
		}
	}
	return out
}

func decodePlans(items []Content) []Plan {
	out := make([]Plan, 0, len(items))
	for _, it := range items {
		out = append(out, Plan{
			Name:        it.String("name", "title", "value"),
			Price:       it.String("price"),
			Period:      it.String("period", "interval"),
			Description: it.String("description"),
			Features:    it.StringList("features", "items"),
			Popular:     it.Bool("popular", "featured", "highlighted"),
			CTA:         CTA{Text: it.String("ctaText", "buttonText"), Link: it.String("ctaLink", "buttonLink")},
		})
	}
	return out
}

func decodeTestimonials(items []Content) []Testimonial {
	out := make([]Testimonial, 0, len(items))
	for _, it := range items {
		rating, _ := it.Int("rating", "stars")
		out = append(out, Testimonial{
			Name:   it.String("name", "author"),
			Role:   it.String("role", "title", "company"),
			Avatar: it.String("avatar", "image"),
			Quote:  it.String("quote", "text", "content", "value"),
			Rating: rating,
		})
	}
	return out
}

func decodeMembers(items []Content) []Member {
	out := make([]Member, 0, len(items))
	for _, it := range items {
		m := Member{
			Name:  it.String("name", "value"),
			Role:  it.String("role", "title"),
			Bio:   it.String("bio", "description"),
			Image: it.String("image", "avatar"),
		}
		if social := it.Object("social"); social != nil {
			for _, platform := range social.Keys() {
				if href := social.String(platform); href != "" {
					m.Social = append(m.Social, Link{Text: platform, Href: href})
				}
			}
		}
		out = append(out, m)
	}
	return out
}

func decodeLinks(items []Content) []Link {
	out := make([]Link, 0, len(items))
	for _, it := range items {
		l := Link{Text: it.String("text", "label", "title", "value"), Href: it.String("href", "url", "link")}
		if l.Text != "" {
			out = append(out, l)
		}
	}
	return out
}

func decodeGallery(items []Content) []GalleryImage {
	out := make([]GalleryImage, 0, len(items))
	for _, it := range items {
		img := GalleryImage{
			URL: it.String("url", "src", "image", "value"),
			Alt: it.String("alt", "caption"),
		}
		if img.URL != "" {
			out = append(out, img)
		}
	}
	return out
}

// sortedKinds is used by callers that need deterministic kind iteration.
func sortedKinds() []string {
	out := make([]string, len(SectionTypes))
	for i, t := range SectionTypes {
		out[i] = string(t)
	}
	sort.Strings(out)
	return out
}
