package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

const systemPrompt = `You are a senior web designer producing complete, production-ready website structures.

Design for clear visual hierarchy, generous whitespace, readable typography, sufficient
color contrast (at least 4.5:1 for text) and a mobile-first layout. Write real, specific
copy for the user's business; never use lorem ipsum or placeholder text. Give every
section a purpose and use action-oriented call-to-action text.

Images: hero sections always carry a backgroundImage URL; feature, about, team and
gallery sections should carry image URLs where they help. Use high-quality placeholder
services such as https://images.unsplash.com/photo-<id>?w=1200&h=600&fit=crop and
always provide imageAlt text.

Color guidance by industry: tech and SaaS use blues, purples and teals; healthcare uses
blues and greens; finance uses blues and dark grays; creative agencies use bold colors
and gradients; food and restaurants use warm oranges and reds; luxury brands use gold,
black and deep purple.

OUTPUT FORMAT
Return ONLY one JSON object, with no markdown fences and no commentary, shaped like this:
{
  "metadata": {"title": "Specific, SEO-friendly title", "description": "150-160 character meta description"},
  "globalStyles": {
    "colorScheme": {"primary": "#hex", "secondary": "#hex", "accent": "#hex", "background": "#hex", "text": "#hex"},
    "typography": {
      "fontFamily": "'Inter', system-ui, sans-serif",
      "headingFont": "optional heading font",
      "fontSize": {"base": "16px", "h1": "3.5rem", "h2": "2.5rem", "h3": "2rem", "h4": "1.5rem"}
    },
    "spacing": {"sectionGap": "5rem", "containerPadding": "1.5rem"}
  },
  "sections": [
    {
      "type": "hero|about|features|services|pricing|testimonials|team|contact|footer|cta|gallery|custom",
      "content": {},
      "styles": {
        "backgroundColor": "#hex or gradient",
        "textColor": "#hex",
        "padding": {"top": "4rem", "right": "2rem", "bottom": "4rem", "left": "2rem"}
      },
      "visible": true
    }
  ],
  "assets": []
}

Content keys by section type:
- hero: heading, subheading, ctaText, ctaLink, secondaryCtaText, secondaryCtaLink, backgroundImage, imageAlt
- about: heading, description, mission, image, imageAlt, stats [{value, label}]
- features / services: heading, subheading, features or services [{title, description, image, icon}]
- pricing: heading, subheading, plans [{name, price, period, description, features [string], popular, ctaText}]
- testimonials: heading, testimonials [{name, role, avatar, quote, rating}]
- team: heading, subheading, members [{name, role, bio, image, social {platform: url}}]
- contact: heading, subheading, email, phone, address, buttonText
- cta: heading, subheading, ctaText, ctaLink
- gallery: heading, images [{url, alt}]
- footer: text, links [{text, href}]

RULES
1. Produce 4 to 8 sections.
2. The first section is a hero with a backgroundImage; the last section is a footer.
3. Follow a logical flow: hero, about or features, services, testimonials, contact, footer.
4. Every color is a valid hex code, rgb()/hsl() value or CSS gradient.
5. Write in English unless the user asks for another language.`

const modifySystemPrompt = `You are a senior web designer editing one section of an existing website.
Apply the user's instruction precisely while keeping the design consistent.

RULES
- Keep the section's id, type and order exactly as given.
- Keep the same JSON structure and content keys as the input; add keys only when the instruction needs them.
- Image URLs should come from high-quality placeholder services.
- Return ONLY the modified section as one JSON object with id, type, order, content, styles and visible.
  No markdown fences, no commentary.`

const suggestSystemPrompt = `You are a web design expert. Give 3 to 5 specific, actionable improvement
suggestions for the given website section. Return a JSON object: {"suggestions": ["..."]}.`

// userPrompt builds the generation request from the description, the
// keyword analysis and any caller options.
func userPrompt(prompt string, a Analysis, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a complete, professional website based on this description: %q\n\n", prompt)
	fmt.Fprintf(&b, "WEBSITE TYPE: %s\n", a.WebsiteType)
	fmt.Fprintf(&b, "INDUSTRY: %s\n", or(opts.Industry, a.Industry))
	fmt.Fprintf(&b, "DESIGN TONE: %s\n", a.Tone)
	if len(a.KeyFeatures) > 0 {
		fmt.Fprintf(&b, "REQUIRED SECTIONS: %s\n", strings.Join(a.KeyFeatures, ", "))
	}
	if len(a.ColorHints) > 0 {
		fmt.Fprintf(&b, "COLOR PREFERENCES: %s\n", strings.Join(a.ColorHints, ", "))
	}
	if opts.StylePreference != "" {
		fmt.Fprintf(&b, "STYLE PREFERENCE: %s\n", opts.StylePreference)
	}
	if opts.TargetAudience != "" {
		fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n", opts.TargetAudience)
	}
	if opts.ColorScheme != "" {
		fmt.Fprintf(&b, "COLOR SCHEME: %s\n", opts.ColorScheme)
	}
	b.WriteString(`
Generate 5 to 8 sections that suit the website type and industry, starting with a hero and
ending with a footer. Use real, specific copy and include calls to action throughout.
Return the complete website structure as JSON now.`)
	return b.String()
}

func modifyUserPrompt(s site.Section, instruction string) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding section: %w", err)
	}
	return fmt.Sprintf(`Current section:
%s

Instruction: %s

Return the complete modified section as JSON with id, type, order, content, styles and visible.
id, type and order must stay exactly the same; change only content, styles and visibility as instructed.`,
		data, instruction), nil
}

func suggestUserPrompt(s site.Section) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding section: %w", err)
	}
	return fmt.Sprintf("Section:\n%s\n\nReply as {\"suggestions\": [\"Improve contrast for accessibility\", \"...\"]}", data), nil
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
