package generate

import "strings"

// Analysis is what a quick keyword scan of the user's description reveals.
type Analysis struct {
	WebsiteType string
	Industry    string
	Tone        string
	KeyFeatures []string
	ColorHints  []string
}

var websiteTypes = []struct {
	kind     string
	keywords []string
}{
	{"portfolio", []string{"portfolio", "personal"}},
	{"ecommerce", []string{"e-commerce", "shop", "store"}},
	{"landing", []string{"landing"}},
	{"blog", []string{"blog"}},
	{"saas", []string{"saas", "software"}},
}

var industries = []string{
	"tech", "healthcare", "finance", "education", "food", "restaurant",
	"fashion", "real estate", "legal", "consulting", "creative", "agency",
	"nonprofit", "fitness", "beauty", "travel", "hospitality",
}

var featureKeywords = []string{
	"contact form", "pricing", "testimonials", "gallery", "blog",
	"team", "services", "products", "about", "features", "portfolio",
}

var tones = []struct {
	tone     string
	keywords []string
}{
	{"modern", []string{"modern", "minimal"}},
	{"bold", []string{"bold", "vibrant"}},
	{"elegant", []string{"elegant", "luxury"}},
}

var colorWords = []string{"blue", "red", "green", "purple", "orange", "yellow", "pink", "teal", "black", "white", "gray"}

// Analyze scans prompt for website type, industry, tone, requested
// sections and color words. Unmatched fields fall back to business,
// general and professional.
func Analyze(prompt string) Analysis {
	lower := strings.ToLower(prompt)
	a := Analysis{WebsiteType: "business", Industry: "general", Tone: "professional"}

	for _, t := range websiteTypes {
		if containsAny(lower, t.keywords) {
			a.WebsiteType = t.kind
			break
		}
	}
	for _, ind := range industries {
		if strings.Contains(lower, ind) {
			a.Industry = ind
			break
		}
	}
	for _, t := range tones {
		if containsAny(lower, t.keywords) {
			a.Tone = t.tone
			break
		}
	}
	for _, f := range featureKeywords {
		if strings.Contains(lower, f) {
			a.KeyFeatures = append(a.KeyFeatures, f)
		}
	}
	for _, c := range colorWords {
		if strings.Contains(lower, c) {
			a.ColorHints = append(a.ColorHints, c)
		}
	}
	return a
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
