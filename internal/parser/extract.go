package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

var (
	jsonFenceRe = regexp.MustCompile("(?s)```(?:json|JSON)[ \t]*\r?\n(.*?)\r?\n[ \t]*```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\r?\n(.*?)\r?\n[ \t]*```")
)

// Extract returns the JSON object embedded in raw model output. It strips
// markdown code fences, then falls back to brace matching over any
// surrounding prose.
func Extract(raw string) ([]byte, error) {
	return extract(raw, "{")
}

// extract locates a JSON value whose first byte is one of openers.
func extract(raw, openers string) ([]byte, error) {
	text := stripFences(strings.TrimSpace(raw))
	if text == "" {
		return nil, site.Errorf(site.MalformedResponse, "response is empty")
	}
	if strings.ContainsRune(openers, rune(text[0])) && json.Valid([]byte(text)) {
		return []byte(text), nil
	}

	first := strings.IndexAny(text, openers)
	if first < 0 {
		return nil, site.Errorf(site.MalformedResponse, "no JSON found in response: %s", clip(text))
	}
	for start := first; start >= 0; start = nextOpener(text, openers, start) {
		if end := matchBracket(text, start); end > start {
			if candidate := text[start : end+1]; json.Valid([]byte(candidate)) {
				return []byte(candidate), nil
			}
		}
	}
	// No balanced candidate parsed; try the widest span.
	if last := strings.LastIndexByte(text, closerFor(text[first])); last > first {
		if candidate := text[first : last+1]; json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}
	return nil, site.Errorf(site.MalformedResponse, "response is not valid JSON: %s", clip(text))
}

func stripFences(text string) string {
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// matchBracket returns the index of the bracket closing the one at start,
// skipping brackets inside JSON strings. It returns -1 if none closes.
func matchBracket(text string, start int) int {
	open := text[start]
	closer := closerFor(open)
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func nextOpener(text, openers string, after int) int {
	i := strings.IndexAny(text[after+1:], openers)
	if i < 0 {
		return -1
	}
	return after + 1 + i
}

func closerFor(open byte) byte {
	if open == '[' {
		return ']'
	}
	return '}'
}

func clip(s string) string {
	const limit = 80
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
