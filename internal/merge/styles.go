package merge

import (
	"encoding/json"
	"fmt"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// styleKeys is the closed set of style record keys, in record order.
var styleKeys = []string{
	"backgroundColor", "backgroundImage", "textColor", "padding",
	"margin", "borderRadius", "boxShadow", "customCSS",
}

func mergeStyles(original site.Styles, patch json.RawMessage) (site.Styles, error) {
	out := original.Clone()
	if isAbsent(patch) {
		return out, nil
	}
	var fields map[string]json.RawMessage
	if err := decodeObject(patch, &fields); err != nil {
		return original, site.Wrap(site.InvalidMergeResult, err, "proposed styles are not an object")
	}

	for k, v := range fields {
		var err error
		switch k {
		case "backgroundColor":
			err = setString(&out.BackgroundColor, v)
		case "backgroundImage":
			err = setString(&out.BackgroundImage, v)
		case "textColor":
			err = setString(&out.TextColor, v)
		case "borderRadius":
			err = setString(&out.BorderRadius, v)
		case "boxShadow":
			err = setString(&out.BoxShadow, v)
		case "customCSS":
			err = setString(&out.CustomCSS, v)
		case "padding":
			out.Padding, err = mergeBox(out.Padding, v)
		case "margin":
			out.Margin, err = mergeBox(out.Margin, v)
		default:
			err = fmt.Errorf("unknown style key")
		}
		if err != nil {
			return original, site.Wrap(site.InvalidMergeResult, err, "styles."+k)
		}
	}
	return out, nil
}

func setString(dst *string, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("expected string, got %s", preview(raw))
	}
	*dst = s
	return nil
}

// mergeBox merges a partial four-sided patch into box field by field. A
// null patch clears the box; any non-object shape is rejected.
func mergeBox(box *site.Box, raw json.RawMessage) (*site.Box, error) {
	if isNull(raw) {
		return nil, nil
	}
	var sides map[string]json.RawMessage
	if err := decodeObject(raw, &sides); err != nil {
		return box, err
	}
	out := site.Box{}
	if box != nil {
		out = *box
	}
	for side, v := range sides {
		var dst *string
		switch side {
		case "top":
			dst = &out.Top
		case "right":
			dst = &out.Right
		case "bottom":
			dst = &out.Bottom
		case "left":
			dst = &out.Left
		default:
			return box, fmt.Errorf("unknown side %q", side)
		}
		if err := setString(dst, v); err != nil {
			return box, fmt.Errorf("%s: %w", side, err)
		}
	}
	return &out, nil
}

func changedStyleKeys(before, after site.Styles) []string {
	b, a := styleMap(before), styleMap(after)
	var keys []string
	for _, k := range styleKeys {
		if b[k] != a[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func styleMap(s site.Styles) map[string]string {
	box := func(b *site.Box) string {
		if b == nil {
			return ""
		}
		return b.Top + " " + b.Right + " " + b.Bottom + " " + b.Left
	}
	return map[string]string{
		"backgroundColor": s.BackgroundColor,
		"backgroundImage": s.BackgroundImage,
		"textColor":       s.TextColor,
		"padding":         box(s.Padding),
		"margin":          box(s.Margin),
		"borderRadius":    s.BorderRadius,
		"boxShadow":       s.BoxShadow,
		"customCSS":       s.CustomCSS,
	}
}
