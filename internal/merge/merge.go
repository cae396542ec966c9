// Package merge applies partial AI or manual edits to a section without
// touching its identity fields.
package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Proposal is a partial section as returned by the generator or sent by an
// editor. ID, Type and Order are decoded so callers can inspect them, but
// Apply never copies them onto the result.
type Proposal struct {
	ID      string           `json:"id,omitempty"`
	Type    site.SectionType `json:"type,omitempty"`
	Order   *int             `json:"order,omitempty"`
	Content json.RawMessage  `json:"content,omitempty"`
	Styles  json.RawMessage  `json:"styles,omitempty"`
	Visible *bool            `json:"visible,omitempty"`
}

// Empty reports whether the proposal carries no content, style or
// visibility change.
func (p Proposal) Empty() bool {
	return isAbsent(p.Content) && isAbsent(p.Styles) && p.Visible == nil
}

// Edit describes who made a change and why.
type Edit struct {
	Origin      site.EditOrigin
	Instruction string
	At          time.Time
}

// aliasGroups lists content keys that must always hold the same value. The
// first key of each group wins when both are supplied.
var aliasGroups = [][2]string{
	{"backgroundImage", "image"},
	{"imageAlt", "alt"},
}

// Apply merges p into original and appends one edit history entry. On
// failure the original section is returned unchanged with an
// InvalidMergeResult error.
func Apply(original site.Section, p Proposal, e Edit) (site.Section, error) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if e.Origin == "" {
		e.Origin = site.EditManual
	}

	content, err := mergeContent(original.Content, p.Content)
	if err != nil {
		return original, err
	}
	styles, err := mergeStyles(original.Styles, p.Styles)
	if err != nil {
		return original, err
	}

	result := original.Clone()
	result.Content = content
	result.Styles = styles
	if p.Visible != nil {
		result.Visible = *p.Visible
	}

	if v := site.ValidateSection(result); len(v) > 0 {
		return original, &site.Error{
			Kind:    site.InvalidMergeResult,
			Message: fmt.Sprintf("merged section %s is invalid", original.ID),
			Details: v,
		}
	}

	changes := site.EditChanges{
		Content:    changedContentKeys(original.Content, result.Content),
		Styles:     changedStyleKeys(original.Styles, result.Styles),
		Visibility: original.Visible != result.Visible,
	}
	result.Metadata.LastEditedAt = e.At
	result.Metadata.EditHistory = append(result.Metadata.EditHistory, site.EditHistoryEntry{
		Timestamp:   e.At,
		Type:        e.Origin,
		Description: describe(e, changes),
		Changes:     changes,
	})
	return result, nil
}

func mergeContent(original site.Content, patch json.RawMessage) (site.Content, error) {
	out := original.Clone()
	if out == nil {
		out = site.Content{}
	}
	var fields map[string]json.RawMessage
	if !isAbsent(patch) {
		if err := decodeObject(patch, &fields); err != nil {
			return nil, site.Wrap(site.InvalidMergeResult, err, "proposed content is not an object")
		}
	}
	for k, v := range fields {
		if isNull(v) {
			delete(out, k)
			continue
		}
		out[k] = v
	}

	for _, group := range aliasGroups {
		resolved, ok := resolveAlias(group, fields, original)
		for _, k := range group {
			switch {
			case ok:
				out[k] = resolved
			case resolved != nil:
				delete(out, k)
			}
		}
	}
	return out, nil
}

// resolveAlias picks the value for an alias group: proposal keys first, in
// group order, then original keys. A proposal that nulls any key of the
// group without setting another clears the group, reported as ok false with
// the null value.
func resolveAlias(group [2]string, proposal map[string]json.RawMessage, original site.Content) (json.RawMessage, bool) {
	var cleared json.RawMessage
	for _, k := range group {
		v, ok := proposal[k]
		switch {
		case !ok:
		case isNull(v):
			cleared = v
		default:
			return v, true
		}
	}
	if cleared != nil {
		return cleared, false
	}
	for _, k := range group {
		if original.Has(k) {
			return original[k], true
		}
	}
	return nil, false
}

func changedContentKeys(before, after site.Content) []string {
	var keys []string
	for k, v := range after {
		if old, ok := before[k]; !ok || !bytes.Equal(old, v) {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func describe(e Edit, c site.EditChanges) string {
	if s := strings.TrimSpace(e.Instruction); s != "" {
		return s
	}
	if e.Origin == site.EditAI {
		return "Section modified by AI"
	}
	keys := append(append([]string(nil), c.Content...), c.Styles...)
	if c.Visibility {
		keys = append(keys, "visible")
	}
	if len(keys) == 0 {
		return "Manual edit"
	}
	return "Manual edit: " + strings.Join(keys, ", ")
}

func decodeObject(raw json.RawMessage, v *map[string]json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return fmt.Errorf("expected JSON object, got %s", preview(raw))
	}
	return json.Unmarshal(raw, v)
}

func isAbsent(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || isNull(raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func preview(raw []byte) string {
	if len(raw) > 40 {
		return string(raw[:40]) + "..."
	}
	return string(raw)
}
