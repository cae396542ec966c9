// Package parser turns untrusted model output into validated documents,
// sections and edit proposals.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Overridable in tests.
var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = site.NewID
)

type wireMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
}

type wireSection struct {
	Type    site.SectionType `json:"type"`
	Content site.Content     `json:"content"`
	Styles  site.Styles      `json:"styles"`
	Visible *bool            `json:"visible"`
}

type wireDocument struct {
	Metadata     wireMetadata      `json:"metadata"`
	GlobalStyles site.GlobalStyles `json:"globalStyles"`
	Sections     []wireSection     `json:"sections"`
	Assets       []site.Asset      `json:"assets"`
}

func (w wireSection) section(ts time.Time) site.Section {
	s := site.Section{
		Type:    w.Type,
		Content: w.Content,
		Styles:  w.Styles,
		Visible: w.Visible == nil || *w.Visible,
		Metadata: site.SectionMetadata{
			GeneratedByAI: true,
			LastEditedAt:  ts,
			EditHistory:   []site.EditHistoryEntry{},
		},
	}
	if s.Content == nil {
		s.Content = site.Content{}
	}
	return s
}

// ParseDocument parses a full generation response. Every section gets a
// fresh id and an order equal to its array position.
func ParseDocument(raw string) (*site.Document, error) {
	data, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	if err := check(documentSchema, data, "document"); err != nil {
		return nil, err
	}
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, site.Wrap(site.SchemaViolation, err, "decoding document")
	}

	ts := now()
	doc := &site.Document{
		ID: newID(),
		Metadata: site.Metadata{
			Title:       w.Metadata.Title,
			Description: w.Metadata.Description,
			Favicon:     w.Metadata.Favicon,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		},
		GlobalStyles: w.GlobalStyles,
		Sections:     make([]site.Section, 0, len(w.Sections)),
		Assets:       make([]site.Asset, 0, len(w.Assets)),
	}
	for i, ws := range w.Sections {
		s := ws.section(ts)
		s.ID = newID()
		s.Order = i
		doc.Sections = append(doc.Sections, s)
	}
	for _, a := range w.Assets {
		if a.ID == "" {
			a.ID = newID()
		}
		if a.Type == "" {
			a.Type = site.AssetImage
		}
		doc.Assets = append(doc.Assets, a)
	}

	doc = site.Sanitize(doc)
	if v := site.Validate(doc); len(v) > 0 {
		return nil, &site.Error{
			Kind:    site.SchemaViolation,
			Message: fmt.Sprintf("document is invalid: %s", v[0]),
			Details: v,
		}
	}
	return doc, nil
}

// ParseSection parses a single section. Identity and order are left empty
// for the caller to supply.
func ParseSection(raw string) (site.Section, error) {
	data, err := Extract(raw)
	if err != nil {
		return site.Section{}, err
	}
	data = unwrapSection(data)
	if err := check(sectionSchema, data, "section"); err != nil {
		return site.Section{}, err
	}
	var w wireSection
	if err := json.Unmarshal(data, &w); err != nil {
		return site.Section{}, site.Wrap(site.SchemaViolation, err, "decoding section")
	}
	s := w.section(now())
	if v := site.ValidateSection(s); len(v) > 0 {
		return site.Section{}, &site.Error{
			Kind:    site.SchemaViolation,
			Message: fmt.Sprintf("section is invalid: %s", v[0]),
			Details: v,
		}
	}
	return s, nil
}

// ParseProposal parses a section modification response into a patch. A
// proposal without content, styles or visibility is a SchemaViolation;
// shape checks on content and styles are left to merge.Apply.
func ParseProposal(raw string) (merge.Proposal, error) {
	data, err := Extract(raw)
	if err != nil {
		return merge.Proposal{}, err
	}
	data = unwrapSection(data)
	var p merge.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return merge.Proposal{}, site.Wrap(site.SchemaViolation, err, "decoding proposal")
	}
	if p.Empty() {
		return merge.Proposal{}, site.Errorf(site.SchemaViolation, "proposal has no content, styles or visible field")
	}
	return p, nil
}

// ParseSuggestions accepts a bare JSON array of strings or an object with a
// "suggestions" or "improvements" array.
func ParseSuggestions(raw string) ([]string, error) {
	data, err := extract(raw, "[{")
	if err != nil {
		return nil, err
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, site.Wrap(site.SchemaViolation, err, "decoding suggestions")
		}
		body, ok := wrapped["suggestions"]
		if !ok {
			body, ok = wrapped["improvements"]
		}
		if !ok || json.Unmarshal(body, &list) != nil {
			return nil, site.Errorf(site.SchemaViolation, "no suggestions array in response")
		}
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if json.Unmarshal(item, &s) == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj map[string]string
		if json.Unmarshal(item, &obj) == nil {
			for _, k := range []string{"suggestion", "text", "description", "title"} {
				if v := strings.TrimSpace(obj[k]); v != "" {
					out = append(out, v)
					break
				}
			}
		}
	}
	return out, nil
}

// unwrapSection unwraps {"section": {...}} envelopes some models emit.
func unwrapSection(data []byte) []byte {
	var env map[string]json.RawMessage
	if json.Unmarshal(data, &env) != nil {
		return data
	}
	inner, ok := env["section"]
	if !ok || len(env) != 1 {
		return data
	}
	if _, err := Extract(string(inner)); err != nil {
		return data
	}
	return inner
}
