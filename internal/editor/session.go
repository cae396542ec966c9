// Package editor holds editing sessions: one active document per project,
// its undo history, and the operations that mutate it. Every mutation
// commits a full document snapshot.
package editor

import (
	"context"

	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/history"
	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Generator is the part of the orchestrator a session needs.
// *generate.Orchestrator satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts generate.Options) (*generate.Result, error)
	Modify(ctx context.Context, section site.Section, instruction string) (*generate.ModifyResult, error)
	Suggest(ctx context.Context, section site.Section) []string
}

// Session owns one document and its history. It is not safe for concurrent
// use; Manager serializes access per project.
type Session struct {
	history *history.Store
}

// NewSession starts a session whose first snapshot is doc.
func NewSession(doc *site.Document, historyLimit int) *Session {
	h := history.New(historyLimit)
	h.Commit(doc)
	return &Session{history: h}
}

// Document returns a copy of the active document.
func (s *Session) Document() *site.Document { return s.history.Current() }

// State reports the undo/redo availability.
func (s *Session) State() State {
	return State{
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
		Position: s.history.Position(),
		Length:   s.history.Len(),
	}
}

// State is the history position of a session.
type State struct {
	CanUndo  bool `json:"canUndo"`
	CanRedo  bool `json:"canRedo"`
	Position int  `json:"position"`
	Length   int  `json:"length"`
}

// Edit applies a manual proposal to section id.
func (s *Session) Edit(id string, p merge.Proposal) (*site.Document, site.Section, error) {
	doc := s.history.Current()
	original, ok := doc.Section(id)
	if !ok {
		return nil, site.Section{}, site.Errorf(site.InvalidInput, "section %q not found", id)
	}
	if p.Empty() {
		return nil, site.Section{}, site.Errorf(site.InvalidInput, "edit changes nothing")
	}
	merged, err := merge.Apply(original, p, merge.Edit{Origin: site.EditManual})
	if err != nil {
		return nil, site.Section{}, err
	}
	next, err := site.ReplaceSection(doc, merged)
	if err != nil {
		return nil, site.Section{}, err
	}
	return s.commit(next), merged, nil
}

// Modify asks gen to apply instruction to section id and commits the
// merged result. The document is untouched when generation, parsing or
// merging fails.
func (s *Session) Modify(ctx context.Context, gen Generator, id, instruction string) (*site.Document, *generate.ModifyResult, error) {
	doc := s.history.Current()
	original, ok := doc.Section(id)
	if !ok {
		return nil, nil, site.Errorf(site.InvalidInput, "section %q not found", id)
	}
	res, err := gen.Modify(ctx, original, instruction)
	if err != nil {
		return nil, nil, err
	}
	next, err := site.ReplaceSection(doc, res.Section)
	if err != nil {
		return nil, nil, err
	}
	return s.commit(next), res, nil
}

// Add inserts a new section of the given kind at position (nil appends).
func (s *Session) Add(kind site.SectionType, content site.Content, position *int) (*site.Document, string, error) {
	next, err := site.AddSection(s.history.Current(), site.Section{
		Type:    kind,
		Content: content,
		Visible: true,
	}, position)
	if err != nil {
		return nil, "", err
	}
	id := addedID(s.history.Current(), next)
	return s.commit(next), id, nil
}

// Remove deletes section id.
func (s *Session) Remove(id string) (*site.Document, error) {
	next, err := site.RemoveSection(s.history.Current(), id)
	if err != nil {
		return nil, err
	}
	return s.commit(next), nil
}

// Reorder moves the section at position from to position to.
func (s *Session) Reorder(from, to int) (*site.Document, error) {
	next, err := site.ReorderSections(s.history.Current(), from, to)
	if err != nil {
		return nil, err
	}
	return s.commit(next), nil
}

// Duplicate copies section id directly after itself.
func (s *Session) Duplicate(id string) (*site.Document, string, error) {
	next, newID, err := site.DuplicateSection(s.history.Current(), id)
	if err != nil {
		return nil, "", err
	}
	return s.commit(next), newID, nil
}

// Undo steps back one snapshot. It reports whether anything changed.
func (s *Session) Undo() (*site.Document, bool) {
	moved := s.history.Undo()
	return s.history.Current(), moved
}

// Redo steps forward one snapshot. It reports whether anything changed.
func (s *Session) Redo() (*site.Document, bool) {
	moved := s.history.Redo()
	return s.history.Current(), moved
}

func (s *Session) commit(doc *site.Document) *site.Document {
	s.history.Commit(doc)
	return s.history.Current()
}

// addedID finds the section present in after but not in before.
func addedID(before, after *site.Document) string {
	known := make(map[string]bool, len(before.Sections))
	for _, sec := range before.Sections {
		known[sec.ID] = true
	}
	for _, sec := range after.Sections {
		if !known[sec.ID] {
			return sec.ID
		}
	}
	return ""
}
