// Package history is a bounded linear undo/redo store over whole-document
// snapshots.
package history

import "github.com/ziadkadry99/sitecraft/internal/site"

// DefaultLimit is the snapshot bound used when New is given a non-positive
// limit.
const DefaultLimit = 100

// Store holds snapshots and a pointer to the active one. It is not safe for
// concurrent use; callers own it for the lifetime of an editing session.
type Store struct {
	snapshots []*site.Document
	pos       int
	limit     int
}

// New returns an empty store keeping at most limit snapshots.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{pos: -1, limit: limit}
}

// Commit appends a copy of doc after the current position, discarding any
// redo branch. When the store is full the oldest snapshot is dropped.
func (s *Store) Commit(doc *site.Document) {
	if doc == nil {
		return
	}
	s.snapshots = append(s.snapshots[:s.pos+1], doc.Clone())
	if over := len(s.snapshots) - s.limit; over > 0 {
		for i := 0; i < over; i++ {
			s.snapshots[i] = nil
		}
		s.snapshots = s.snapshots[over:]
	}
	s.pos = len(s.snapshots) - 1
}

// Undo moves back one snapshot. It reports whether the pointer moved.
func (s *Store) Undo() bool {
	if s.pos <= 0 {
		return false
	}
	s.pos--
	return true
}

// Redo moves forward one snapshot. It reports whether the pointer moved.
func (s *Store) Redo() bool {
	if s.pos < 0 || s.pos >= len(s.snapshots)-1 {
		return false
	}
	s.pos++
	return true
}

// Current returns a copy of the active snapshot, or nil if nothing has been
// committed.
func (s *Store) Current() *site.Document {
	if s.pos < 0 {
		return nil
	}
	return s.snapshots[s.pos].Clone()
}

func (s *Store) CanUndo() bool { return s.pos > 0 }
func (s *Store) CanRedo() bool { return s.pos >= 0 && s.pos < len(s.snapshots)-1 }
func (s *Store) Len() int      { return len(s.snapshots) }

// Position is the zero-based index of the active snapshot, -1 when empty.
func (s *Store) Position() int { return s.pos }

// Mark is a saved history state for Rollback.
type Mark struct {
	snapshots []*site.Document
	pos       int
}

// Mark records the current state. Snapshots are never modified after
// commit, so the mark shares them and copies only the slice.
func (s *Store) Mark() Mark {
	return Mark{snapshots: append([]*site.Document(nil), s.snapshots...), pos: s.pos}
}

// Rollback returns the store to a state recorded by Mark, discarding any
// commits and moves made since.
func (s *Store) Rollback(m Mark) {
	s.snapshots = append([]*site.Document(nil), m.snapshots...)
	s.pos = m.pos
}

// Reset discards every snapshot and starts over from doc (if non-nil).
func (s *Store) Reset(doc *site.Document) {
	s.snapshots = nil
	s.pos = -1
	s.Commit(doc)
}
