package site

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque identity token.
func NewID() string {
	return uuid.NewString()
}

// AddSection returns a copy of doc with s inserted at position (appended
// when position is nil or past the end). Positions refer to the
// order-sorted sibling list. s receives a fresh id; all sibling orders are
// renumbered.
func AddSection(doc *Document, s Section, position *int) (*Document, error) {
	if !s.Type.Valid() {
		return nil, Errorf(InvalidInput, "unknown section type %q", s.Type)
	}
	out := doc.Clone()
	s = s.Clone()
	s.ID = NewID()
	if s.Content == nil {
		s.Content = Content{}
	}
	if s.Metadata.LastEditedAt.IsZero() {
		s.Metadata.LastEditedAt = now()
	}

	sortByOrder(out.Sections)
	idx := len(out.Sections)
	if position != nil && *position >= 0 && *position < idx {
		idx = *position
	}
	out.Sections = append(out.Sections, Section{})
	copy(out.Sections[idx+1:], out.Sections[idx:])
	out.Sections[idx] = s
	touch(out)
	return out, nil
}

// RemoveSection returns a copy of doc without the section id. The
// remaining sections keep their relative order.
func RemoveSection(doc *Document, id string) (*Document, error) {
	out := doc.Clone()
	sortByOrder(out.Sections)
	idx := indexOf(out.Sections, id)
	if idx < 0 {
		return nil, Errorf(InvalidInput, "section %q not found", id)
	}
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	touch(out)
	return out, nil
}

// ReorderSections returns a copy of doc with the section at position from
// moved to position to. Positions refer to the order-sorted sibling list.
func ReorderSections(doc *Document, from, to int) (*Document, error) {
	out := doc.Clone()
	sortByOrder(out.Sections)
	n := len(out.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, Errorf(InvalidInput, "reorder %d -> %d out of range 0..%d", from, to, n-1)
	}
	moved := out.Sections[from]
	out.Sections = append(out.Sections[:from], out.Sections[from+1:]...)
	out.Sections = append(out.Sections[:to], append([]Section{moved}, out.Sections[to:]...)...)
	touch(out)
	return out, nil
}

// DuplicateSection returns a copy of doc with a clone of section id inserted
// directly after it. The clone gets a fresh id.
func DuplicateSection(doc *Document, id string) (*Document, string, error) {
	out := doc.Clone()
	sortByOrder(out.Sections)
	idx := indexOf(out.Sections, id)
	if idx < 0 {
		return nil, "", Errorf(InvalidInput, "section %q not found", id)
	}
	dup := out.Sections[idx].Clone()
	dup.ID = NewID()
	dup.Metadata.LastEditedAt = now()
	out.Sections = append(out.Sections[:idx+1], append([]Section{dup}, out.Sections[idx+1:]...)...)
	touch(out)
	return out, dup.ID, nil
}

// ReplaceSection returns a copy of doc with the section matching s.ID
// replaced by s. The stored order is kept.
func ReplaceSection(doc *Document, s Section) (*Document, error) {
	out := doc.Clone()
	idx := indexOf(out.Sections, s.ID)
	if idx < 0 {
		return nil, Errorf(InvalidInput, "section %q not found", s.ID)
	}
	s = s.Clone()
	s.Order = out.Sections[idx].Order
	out.Sections[idx] = s
	out.Metadata.UpdatedAt = now()
	return out, nil
}

// SortedSections returns the sections ordered ascending by Order.
func SortedSections(sections []Section) []Section {
	out := append([]Section(nil), sections...)
	sortByOrder(out)
	return out
}

func indexOf(sections []Section, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func sortByOrder(sections []Section) {
	// Insertion sort keeps equal orders stable and the slices are small.
	for i := 1; i < len(sections); i++ {
		for j := i; j > 0 && sections[j].Order < sections[j-1].Order; j-- {
			sections[j], sections[j-1] = sections[j-1], sections[j]
		}
	}
}

func renumber(sections []Section) {
	for i := range sections {
		sections[i].Order = i
	}
}

func touch(doc *Document) {
	renumber(doc.Sections)
	doc.Metadata.UpdatedAt = now()
}

var now = func() time.Time { return time.Now().UTC() }
