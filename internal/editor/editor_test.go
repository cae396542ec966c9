package editor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/sitecraft/internal/db"
	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/projects"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

func testDoc(kinds ...site.SectionType) *site.Document {
	doc := &site.Document{
		ID:       "doc-1",
		Metadata: site.Metadata{Title: "Acme"},
		GlobalStyles: site.GlobalStyles{ColorScheme: site.ColorScheme{
			Primary: "#3b82f6", Secondary: "#1e40af", Accent: "#f59e0b", Background: "#ffffff", Text: "#111827",
		}},
		Assets: []site.Asset{},
	}
	for i, k := range kinds {
		doc.Sections = append(doc.Sections, site.Section{
			ID:      string(k) + "-id",
			Type:    k,
			Content: site.Content{"heading": json.RawMessage(`"` + string(k) + `"`)},
			Order:   i,
			Visible: true,
		})
	}
	return doc
}

func assertContiguous(t *testing.T, doc *site.Document) {
	t.Helper()
	assert.True(t, site.Valid(doc), "invalid document: %v", site.Validate(doc))
}

// fakeGenerator returns canned results and records calls.
type fakeGenerator struct {
	doc       *site.Document
	err       error
	modified  map[string]string
	suggested []string
	modifies  int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ generate.Options) (*generate.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &generate.Result{Document: f.doc.Clone(), Usage: generate.Usage{Model: "fake", InputTokens: 10, OutputTokens: 20, CostUSD: 0.01}}, nil
}

func (f *fakeGenerator) Modify(_ context.Context, s site.Section, instruction string) (*generate.ModifyResult, error) {
	f.modifies++
	if f.err != nil {
		return nil, f.err
	}
	var p merge.Proposal
	if err := json.Unmarshal([]byte(f.modified[s.ID]), &p); err != nil {
		return nil, site.Wrap(site.MalformedResponse, err, "bad fake reply")
	}
	merged, err := merge.Apply(s, p, merge.Edit{Origin: site.EditAI, Instruction: instruction})
	if err != nil {
		return nil, err
	}
	return &generate.ModifyResult{Proposal: p, Section: merged, Usage: generate.Usage{Model: "fake"}}, nil
}

func (f *fakeGenerator) Suggest(context.Context, site.Section) []string { return f.suggested }

func TestSessionEditKeepsIdentity(t *testing.T) {
	s := NewSession(testDoc(site.SectionHero, site.SectionAbout), 0)

	var p merge.Proposal
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","type":"footer","order":9,"content":{"heading":"New"}}`), &p))
	doc, sec, err := s.Edit("about-id", p)
	require.NoError(t, err)

	assert.Equal(t, "about-id", sec.ID)
	assert.Equal(t, site.SectionAbout, sec.Type)
	assert.Equal(t, 1, sec.Order)
	got, _ := doc.Section("about-id")
	assert.Equal(t, "New", got.Content.String("heading"))
	require.Len(t, got.Metadata.EditHistory, 1)
	assert.Equal(t, site.EditManual, got.Metadata.EditHistory[0].Type)
	assert.Equal(t, 2, s.State().Length)
}

func TestSessionEditErrorsLeaveDocument(t *testing.T) {
	s := NewSession(testDoc(site.SectionHero), 0)
	before := s.Document()

	_, _, err := s.Edit("missing", merge.Proposal{Content: json.RawMessage(`{"a":1}`)})
	assert.Equal(t, site.InvalidInput, site.KindOf(err))

	_, _, err = s.Edit("hero-id", merge.Proposal{Content: json.RawMessage(`"scalar"`)})
	assert.Equal(t, site.InvalidMergeResult, site.KindOf(err))

	_, _, err = s.Edit("hero-id", merge.Proposal{})
	assert.Equal(t, site.InvalidInput, site.KindOf(err))

	assert.Equal(t, before, s.Document())
	assert.Equal(t, 1, s.State().Length)
}

func TestSessionSiblingOperations(t *testing.T) {
	s := NewSession(testDoc(site.SectionHero, site.SectionAbout, site.SectionFooter), 0)

	doc, newID, err := s.Add(site.SectionCTA, site.Content{"heading": json.RawMessage(`"Join"`)}, intPtr(1))
	require.NoError(t, err)
	require.NotEmpty(t, newID)
	added, ok := doc.Section(newID)
	require.True(t, ok)
	assert.Equal(t, 1, added.Order)
	assertContiguous(t, doc)

	doc, dupID, err := s.Duplicate("about-id")
	require.NoError(t, err)
	dup, _ := doc.Section(dupID)
	about, _ := doc.Section("about-id")
	assert.Equal(t, about.Order+1, dup.Order)
	assertContiguous(t, doc)

	doc, err = s.Reorder(0, 4)
	require.NoError(t, err)
	hero, _ := doc.Section("hero-id")
	assert.Equal(t, 4, hero.Order)
	assertContiguous(t, doc)

	doc, err = s.Remove("about-id")
	require.NoError(t, err)
	assert.Len(t, doc.Sections, 4)
	assertContiguous(t, doc)

	_, err = s.Reorder(0, 10)
	assert.Equal(t, site.InvalidInput, site.KindOf(err))
	_, _, err = s.Add("bogus", nil, nil)
	assert.Equal(t, site.InvalidInput, site.KindOf(err))
}

func TestSessionUndoRedoLinear(t *testing.T) {
	s := NewSession(testDoc(site.SectionHero), 0)

	_, idB, err := s.Add(site.SectionAbout, nil, nil)
	require.NoError(t, err)

	doc, moved := s.Undo()
	assert.True(t, moved)
	_, ok := doc.Section(idB)
	assert.False(t, ok)

	_, idC, err := s.Add(site.SectionFooter, nil, nil)
	require.NoError(t, err)

	doc, moved = s.Redo()
	assert.False(t, moved)
	_, ok = doc.Section(idC)
	assert.True(t, ok)
	_, ok = doc.Section(idB)
	assert.False(t, ok)

	s.Undo()
	_, moved = s.Undo()
	assert.False(t, moved, "undo at index 0 is a no-op")
}

func TestSessionModify(t *testing.T) {
	gen := &fakeGenerator{modified: map[string]string{
		"hero-id": `{"content":{"heading":"New","backgroundImage":"x.jpg"}}`,
	}}
	s := NewSession(testDoc(site.SectionHero), 0)

	doc, res, err := s.Modify(context.Background(), gen, "hero-id", "add a photo")
	require.NoError(t, err)
	hero, _ := doc.Section("hero-id")
	assert.Equal(t, "New", hero.Content.String("heading"))
	assert.Equal(t, "x.jpg", hero.Content.String("image"))
	assert.Equal(t, "fake", res.Usage.Model)

	gen.err = site.Errorf(site.MalformedResponse, "nope")
	before := s.Document()
	_, _, err = s.Modify(context.Background(), gen, "hero-id", "again")
	assert.Equal(t, site.MalformedResponse, site.KindOf(err))
	assert.Equal(t, before, s.Document())
}

func newTestManager(t *testing.T, gen Generator) (*Manager, *projects.Store) {
	t.Helper()
	d, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	store := projects.NewStore(d)
	return NewManager(store, gen, Config{HistoryLimit: 10}), store
}

func TestManagerCreatePersists(t *testing.T) {
	gen := &fakeGenerator{doc: testDoc(site.SectionHero, site.SectionFooter)}
	m, store := newTestManager(t, gen)
	ctx := context.Background()

	created, err := m.Create(ctx, "a bakery", generate.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Project.Name)

	saved, err := store.Get(ctx, created.Project.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Document.Sections, 2)

	usage, err := store.Usage(ctx, created.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Calls)
	assert.Equal(t, 20, usage.OutputTokens)
}

func TestManagerCreateFailureSavesNothing(t *testing.T) {
	gen := &fakeGenerator{err: site.Errorf(site.MalformedResponse, "Sorry, I can't help.")}
	m, store := newTestManager(t, gen)

	_, err := m.Create(context.Background(), "x", generate.Options{})
	assert.Equal(t, site.MalformedResponse, site.KindOf(err))
	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestManagerNoGenerator(t *testing.T) {
	m, _ := newTestManager(t, nil)
	_, err := m.Create(context.Background(), "x", generate.Options{})
	assert.Equal(t, site.GenerationFailed, site.KindOf(err))
}

func TestManagerMutationsPersistAndPublish(t *testing.T) {
	m, store := newTestManager(t, &fakeGenerator{})
	ctx := context.Background()

	p, err := m.Import(ctx, "Imported", testDoc(site.SectionHero, site.SectionAbout))
	require.NoError(t, err)

	updates, cancel := m.Subscribe(p.ID)
	defer cancel()

	_, err = m.Remove(ctx, p.ID, "hero-id")
	require.NoError(t, err)

	select {
	case u := <-updates:
		assert.Equal(t, p.ID, u.ProjectID)
		assert.Contains(t, u.HTML, `data-section-id="about-id"`)
		assert.NotContains(t, u.HTML, `data-section-id="hero-id"`)
		assert.True(t, u.State.CanUndo)
	case <-time.After(time.Second):
		t.Fatal("no preview update published")
	}

	saved, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, saved.Document.Sections, 1)
	assert.Equal(t, 0, saved.Document.Sections[0].Order)

	doc, err := m.Undo(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Sections, 2)
	saved, _ = store.Get(ctx, p.ID)
	assert.Len(t, saved.Document.Sections, 2)
}

func TestManagerFailedSaveKeepsSession(t *testing.T) {
	m, store := newTestManager(t, &fakeGenerator{})
	ctx := context.Background()

	p, err := m.Import(ctx, "Imported", testDoc(site.SectionHero, site.SectionAbout))
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = m.Remove(cancelled, p.ID, "hero-id")
	require.Error(t, err)

	doc, state, err := m.Document(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Sections, 2)
	assert.False(t, state.CanUndo)
	saved, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Document.Sections, 2)

	// Undo that cannot be saved stays at the current snapshot.
	_, err = m.Remove(ctx, p.ID, "hero-id")
	require.NoError(t, err)
	_, err = m.Undo(cancelled, p.ID)
	require.Error(t, err)

	doc, state, err = m.Document(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "about-id", doc.Sections[0].ID)
	assert.True(t, state.CanUndo)
	assert.False(t, state.CanRedo)
	saved, _ = store.Get(ctx, p.ID)
	require.Len(t, saved.Document.Sections, 1)
	assert.Equal(t, "about-id", saved.Document.Sections[0].ID)
}

func TestManagerRemoveKeepsDisplayOrder(t *testing.T) {
	m, store := newTestManager(t, &fakeGenerator{})
	ctx := context.Background()

	doc := testDoc(site.SectionHero, site.SectionAbout, site.SectionFooter)
	doc.Sections[0].Order, doc.Sections[1].Order = 1, 0
	p, err := m.Import(ctx, "Shuffled", doc)
	require.NoError(t, err)

	_, err = m.Remove(ctx, p.ID, "footer-id")
	require.NoError(t, err)

	saved, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, saved.Document.Sections, 2)
	assert.Equal(t, "about-id", saved.Document.Sections[0].ID)
	assert.Equal(t, "hero-id", saved.Document.Sections[1].ID)
	assertContiguous(t, saved.Document)
}

func TestManagerLoadsFromStore(t *testing.T) {
	m, store := newTestManager(t, &fakeGenerator{})
	ctx := context.Background()

	p := &projects.Project{Document: testDoc(site.SectionHero)}
	require.NoError(t, store.Create(ctx, p))

	doc, state, err := m.Document(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, doc.Sections, 1)
	assert.False(t, state.CanUndo)

	_, err = m.Redo(ctx, p.ID)
	require.NoError(t, err, "redo at the end of history is a no-op")

	_, _, err = m.Document(ctx, "missing")
	assert.Equal(t, site.NotFound, site.KindOf(err))
}

func TestManagerImportRejectsInvalid(t *testing.T) {
	m, _ := newTestManager(t, nil)
	doc := testDoc(site.SectionHero, site.SectionAbout)
	doc.Sections[1].Order = 0
	_, err := m.Import(context.Background(), "bad", doc)
	assert.Equal(t, site.SchemaViolation, site.KindOf(err))
}

func TestManagerModifyAndSuggest(t *testing.T) {
	gen := &fakeGenerator{
		modified:  map[string]string{"hero-id": `{"content":{"heading":"Bolder"}}`},
		suggested: []string{"Use a stronger verb"},
	}
	m, store := newTestManager(t, gen)
	ctx := context.Background()
	p, err := m.Import(ctx, "", testDoc(site.SectionHero))
	require.NoError(t, err)

	doc, err := m.Modify(ctx, p.ID, "hero-id", "bolder")
	require.NoError(t, err)
	hero, _ := doc.Section("hero-id")
	assert.Equal(t, "Bolder", hero.Content.String("heading"))

	log, err := store.Generations(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, projects.KindModify, log[0].Kind)
	assert.Equal(t, "hero-id", log[0].SectionID)

	ideas, err := m.Suggest(ctx, p.ID, "hero-id")
	require.NoError(t, err)
	assert.Equal(t, []string{"Use a stronger verb"}, ideas)

	_, err = m.Suggest(ctx, p.ID, "nope")
	assert.Equal(t, site.InvalidInput, site.KindOf(err))

	gen.err = errors.New("boom")
	_, err = m.Modify(ctx, p.ID, "hero-id", "again")
	assert.Error(t, err)
	doc, _, _ = m.Document(ctx, p.ID)
	hero, _ = doc.Section("hero-id")
	assert.Equal(t, "Bolder", hero.Content.String("heading"))
}

func TestHubDropsStaleUpdates(t *testing.T) {
	h := newHub()
	ch, cancel := h.subscribe("p")
	h.publish(Update{ProjectID: "p", HTML: "one"})
	h.publish(Update{ProjectID: "p", HTML: "two"})
	h.publish(Update{ProjectID: "other", HTML: "x"})

	u := <-ch
	assert.Equal(t, "two", u.HTML)
	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func intPtr(i int) *int { return &i }
