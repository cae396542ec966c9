package editor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/history"
	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/projects"
	"github.com/ziadkadry99/sitecraft/internal/render"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Pager renders documents. *render.Renderer and *render.Cache satisfy it.
type Pager interface {
	Render(doc *site.Document) string
}

// Manager keeps one session per open project, persists every commit to
// the project store and pushes the re-rendered page to preview
// subscribers.
type Manager struct {
	store        *projects.Store
	gen          Generator
	pages        Pager
	logger       *zap.Logger
	historyLimit int

	mu       sync.Mutex
	sessions map[string]*entry
	hub      *hub
}

// entry serializes operations on one project, including the generation
// call of an AI edit.
type entry struct {
	mu      sync.Mutex
	session *Session
}

// Config configures a Manager.
type Config struct {
	HistoryLimit int
	Logger       *zap.Logger
	// Pages renders previews. Defaults to an uncached preview renderer.
	Pages Pager
}

// NewManager returns a manager over store. gen may be nil, in which case
// generation and AI edits fail with GenerationFailed.
func NewManager(store *projects.Store, gen Generator, cfg Config) *Manager {
	m := &Manager{
		store:        store,
		gen:          gen,
		pages:        cfg.Pages,
		logger:       cfg.Logger,
		historyLimit: cfg.HistoryLimit,
		sessions:     make(map[string]*entry),
		hub:          newHub(),
	}
	if m.pages == nil {
		m.pages = render.New(render.Options{})
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Created is the result of generating a new project.
type Created struct {
	Project *projects.Project `json:"project"`
	Usage   generate.Usage    `json:"usage"`
}

// Create generates a document from prompt, saves it as a new project and
// opens a session on it.
func (m *Manager) Create(ctx context.Context, prompt string, opts generate.Options) (*Created, error) {
	gen, err := m.generator()
	if err != nil {
		return nil, err
	}
	res, err := gen.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}
	p := &projects.Project{Prompt: prompt, Document: res.Document}
	if err := m.store.Create(ctx, p); err != nil {
		return nil, err
	}
	m.record(ctx, &projects.Generation{ProjectID: p.ID, Kind: projects.KindGenerate, Instruction: prompt}, res.Usage)

	m.mu.Lock()
	m.sessions[p.ID] = &entry{session: NewSession(p.Document, m.historyLimit)}
	m.mu.Unlock()

	m.logger.Info("project created", zap.String("project", p.ID), zap.Int("sections", len(p.Document.Sections)))
	return &Created{Project: p, Usage: res.Usage}, nil
}

// Import saves an existing document as a new project.
func (m *Manager) Import(ctx context.Context, name string, doc *site.Document) (*projects.Project, error) {
	if v := site.Validate(doc); len(v) > 0 {
		return nil, &site.Error{Kind: site.SchemaViolation, Message: "document is invalid", Details: v}
	}
	p := &projects.Project{Name: name, Document: doc}
	if err := m.store.Create(ctx, p); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[p.ID] = &entry{session: NewSession(doc, m.historyLimit)}
	m.mu.Unlock()
	return p, nil
}

// Document returns the active document of project id.
func (m *Manager) Document(ctx context.Context, id string) (*site.Document, State, error) {
	var (
		doc   *site.Document
		state State
	)
	err := m.with(ctx, id, func(s *Session) error {
		doc = s.Document()
		state = s.State()
		return nil
	})
	return doc, state, err
}

// Preview renders the active document of project id.
func (m *Manager) Preview(ctx context.Context, id string) (string, error) {
	doc, _, err := m.Document(ctx, id)
	if err != nil {
		return "", err
	}
	return m.pages.Render(doc), nil
}

// Edit applies a manual proposal to a section.
func (m *Manager) Edit(ctx context.Context, id, sectionID string, p merge.Proposal) (*site.Document, error) {
	return m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		doc, _, err := s.Edit(sectionID, p)
		return doc, err
	})
}

// Modify applies a natural-language instruction to a section.
func (m *Manager) Modify(ctx context.Context, id, sectionID, instruction string) (*site.Document, error) {
	gen, err := m.generator()
	if err != nil {
		return nil, err
	}
	return m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		doc, res, err := s.Modify(ctx, gen, sectionID, instruction)
		if err != nil {
			return nil, err
		}
		m.record(ctx, &projects.Generation{
			ProjectID: id, Kind: projects.KindModify, SectionID: sectionID, Instruction: instruction,
		}, res.Usage)
		return doc, nil
	})
}

// Suggest returns improvement ideas for a section. It never mutates the
// document.
func (m *Manager) Suggest(ctx context.Context, id, sectionID string) ([]string, error) {
	gen, err := m.generator()
	if err != nil {
		return nil, err
	}
	doc, _, err := m.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	sec, ok := doc.Section(sectionID)
	if !ok {
		return nil, site.Errorf(site.InvalidInput, "section %q not found", sectionID)
	}
	return gen.Suggest(ctx, sec), nil
}

// Add inserts a new section and returns its id.
func (m *Manager) Add(ctx context.Context, id string, kind site.SectionType, content site.Content, position *int) (*site.Document, string, error) {
	var newID string
	doc, err := m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		doc, sid, err := s.Add(kind, content, position)
		newID = sid
		return doc, err
	})
	return doc, newID, err
}

// Remove deletes a section.
func (m *Manager) Remove(ctx context.Context, id, sectionID string) (*site.Document, error) {
	return m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		return s.Remove(sectionID)
	})
}

// Reorder moves a section from one position to another.
func (m *Manager) Reorder(ctx context.Context, id string, from, to int) (*site.Document, error) {
	return m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		return s.Reorder(from, to)
	})
}

// Duplicate copies a section and returns the copy's id.
func (m *Manager) Duplicate(ctx context.Context, id, sectionID string) (*site.Document, string, error) {
	var newID string
	doc, err := m.mutate(ctx, id, func(s *Session) (*site.Document, error) {
		doc, sid, err := s.Duplicate(sectionID)
		newID = sid
		return doc, err
	})
	return doc, newID, err
}

// Undo steps project id back one snapshot. At the start of history it is a
// no-op.
func (m *Manager) Undo(ctx context.Context, id string) (*site.Document, error) {
	return m.step(ctx, id, (*Session).Undo)
}

// Redo steps project id forward one snapshot. At the end of history it is
// a no-op.
func (m *Manager) Redo(ctx context.Context, id string) (*site.Document, error) {
	return m.step(ctx, id, (*Session).Redo)
}

// Subscribe returns a channel receiving the re-rendered page of project id
// after each change, and a function that cancels the subscription.
func (m *Manager) Subscribe(id string) (<-chan Update, func()) {
	return m.hub.subscribe(id)
}

// Close drops the in-memory session of project id. The saved document is
// kept.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) step(ctx context.Context, id string, move func(*Session) (*site.Document, bool)) (*site.Document, error) {
	var (
		doc   *site.Document
		state State
		moved bool
	)
	err := m.with(ctx, id, func(s *Session) error {
		mark := s.history.Mark()
		doc, moved = move(s)
		state = s.State()
		if !moved {
			return nil
		}
		return m.persist(ctx, id, s, mark, doc)
	})
	if err != nil {
		return nil, err
	}
	if moved {
		m.publish(id, doc, state)
	}
	return doc, nil
}

func (m *Manager) mutate(ctx context.Context, id string, op func(*Session) (*site.Document, error)) (*site.Document, error) {
	var (
		doc   *site.Document
		state State
	)
	err := m.with(ctx, id, func(s *Session) error {
		mark := s.history.Mark()
		var err error
		doc, err = op(s)
		if err != nil {
			return err
		}
		state = s.State()
		return m.persist(ctx, id, s, mark, doc)
	})
	if err != nil {
		return nil, err
	}
	m.publish(id, doc, state)
	return doc, nil
}

// persist saves doc as the project's document. On failure the session is
// rolled back to mark so memory and store keep agreeing.
func (m *Manager) persist(ctx context.Context, id string, s *Session, mark history.Mark, doc *site.Document) error {
	if err := m.store.SaveDocument(ctx, id, doc); err != nil {
		s.history.Rollback(mark)
		m.logger.Warn("saving document failed, change discarded", zap.String("project", id), zap.Error(err))
		return err
	}
	return nil
}

// with runs fn on the session of project id, loading it from the store on
// first use.
func (m *Manager) with(ctx context.Context, id string, fn func(*Session) error) error {
	e, err := m.entry(ctx, id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (m *Manager) entry(ctx context.Context, id string) (*entry, error) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		return e, nil
	}

	p, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	e = &entry{session: NewSession(p.Document, m.historyLimit)}
	m.sessions[id] = e
	return e, nil
}

func (m *Manager) publish(id string, doc *site.Document, state State) {
	m.hub.publish(Update{ProjectID: id, HTML: m.pages.Render(doc), State: state})
}

func (m *Manager) record(ctx context.Context, g *projects.Generation, u generate.Usage) {
	g.Model = u.Model
	g.InputTokens = u.InputTokens
	g.OutputTokens = u.OutputTokens
	g.CostUSD = u.CostUSD
	if err := m.store.RecordGeneration(ctx, g); err != nil {
		m.logger.Warn("recording generation usage", zap.String("project", g.ProjectID), zap.Error(err))
	}
}

func (m *Manager) generator() (Generator, error) {
	if m.gen == nil {
		return nil, site.Errorf(site.GenerationFailed, "no generation provider configured")
	}
	return m.gen, nil
}
