// Package projects persists documents as opaque JSON blobs keyed by
// project id.
package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/sitecraft/internal/db"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Store provides CRUD operations for projects.
type Store struct {
	db *db.DB
}

// NewStore creates a new projects store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Create inserts a new project. An empty name falls back to the document
// title.
func (s *Store) Create(ctx context.Context, p *Project) error {
	if p.Document == nil {
		return site.Errorf(site.InvalidInput, "project document is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = p.Document.Metadata.Title
	}
	if p.Name == "" {
		p.Name = "Untitled site"
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	docJSON, err := json.Marshal(p.Document)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, prompt, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Prompt, string(docJSON), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	p := &Project{}
	var docJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, prompt, document, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Prompt, &docJSON, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, site.Errorf(site.NotFound, "project %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	p.Document = &site.Document{}
	if err := json.Unmarshal([]byte(docJSON), p.Document); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}
	return p, nil
}

// List returns all projects, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, json_array_length(document, '$.sections'), created_at, updated_at
		 FROM projects ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var p Summary
		var sections sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &sections, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.Sections = int(sections.Int64)
		result = append(result, p)
	}
	return result, rows.Err()
}

// SaveDocument replaces the stored document of project id.
func (s *Store) SaveDocument(ctx context.Context, id string, doc *site.Document) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET document=?, updated_at=? WHERE id=?`,
		string(docJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return site.Errorf(site.NotFound, "project %q not found", id)
	}
	return nil
}

// Rename changes a project's display name.
func (s *Store) Rename(ctx context.Context, id, name string) error {
	if name == "" {
		return site.Errorf(site.InvalidInput, "name is required")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name=?, updated_at=? WHERE id=?`, name, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("renaming project: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return site.Errorf(site.NotFound, "project %q not found", id)
	}
	return nil
}

// Delete removes a project and its generation log.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM generations WHERE project_id=?`, id); err != nil {
		return fmt.Errorf("deleting generations: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return site.Errorf(site.NotFound, "project %q not found", id)
	}
	return tx.Commit()
}

// RecordGeneration appends a generation call to the project's log.
func (s *Store) RecordGeneration(ctx context.Context, g *Generation) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, project_id, kind, section_id, instruction, model, input_tokens, output_tokens, cost_usd, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.ProjectID, string(g.Kind), g.SectionID, g.Instruction, g.Model,
		g.InputTokens, g.OutputTokens, g.CostUSD, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording generation: %w", err)
	}
	return nil
}

// Generations returns a project's generation log, oldest first.
func (s *Store) Generations(ctx context.Context, projectID string) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, kind, section_id, instruction, model, input_tokens, output_tokens, cost_usd, created_at
		 FROM generations WHERE project_id = ? ORDER BY created_at, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()

	var result []Generation
	for rows.Next() {
		var g Generation
		var kind string
		if err := rows.Scan(&g.ID, &g.ProjectID, &kind, &g.SectionID, &g.Instruction, &g.Model,
			&g.InputTokens, &g.OutputTokens, &g.CostUSD, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		g.Kind = GenerationKind(kind)
		result = append(result, g)
	}
	return result, rows.Err()
}

// Usage sums a project's recorded token usage and cost.
func (s *Store) Usage(ctx context.Context, projectID string) (UsageTotals, error) {
	var u UsageTotals
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(cost_usd), 0)
		 FROM generations WHERE project_id = ?`, projectID,
	).Scan(&u.Calls, &u.InputTokens, &u.OutputTokens, &u.CostUSD)
	if err != nil {
		return UsageTotals{}, fmt.Errorf("summing usage: %w", err)
	}
	return u, nil
}
