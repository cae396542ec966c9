package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/sitecraft/internal/editor"
	"github.com/ziadkadry99/sitecraft/internal/export"
	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/merge"
	"github.com/ziadkadry99/sitecraft/internal/projects"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

func (s *Server) registerProjectRoutes(r chi.Router) {
	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleGenerate)
		r.Post("/import", s.handleImport)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProject)
			r.Delete("/", s.handleDeleteProject)
			r.Get("/preview", s.handlePreview)
			r.Get("/export", s.handleExport)
			r.Get("/usage", s.handleUsage)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/reorder", s.handleReorder)

			r.Post("/sections", s.handleAddSection)
			r.Route("/sections/{sid}", func(r chi.Router) {
				r.Patch("/", s.handleEditSection)
				r.Delete("/", s.handleRemoveSection)
				r.Post("/modify", s.handleModifySection)
				r.Post("/duplicate", s.handleDuplicateSection)
				r.Post("/suggestions", s.handleSuggestions)
			})
		})
	})
}

type generateRequest struct {
	Prompt  string           `json:"prompt"`
	Options generate.Options `json:"options"`
}

type importRequest struct {
	Name     string         `json:"name"`
	Document *site.Document `json:"document"`
}

type documentResponse struct {
	ProjectID string         `json:"projectId"`
	Document  *site.Document `json:"document"`
	SectionID string         `json:"sectionId,omitempty"`
}

type addSectionRequest struct {
	Type     site.SectionType `json:"type"`
	Content  site.Content     `json:"content"`
	Position *int             `json:"position"`
}

type modifyRequest struct {
	Instruction string `json:"instruction"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if list == nil {
		list = []projects.Summary{}
	}
	s.ok(w, http.StatusOK, list)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	created, err := s.manager.Create(r.Context(), req.Prompt, req.Options)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, created)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if req.Document == nil {
		s.fail(w, site.Errorf(site.InvalidInput, "document is required"))
		return
	}
	p, err := s.manager.Import(r.Context(), req.Name, req.Document)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	doc, state, err := s.manager.Document(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	p.Document = doc
	s.ok(w, http.StatusOK, struct {
		*projects.Project
		History editor.State `json:"history"`
	}{p, state})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	s.manager.Close(id)
	s.ok(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	page, err := s.manager.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	doc, _, err := s.manager.Document(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := export.Export(doc, format)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="site-%s.%s"`, id, format.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	totals, err := s.store.Usage(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	log, err := s.store.Generations(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, map[string]any{"totals": totals, "generations": log})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.manager.Undo(r.Context(), id)
	s.respondDocument(w, id, doc, "", err)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.manager.Redo(r.Context(), id)
	s.respondDocument(w, id, doc, "", err)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	doc, err := s.manager.Reorder(r.Context(), id, req.From, req.To)
	s.respondDocument(w, id, doc, "", err)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addSectionRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	doc, sid, err := s.manager.Add(r.Context(), id, req.Type, req.Content, req.Position)
	s.respondDocument(w, id, doc, sid, err)
}

func (s *Server) handleEditSection(w http.ResponseWriter, r *http.Request) {
	var p merge.Proposal
	if err := decode(r, &p); err != nil {
		s.fail(w, err)
		return
	}
	id, sid := chi.URLParam(r, "id"), chi.URLParam(r, "sid")
	doc, err := s.manager.Edit(r.Context(), id, sid, p)
	s.respondDocument(w, id, doc, sid, err)
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	id, sid := chi.URLParam(r, "id"), chi.URLParam(r, "sid")
	doc, err := s.manager.Remove(r.Context(), id, sid)
	s.respondDocument(w, id, doc, "", err)
}

func (s *Server) handleModifySection(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	id, sid := chi.URLParam(r, "id"), chi.URLParam(r, "sid")
	doc, err := s.manager.Modify(r.Context(), id, sid, req.Instruction)
	s.respondDocument(w, id, doc, sid, err)
}

func (s *Server) handleDuplicateSection(w http.ResponseWriter, r *http.Request) {
	id, sid := chi.URLParam(r, "id"), chi.URLParam(r, "sid")
	doc, newID, err := s.manager.Duplicate(r.Context(), id, sid)
	s.respondDocument(w, id, doc, newID, err)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id, sid := chi.URLParam(r, "id"), chi.URLParam(r, "sid")
	ideas, err := s.manager.Suggest(r.Context(), id, sid)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, map[string][]string{"suggestions": ideas})
}

func (s *Server) respondDocument(w http.ResponseWriter, id string, doc *site.Document, sectionID string, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, http.StatusOK, documentResponse{ProjectID: id, Document: doc, SectionID: sectionID})
}
