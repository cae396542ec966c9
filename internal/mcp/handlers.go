package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/sitecraft/internal/export"
	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// handleGenerateWebsite generates and saves a new website project.
func (s *Server) handleGenerateWebsite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	created, err := s.manager.Create(ctx, prompt, generate.Options{
		StylePreference: request.GetString("style", ""),
		ColorScheme:     request.GetString("color_scheme", ""),
		Industry:        request.GetString("industry", ""),
		TargetAudience:  request.GetString("audience", ""),
	})
	if err != nil {
		return s.toolError(err), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Created project %s: %q\n", created.Project.ID, created.Project.Name)
	sb.WriteString(formatOutline(created.Project.Document))
	if created.Usage.Model != "" {
		fmt.Fprintf(&sb, "\nModel: %s (%d in / %d out tokens, ~$%.4f)\n",
			created.Usage.Model, created.Usage.InputTokens, created.Usage.OutputTokens, created.Usage.CostUSD)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListWebsites lists saved projects.
func (s *Server) handleListWebsites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return s.toolError(err), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No websites yet. Use generate_website to create one."), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d website(s):\n", len(list))
	for _, p := range list {
		fmt.Fprintf(&sb, "- %s  %q  (%d sections, updated %s)\n", p.ID, p.Name, p.Sections, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetWebsite returns the project's document as JSON.
func (s *Server) handleGetWebsite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	doc, _, err := s.manager.Document(ctx, id)
	if err != nil {
		return s.toolError(err), nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode document: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleModifySection applies an AI edit to one section.
func (s *Server) handleModifySection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	sectionID, err := request.RequireString("section_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: section_id"), nil
	}
	instruction, err := request.RequireString("instruction")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: instruction"), nil
	}

	doc, err := s.manager.Modify(ctx, id, sectionID, instruction)
	if err != nil {
		return s.toolError(err), nil
	}
	sec, _ := doc.Section(sectionID)
	data, err := json.MarshalIndent(sec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode section: %v", err)), nil
	}
	return mcp.NewToolResultText("Section updated:\n" + string(data)), nil
}

// handleRenderWebsite renders the project as HTML, JSON or Markdown.
func (s *Server) handleRenderWebsite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	format, err := export.ParseFormat(request.GetString("format", "html"))
	if err != nil {
		return s.toolError(err), nil
	}
	doc, _, err := s.manager.Document(ctx, id)
	if err != nil {
		return s.toolError(err), nil
	}
	out, err := export.Export(doc, format)
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleUndo steps the project back one change.
func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, request, "undo")
}

// handleRedo steps the project forward one change.
func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, request, "redo")
}

func (s *Server) step(ctx context.Context, request mcp.CallToolRequest, direction string) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project_id"), nil
	}
	move := s.manager.Undo
	if direction == "redo" {
		move = s.manager.Redo
	}
	doc, err := move(ctx, id)
	if err != nil {
		return s.toolError(err), nil
	}
	_, state, err := s.manager.Document(ctx, id)
	if err != nil {
		return s.toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("History position %d of %d (undo: %t, redo: %t)\n%s",
		state.Position+1, state.Length, state.CanUndo, state.CanRedo, formatOutline(doc))), nil
}

func (s *Server) toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(generate.UserMessage(err, s.environment))
}

// formatOutline lists a document's sections in render order for agent
// consumption.
func formatOutline(doc *site.Document) string {
	var sb strings.Builder
	sections := site.SortedSections(doc.Sections)
	fmt.Fprintf(&sb, "Sections (%d):\n", len(sections))
	for _, sec := range sections {
		heading := sec.Content.String("heading", "title")
		hidden := ""
		if !sec.Visible {
			hidden = " [hidden]"
		}
		fmt.Fprintf(&sb, "  %d. %s  id=%s%s", sec.Order, sec.Type, sec.ID, hidden)
		if heading != "" {
			fmt.Fprintf(&sb, "  %q", heading)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
