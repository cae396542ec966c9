// Package mcp exposes website generation and editing as Model Context
// Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/sitecraft/internal/editor"
	"github.com/ziadkadry99/sitecraft/internal/projects"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes editing tools over a session
// manager.
type Server struct {
	manager     *editor.Manager
	store       *projects.Store
	environment string
	mcp         *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(manager *editor.Manager, store *projects.Store, environment string) *Server {
	s := &Server{
		manager:     manager,
		store:       store,
		environment: environment,
	}

	s.mcp = server.NewMCPServer(
		"sitecraft",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateWebsiteTool, s.handleGenerateWebsite)
	s.mcp.AddTool(listWebsitesTool, s.handleListWebsites)
	s.mcp.AddTool(getWebsiteTool, s.handleGetWebsite)
	s.mcp.AddTool(modifySectionTool, s.handleModifySection)
	s.mcp.AddTool(renderWebsiteTool, s.handleRenderWebsite)
	s.mcp.AddTool(undoTool, s.handleUndo)
	s.mcp.AddTool(redoTool, s.handleRedo)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
