package mcp

import "github.com/mark3labs/mcp-go/mcp"

// generateWebsiteTool defines the generate_website MCP tool.
var generateWebsiteTool = mcp.NewTool("generate_website",
	mcp.WithDescription("Generate a structured website from a prose description and save it as a new project. Returns the project id and a section outline."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("Description of the website to build"),
	),
	mcp.WithString("style",
		mcp.Description("Visual style preference, e.g. modern, minimal, playful"),
	),
	mcp.WithString("color_scheme",
		mcp.Description("Preferred colors"),
	),
	mcp.WithString("industry",
		mcp.Description("Industry or business domain"),
	),
	mcp.WithString("audience",
		mcp.Description("Target audience"),
	),
)

// listWebsitesTool defines the list_websites MCP tool.
var listWebsitesTool = mcp.NewTool("list_websites",
	mcp.WithDescription("List saved website projects."),
)

// getWebsiteTool defines the get_website MCP tool.
var getWebsiteTool = mcp.NewTool("get_website",
	mcp.WithDescription("Get the full JSON document of a website project."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("Project id returned by generate_website"),
	),
)

// modifySectionTool defines the modify_section MCP tool.
var modifySectionTool = mcp.NewTool("modify_section",
	mcp.WithDescription("Apply a natural-language change to one section. The section keeps its id, type and position."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("Project id"),
	),
	mcp.WithString("section_id",
		mcp.Required(),
		mcp.Description("Id of the section to change"),
	),
	mcp.WithString("instruction",
		mcp.Required(),
		mcp.Description("What to change, e.g. \"make the heading shorter\""),
	),
)

// renderWebsiteTool defines the render_website MCP tool.
var renderWebsiteTool = mcp.NewTool("render_website",
	mcp.WithDescription("Render a website project to a self-contained HTML page."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("Project id"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default html)"),
		mcp.Enum("html", "json", "markdown"),
	),
)

// undoTool defines the undo MCP tool.
var undoTool = mcp.NewTool("undo",
	mcp.WithDescription("Undo the last change to a website project. A no-op at the start of history."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("Project id"),
	),
)

// redoTool defines the redo MCP tool.
var redoTool = mcp.NewTool("redo",
	mcp.WithDescription("Redo the last undone change to a website project. A no-op at the end of history."),
	mcp.WithString("project_id",
		mcp.Required(),
		mcp.Description("Project id"),
	),
)
