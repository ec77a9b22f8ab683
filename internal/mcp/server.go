// Package mcp provides a Model Context Protocol server for hyf-plan.
// It exposes plan listing, fragment inspection and issue generation as MCP
// tools so an agent can prepare course issues.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/remarcmij/hyf-plan/internal/issue"
	"github.com/remarcmij/hyf-plan/internal/schedule"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// Deps are the collaborators the tools share.
type Deps struct {
	Store   *store.Store
	Options issue.Options
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) enumerator() *schedule.Enumerator {
	return schedule.NewEnumerator(d.Store, d.Now)
}

func (d Deps) generator() *issue.Generator {
	return issue.NewGenerator(d.Store, d.Options)
}

// NewServer creates an MCP server with all hyf-plan tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hyf-plan",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that replace the issue file; rerunning them
// produces the same file.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "upcoming",
		Description: "List module plans whose first lecture is in the future, earliest first. Set all=true to include past plans.",
		Annotations: readOnlyAnnotations(),
	}, handleUpcoming(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fragments",
		Description: "Show the effective template fragments for a plan and which config layer (built-in, global, module, class, plan) supplied each.",
		Annotations: readOnlyAnnotations(),
	}, handleFragments(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Render the Markdown issue for a plan (<class>.<module>) and write <plan>.issue.md. Set dry_run=true to return the content without writing.",
		Annotations: writeAnnotations(),
	}, handleGenerate(deps))
}
