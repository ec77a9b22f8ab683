package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	planmcp "github.com/remarcmij/hyf-plan/internal/mcp"
	"github.com/remarcmij/hyf-plan/internal/store"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run hyf-plan as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "hyf-plan": {
        "command": "hyf-plan",
        "args": ["serve", "--data-dir", "/path/to/data"]
      }
    }
  }

Available tools: upcoming, fragments, generate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return report(newPrinter(cmd), nil, err)
			}
			server := planmcp.NewServer(buildVersion(), planmcp.Deps{
				Store:   store.New(settings.DataDir),
				Options: settings.GeneratorOptions(),
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
