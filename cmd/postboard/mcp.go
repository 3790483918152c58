// ABOUTME: MCP server command implementation for postboard.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/postboard/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, allowing AI agents to list, add,
delete, search and sort posts through a standardized protocol.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	doc := restoredDocument()

	server, err := mcppkg.NewServer(newController(doc, globalLogger), doc)
	if err != nil {
		return err
	}

	return server.Serve(cmd.Context())
}
