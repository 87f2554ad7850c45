package commands

import (
	"github.com/spf13/cobra"

	"github.com/moasq/xcforge/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:    "mcp",
	Short:  "Run the generation core's MCP server",
	Long:   "Starts the xcforge MCP server over stdio, exposing generate_workspace, describe_graph, and validate_manifest as typed tool calls.",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.Run(cmd.Context())
	},
}
