// Package mcpserver exposes the generation core over the Model Context
// Protocol, so an agent can drive generation, inspect the resolved
// dependency graph, and validate a manifest tree through typed tool calls
// instead of shelling out to a CLI (spec.md §6 "External interfaces").
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the xcforge MCP server over stdio. It blocks until the client
// disconnects or ctx is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "xcforge",
			Version: "v1.0.0",
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_workspace",
		Description: "Generate a project descriptor from a Project.yml/Workspace.yml tree. Loads every transitively referenced manifest, resolves dependencies, runs the mapper pipeline (auto-schemes, info-plist synthesis, resource accessors, signing), and returns a summary of what would be written. Does not touch disk beyond reading manifests.",
	}, handleGenerateWorkspace)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_graph",
		Description: "Build the cross-project dependency graph for a Project.yml/Workspace.yml tree and describe its target nodes and dependency edges, without running the mapper pipeline. Useful for understanding how targets link before generating.",
	}, handleDescribeGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_manifest",
		Description: "Load and convert every manifest reachable from path without running mappers or producing a descriptor. Reports fatal errors and recoverable warnings (unmatched globs, missing folder references) so manifest authoring mistakes surface without a full generation run.",
	}, handleValidateManifest)

	return server.Run(ctx, &mcp.StdioTransport{})
}
