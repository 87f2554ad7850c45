package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moasq/xcforge/internal/generate"
	"github.com/moasq/xcforge/internal/services"
)

type textOutput struct {
	Message string `json:"message"`
}

// generateWorkspaceInput is the input for the generate_workspace tool.
type generateWorkspaceInput struct {
	Path               string `json:"path" jsonschema:"description=Absolute or working-directory-relative path to the Project.yml or Workspace.yml directory"`
	ProjectOnly        bool   `json:"project_only" jsonschema:"description=Generate a single Project.yml directory instead of discovering an enclosing Workspace.yml"`
	DisableAutoschemes bool   `json:"disable_autoschemes" jsonschema:"description=Suppress per-target auto-generated schemes"`
}

func handleGenerateWorkspace(ctx context.Context, req *mcp.CallToolRequest, input generateWorkspaceInput) (*mcp.CallToolResult, textOutput, error) {
	reporter := &services.CollectingReporter{}
	svc := &services.Services{Reporter: reporter, UserName: services.Default().UserName}

	opts := generate.Options{ProjectOnly: input.ProjectOnly, DisableAutogeneratedSchemes: input.DisableAutoschemes}
	result, err := generate.Run(input.Path, opts, svc)
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("generate: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "generated %d project(s), %d workspace(s), %d side effect(s)\n",
		result.Summary.Projects, result.Summary.Workspaces, result.Summary.SideEffect)
	if len(result.Summary.Warnings) > 0 {
		fmt.Fprintf(&b, "%d warning(s):\n", len(result.Summary.Warnings))
		for _, w := range result.Summary.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return nil, textOutput{Message: b.String()}, nil
}

// describeGraphInput is the input for the describe_graph tool.
type describeGraphInput struct {
	Path        string `json:"path" jsonschema:"description=Absolute or working-directory-relative path to the Project.yml or Workspace.yml directory"`
	ProjectOnly bool   `json:"project_only" jsonschema:"description=Build the graph for a single Project.yml directory instead of discovering an enclosing Workspace.yml"`
}

func handleDescribeGraph(ctx context.Context, req *mcp.CallToolRequest, input describeGraphInput) (*mcp.CallToolResult, textOutput, error) {
	g, err := generate.BuildGraph(input.Path, generate.Options{ProjectOnly: input.ProjectOnly}, nil)
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("build graph: %w", err)
	}
	return nil, textOutput{Message: g.Describe()}, nil
}

// validateManifestInput is the input for the validate_manifest tool.
type validateManifestInput struct {
	Path        string `json:"path" jsonschema:"description=Absolute or working-directory-relative path to the Project.yml or Workspace.yml directory"`
	ProjectOnly bool   `json:"project_only" jsonschema:"description=Validate a single Project.yml directory instead of discovering an enclosing Workspace.yml"`
}

func handleValidateManifest(ctx context.Context, req *mcp.CallToolRequest, input validateManifestInput) (*mcp.CallToolResult, textOutput, error) {
	warnings, err := generate.Validate(input.Path, generate.Options{ProjectOnly: input.ProjectOnly}, nil)
	if err != nil {
		return nil, textOutput{Message: fmt.Sprintf("invalid: %v", err)}, nil
	}
	if len(warnings) == 0 {
		return nil, textOutput{Message: "valid, no warnings"}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "valid, %d warning(s):\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&b, "  - %s\n", w)
	}
	return nil, textOutput{Message: b.String()}, nil
}
