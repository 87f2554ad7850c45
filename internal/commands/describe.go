package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moasq/xcforge/internal/generate"
)

var (
	describePath        string
	describeProjectOnly bool
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the resolved cross-project dependency graph",
	Long:  "Build the cross-project graph from --path without running the mapper pipeline, and print every target node and its dependency edges.",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := generate.BuildGraph(describePath, generate.Options{ProjectOnly: describeProjectOnly}, nil)
		if err != nil {
			return fmt.Errorf("describe: %w", err)
		}
		fmt.Print(g.Describe())
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&describePath, "path", ".", "Directory containing Project.yml or Workspace.yml")
	describeCmd.Flags().BoolVar(&describeProjectOnly, "project-only", false, "Build the graph for a single Project.yml directory instead of discovering an enclosing Workspace.yml")
}
