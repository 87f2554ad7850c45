package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moasq/xcforge/internal/generate"
	"github.com/moasq/xcforge/internal/services"
)

var (
	generatePath               string
	generateProjectOnly        bool
	generateDisableAutoschemes bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a project or workspace descriptor",
	Long:  "Load every manifest reachable from --path, resolve dependencies, run the mapper pipeline, and print a summary of what was generated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generate.Options{
			ProjectOnly:                 generateProjectOnly,
			DisableAutogeneratedSchemes: generateDisableAutoschemes,
		}
		result, err := generate.Run(generatePath, opts, services.Default())
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		result.Summary.Print()
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generatePath, "path", ".", "Directory containing Project.yml or Workspace.yml")
	generateCmd.Flags().BoolVar(&generateProjectOnly, "project-only", false, "Generate a single Project.yml directory instead of discovering an enclosing Workspace.yml")
	generateCmd.Flags().BoolVar(&generateDisableAutoschemes, "disable-autogenerated-schemes", false, "Suppress per-target auto-generated schemes")
}
