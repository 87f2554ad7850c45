package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moasq/xcforge/internal/generate"
)

var (
	validatePath        string
	validateProjectOnly bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and convert every manifest without generating",
	Long:  "Load every manifest reachable from --path and build the cross-project graph, reporting fatal errors and recoverable warnings (unmatched globs, missing folder references) without running the mapper pipeline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		warnings, err := generate.Validate(validatePath, generate.Options{ProjectOnly: validateProjectOnly}, nil)
		if err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		if len(warnings) == 0 {
			fmt.Println("valid, no warnings")
			return nil
		}
		fmt.Printf("valid, %d warning(s):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "path", ".", "Directory containing Project.yml or Workspace.yml")
	validateCmd.Flags().BoolVar(&validateProjectOnly, "project-only", false, "Validate a single Project.yml directory instead of discovering an enclosing Workspace.yml")
}
