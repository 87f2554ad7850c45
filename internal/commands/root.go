// Package commands implements the xcforge CLI surface: command dispatch
// over the generation core in internal/generate (spec.md §1 treats the CLI
// surface as an external collaborator to the core, referenced only by
// interface — this package is that collaborator).
package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "xcforge",
	Short:   "Generate Xcode projects and workspaces from declarative manifests",
	Long:    "xcforge reads Project.yml/Workspace.yml/Config.yml manifests, resolves dependencies, and produces a project descriptor an IDE writer can materialise.",
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(mcpCmd)
}
