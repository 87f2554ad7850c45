package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/xcforge/internal/services"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunProjectOnlyProducesDescriptorWithAutoScheme(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project.yml"), `
name: App
targets:
  - name: App
    platform: ios
    product: app
`)

	result, err := Run(root, Options{ProjectOnly: true}, services.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Project == nil {
		t.Fatal("expected a project descriptor")
	}
	if result.Project.Project.Name != "App" {
		t.Errorf("Project.Name = %q, want App", result.Project.Project.Name)
	}
	if len(result.Project.Schemes) != 2 {
		t.Fatalf("expected the App auto-scheme plus the App-Project automation scheme, got %d", len(result.Project.Schemes))
	}
	if result.Summary.Projects != 1 {
		t.Errorf("Summary.Projects = %d, want 1", result.Summary.Projects)
	}
}

func TestRunWorkspaceFollowsProjectDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Workspace.yml"), `
name: Workspace
projects:
  - App
  - Shared
`)
	writeFile(t, filepath.Join(root, "App/Project.yml"), `
name: App
targets:
  - name: App
    platform: ios
    product: app
    dependencies:
      - project: ../Shared
        projectTarget: Shared
`)
	writeFile(t, filepath.Join(root, "Shared/Project.yml"), `
name: Shared
targets:
  - name: Shared
    platform: ios
    product: framework
`)

	result, err := Run(root, Options{}, services.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Workspace == nil {
		t.Fatal("expected a workspace descriptor")
	}
	if len(result.Workspace.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(result.Workspace.Projects))
	}
	if result.Workspace.Projects[0].Project.Name != "App" {
		t.Errorf("expected deterministic path ordering to put App first, got %q", result.Workspace.Projects[0].Project.Name)
	}
	if result.Summary.Workspaces != 1 {
		t.Errorf("Summary.Workspaces = %d, want 1", result.Summary.Workspaces)
	}
}

func TestRunCollectsWarningsFromUnmatchedGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Project.yml"), `
name: App
targets:
  - name: App
    platform: ios
    product: app
    sources:
      - path: Sources/**
`)

	reporter := &services.CollectingReporter{}
	svc := &services.Services{Reporter: reporter, UserName: func() string { return "tester" }}

	result, err := Run(root, Options{ProjectOnly: true}, svc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Summary.Warnings) == 0 {
		t.Error("expected a warning for the unmatched sources glob")
	}
}
