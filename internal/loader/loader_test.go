package loader

import (
	"os"
	"path/filepath"
	"testing"
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

const appManifest = `
name: App
targets:
  - name: App
    platform: ios
    product: app
    dependencies:
      - project: ../Shared
        projectTarget: Shared
`

const sharedManifest = `
name: Shared
targets:
  - name: Shared
    platform: ios
    product: framework
`

func TestLoadProjectFollowsProjectDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "App/Project.yml"), appManifest)
	writeFile(t, filepath.Join(root, "Shared/Project.yml"), sharedManifest)

	loaded, err := LoadProject(filepath.Join(root, "App"), nil)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(loaded.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d: %v", len(loaded.Projects), loaded.Projects)
	}
	sharedDir := filepath.Clean(filepath.Join(root, "Shared"))
	if _, ok := loaded.Projects[sharedDir]; !ok {
		t.Errorf("expected %s to be loaded, got keys %v", sharedDir, keys(loaded.Projects))
	}
}

func TestLoadProjectToleratesCycles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A/Project.yml"), `
name: A
targets:
  - name: A
    platform: ios
    product: framework
    dependencies:
      - project: ../B
        projectTarget: B
`)
	writeFile(t, filepath.Join(root, "B/Project.yml"), `
name: B
targets:
  - name: B
    platform: ios
    product: framework
    dependencies:
      - project: ../A
        projectTarget: A
`)

	loaded, err := LoadProject(filepath.Join(root, "A"), nil)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(loaded.Projects) != 2 {
		t.Fatalf("expected 2 projects despite cycle, got %d", len(loaded.Projects))
	}
}

func TestLoadWorkspaceExpandsGlobAndFiltersNonProjectDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Workspace.yml"), `
name: Workspace
projects:
  - "Apps/*"
`)
	writeFile(t, filepath.Join(root, "Apps/App/Project.yml"), `
name: App
targets: []
`)
	writeFile(t, filepath.Join(root, "Apps/NotAProject/README.md"), "nothing here")

	_, loaded, err := LoadWorkspace(root, nil)
	if err != nil {
		t.Fatalf("LoadWorkspace: %v", err)
	}
	if len(loaded.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d: %v", len(loaded.Projects), keys(loaded.Projects))
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
