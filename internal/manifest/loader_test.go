package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProjectNotFound(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "Project.yml"))
	if err == nil {
		t.Fatal("expected manifest_not_found error")
	}
}

func TestLoadProjectDecodesTargetsAndDependencies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Project.yml")
	writeFile(t, path, `
name: SomeProject
targets:
  - name: App
    platform: ios
    product: app
    bundleId: com.example.app
    dependencies:
      - target: Core
      - sdk: UIKit.framework
      - package: Lottie
`)
	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "SomeProject" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Targets) != 1 || p.Targets[0].Name != "App" {
		t.Fatalf("unexpected targets: %+v", p.Targets)
	}
	deps := p.Targets[0].Dependencies
	if len(deps) != 3 {
		t.Fatalf("expected 3 dependencies, got %d", len(deps))
	}
	if deps[0].Kind != DependencyTarget || deps[0].Name != "Core" {
		t.Errorf("deps[0] = %+v", deps[0])
	}
	if deps[1].Kind != DependencySDK || deps[1].SDKName != "UIKit.framework" {
		t.Errorf("deps[1] = %+v", deps[1])
	}
	if deps[2].Kind != DependencyPackageProduct || deps[2].Name != "Lottie" {
		t.Errorf("deps[2] = %+v", deps[2])
	}
}

func TestLoadConfigGenerationOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Config.yml")
	writeFile(t, path, `
options:
  - organizationName: TestOrg
  - disableAutogeneratedSchemes: true
  - xcodeProjectName: "one $(project_name) two"
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.GenerationOptions) != 3 {
		t.Fatalf("expected 3 options, got %d", len(c.GenerationOptions))
	}
	if c.GenerationOptions[0].Kind != OptionOrganizationName || c.GenerationOptions[0].StringValue != "TestOrg" {
		t.Errorf("options[0] = %+v", c.GenerationOptions[0])
	}
	if c.GenerationOptions[1].Kind != OptionDisableAutogeneratedSchemes {
		t.Errorf("options[1] = %+v", c.GenerationOptions[1])
	}
}

func TestManifestsAt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), "name: X\n")
	found := ManifestsAt(dir)
	if !found[KindProject] {
		t.Error("expected KindProject to be found")
	}
	if found[KindWorkspace] {
		t.Error("did not expect KindWorkspace to be found")
	}
}
