package depsgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/xcforge/internal/model"
)

type fakeLoader struct {
	byDir map[string]*PackageInfo
}

func (f *fakeLoader) Load(dir string) (*PackageInfo, error) {
	return f.byDir[dir], nil
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestGeneratePlatformIntersection covers spec.md §8 scenario S5: user
// platforms = {ios}, package platforms = [{ios,"13.0"},{macos,"10.15"}].
func TestGeneratePlatformIntersection(t *testing.T) {
	root := t.TempDir()
	checkouts := filepath.Join(root, "checkouts")
	writeFile(t, filepath.Join(root, "workspace-state.json"), `{
		"object": {"dependencies": [
			{"packageRef": {"identity": "lottie", "kind": "remote"}}
		]}
	}`)
	pkgDir := filepath.Join(checkouts, "lottie")
	writeFile(t, filepath.Join(pkgDir, "Sources/Lottie/Lottie.swift"), "")

	loader := &fakeLoader{byDir: map[string]*PackageInfo{
		pkgDir: {
			Name: "lottie",
			Platforms: []PackagePlatform{
				{Platform: model.PlatformIOS, DeploymentTarget: "13.0"},
				{Platform: model.PlatformMacOS, DeploymentTarget: "10.15"},
			},
			Products: []PackageProduct{{Name: "Lottie", Kind: ProductKindLibraryAutomatic, Targets: []string{"Lottie"}}},
			Targets: []PackageTarget{
				{Name: "Lottie", Kind: TargetKindRegular, SourcesPath: "Sources/Lottie"},
			},
		},
	}}

	graph, err := Generate(Input{
		StateFile:           filepath.Join(root, "workspace-state.json"),
		CheckoutsDir:        checkouts,
		ArtifactsDir:        filepath.Join(root, "artifacts"),
		ConfiguredPlatforms: []model.Platform{model.PlatformIOS},
		Loader:              loader,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	proj, ok := graph.ExternalProjects[pkgDir]
	if !ok {
		t.Fatalf("expected synthetic project at %s", pkgDir)
	}
	if len(proj.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(proj.Targets))
	}
	target := proj.Targets[0]
	if target.Platform != model.PlatformIOS {
		t.Errorf("Platform = %q, want ios", target.Platform)
	}
	if target.DeploymentTarget != "13.0" {
		t.Errorf("DeploymentTarget = %q, want 13.0", target.DeploymentTarget)
	}
	if target.Product != model.ProductStaticFramework {
		t.Errorf("Product = %q, want static_framework", target.Product)
	}
}

func TestGenerateNoSupportedPlatformsError(t *testing.T) {
	root := t.TempDir()
	checkouts := filepath.Join(root, "checkouts")
	writeFile(t, filepath.Join(root, "workspace-state.json"), `{
		"object": {"dependencies": [
			{"packageRef": {"identity": "macpkg", "kind": "remote"}}
		]}
	}`)
	pkgDir := filepath.Join(checkouts, "macpkg")

	loader := &fakeLoader{byDir: map[string]*PackageInfo{
		pkgDir: {
			Name:      "macpkg",
			Platforms: []PackagePlatform{{Platform: model.PlatformMacOS, DeploymentTarget: "10.15"}},
			Targets:   []PackageTarget{{Name: "MacOnly", Kind: TargetKindRegular, SourcesPath: "Sources/MacOnly"}},
		},
	}}

	_, err := Generate(Input{
		StateFile:           filepath.Join(root, "workspace-state.json"),
		CheckoutsDir:        checkouts,
		ArtifactsDir:        filepath.Join(root, "artifacts"),
		ConfiguredPlatforms: []model.Platform{model.PlatformIOS},
		Loader:              loader,
	})
	if err == nil {
		t.Fatal("expected no_supported_platforms error")
	}
}

// TestGenerateByNameResolvesToTargetKind covers spec.md §8 scenario S6: a
// byName dependency resolving to a regular target in the same package yields
// target(n), not a project(...) edge.
func TestGenerateByNameResolvesToTargetKind(t *testing.T) {
	root := t.TempDir()
	checkouts := filepath.Join(root, "checkouts")
	writeFile(t, filepath.Join(root, "workspace-state.json"), `{
		"object": {"dependencies": [
			{"packageRef": {"identity": "pkg", "kind": "remote"}}
		]}
	}`)
	pkgDir := filepath.Join(checkouts, "pkg")

	loader := &fakeLoader{byDir: map[string]*PackageInfo{
		pkgDir: {
			Name:      "pkg",
			Platforms: nil,
			Products: []PackageProduct{
				{Name: "X", Kind: ProductKindLibraryStatic, Targets: []string{"X"}},
				{Name: "Y", Kind: ProductKindLibraryStatic, Targets: []string{"Y"}},
			},
			Targets: []PackageTarget{
				{Name: "X", Kind: TargetKindRegular, SourcesPath: "Sources/X"},
				{
					Name:         "Y",
					Kind:         TargetKindRegular,
					SourcesPath:  "Sources/Y",
					Dependencies: []PackageTargetDependency{{Kind: PkgDepByName, Name: "X"}},
				},
			},
		},
	}}

	graph, err := Generate(Input{
		StateFile:           filepath.Join(root, "workspace-state.json"),
		CheckoutsDir:        checkouts,
		ArtifactsDir:        filepath.Join(root, "artifacts"),
		ConfiguredPlatforms: []model.Platform{model.PlatformIOS},
		Loader:              loader,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	proj := graph.ExternalProjects[pkgDir]
	var yTarget *model.Target
	for i := range proj.Targets {
		if proj.Targets[i].Name == "Y" {
			yTarget = &proj.Targets[i]
		}
	}
	if yTarget == nil {
		t.Fatal("expected target Y in synthetic project")
	}
	if len(yTarget.Dependencies) != 1 || yTarget.Dependencies[0].Kind != model.DependencyTarget || yTarget.Dependencies[0].Name != "X" {
		t.Errorf("Y dependencies = %+v, want [target(X)]", yTarget.Dependencies)
	}
}
