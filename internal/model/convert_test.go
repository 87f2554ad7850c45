package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/xcforge/internal/manifest"
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

// TestConvertTargetMergesProjectBaseSettings covers spec.md §4.E "convert
// settings by flattening and applying the same merging rules as 4.D": a
// target's own base settings cascade from the project's, with array-shaped
// keys accumulated and scalar keys overridden by the target.
func TestConvertTargetMergesProjectBaseSettings(t *testing.T) {
	m := &manifest.Project{
		Name: "App",
		Settings: manifest.Settings{
			Base: map[string]any{
				"HEADER_SEARCH_PATHS": []any{"$(SRCROOT)/Vendor"},
				"SWIFT_VERSION":       "5.0",
			},
		},
		Targets: []manifest.Target{
			{
				Name:     "App",
				Platform: "ios",
				Product:  "app",
				Settings: &manifest.Settings{
					Base: map[string]any{
						"HEADER_SEARCH_PATHS": []any{"$(SRCROOT)/App/Include"},
						"SWIFT_VERSION":       "5.9",
					},
				},
			},
		},
	}

	project, err := ConvertProject(m, t.TempDir(), ConvertOptions{}, services.Default())
	if err != nil {
		t.Fatalf("ConvertProject: %v", err)
	}
	base := project.Targets[0].Settings.Base
	paths, ok := base["HEADER_SEARCH_PATHS"].([]any)
	if !ok || len(paths) != 2 {
		t.Fatalf("expected header search paths to accumulate from project and target, got %+v", base["HEADER_SEARCH_PATHS"])
	}
	if base["SWIFT_VERSION"] != "5.9" {
		t.Errorf("expected target's scalar setting to override the project's, got %v", base["SWIFT_VERSION"])
	}
}

// TestConvertTargetExpandsHeaderGlobs covers spec.md §8 scenario S4: header
// globs are expanded against the manifest directory and land in the right
// visibility bucket.
func TestConvertTargetExpandsHeaderGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Sources/public/A.h"), "")
	writeFile(t, filepath.Join(dir, "Sources/public/B.h"), "")
	writeFile(t, filepath.Join(dir, "Sources/private/C.h"), "")

	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{
				Name:     "App",
				Platform: "ios",
				Product:  "app",
				Headers: &manifest.Headers{
					Public:  "Sources/public/*.h",
					Private: "Sources/private/*.h",
				},
			},
		},
	}

	reporter := &services.CollectingReporter{}
	svc := &services.Services{Reporter: reporter, UserName: func() string { return "tester" }}

	project, err := ConvertProject(m, dir, ConvertOptions{}, svc)
	if err != nil {
		t.Fatalf("ConvertProject: %v", err)
	}
	if len(project.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(project.Targets))
	}
	headers := project.Targets[0].Headers
	if headers == nil {
		t.Fatal("expected headers to be set")
	}
	if len(headers.Public) != 2 {
		t.Errorf("Public = %v, want 2 entries", headers.Public)
	}
	if len(headers.Private) != 1 {
		t.Errorf("Private = %v, want 1 entry", headers.Private)
	}
	if len(reporter.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", reporter.Warnings)
	}
}

func TestConvertTargetUnknownPlatform(t *testing.T) {
	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{Name: "App", Platform: "linux", Product: "app"},
		},
	}
	_, err := ConvertProject(m, t.TempDir(), ConvertOptions{}, services.Default())
	if err == nil {
		t.Fatal("expected unknown_platform error")
	}
}

func TestConvertTargetDisabledPlatform(t *testing.T) {
	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{Name: "App", Platform: "watchos", Product: "watch2_app"},
		},
	}
	opts := ConvertOptions{DisabledPlatforms: map[Platform]bool{PlatformWatchOS: true}}
	_, err := ConvertProject(m, t.TempDir(), opts, services.Default())
	if err == nil {
		t.Fatal("expected feature_not_yet_supported error")
	}
}

func TestConvertFileElementsWarnsOnEmptyGlob(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Sources"), 0o755); err != nil {
		t.Fatal(err)
	}
	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{
				Name:     "App",
				Platform: "ios",
				Product:  "app",
				Sources: []manifest.FileElement{
					{Path: "Sources/*.swift"},
				},
			},
		},
	}
	reporter := &services.CollectingReporter{}
	svc := &services.Services{Reporter: reporter, UserName: func() string { return "tester" }}
	project, err := ConvertProject(m, dir, ConvertOptions{}, svc)
	if err != nil {
		t.Fatalf("ConvertProject: %v", err)
	}
	if len(project.Targets[0].Sources) != 0 {
		t.Errorf("expected no resolved sources, got %v", project.Targets[0].Sources)
	}
	if len(reporter.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", reporter.Warnings)
	}
}

func TestConvertFileElementsWarnsOnDirectoryGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Sources/App.swift"), "")
	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{
				Name:     "App",
				Platform: "ios",
				Product:  "app",
				Sources: []manifest.FileElement{
					{Path: "Sources"},
				},
			},
		},
	}
	reporter := &services.CollectingReporter{}
	svc := &services.Services{Reporter: reporter, UserName: func() string { return "tester" }}
	project, err := ConvertProject(m, dir, ConvertOptions{}, svc)
	if err != nil {
		t.Fatalf("ConvertProject: %v", err)
	}
	if len(project.Targets[0].Sources) != 0 {
		t.Errorf("expected directory glob to be omitted, got %v", project.Targets[0].Sources)
	}
	if len(reporter.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", reporter.Warnings)
	}
}

func TestConvertDependencyResolvesProjectPath(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Project{
		Name: "App",
		Targets: []manifest.Target{
			{
				Name:     "App",
				Platform: "ios",
				Product:  "app",
				Dependencies: []manifest.Dependency{
					{Kind: manifest.DependencyProject, ProjectPath: "../Shared/Shared.xcodeproj", TargetName: "Shared"},
					{Kind: manifest.DependencySDK, SDKName: "UIKit.framework", SDKStatus: manifest.SDKRequired},
				},
			},
		},
	}
	project, err := ConvertProject(m, dir, ConvertOptions{}, services.Default())
	if err != nil {
		t.Fatalf("ConvertProject: %v", err)
	}
	deps := project.Targets[0].Dependencies
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(deps))
	}
	want := filepath.Clean(filepath.Join(dir, "../Shared/Shared.xcodeproj"))
	if deps[0].ProjectPath != want {
		t.Errorf("ProjectPath = %q, want %q", deps[0].ProjectPath, want)
	}
	if deps[1].SDKName != "UIKit.framework" || deps[1].SDKStatus != manifest.SDKRequired {
		t.Errorf("unexpected sdk dependency: %+v", deps[1])
	}
}
