package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

func TestSigningMapperInjectsSettingsForMatchingProfile(t *testing.T) {
	projectDir := t.TempDir()
	signingDir := filepath.Join(projectDir, "signing")
	if err := os.Mkdir(signingDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	profile := filepath.Join(signingDir, "com.example.App.mobileprovision")
	if err := os.WriteFile(profile, []byte("placeholder"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	proj := model.Project{
		Path: projectDir,
		Targets: []model.Target{
			{Name: "App", BundleID: "com.example.App"},
			{Name: "Other", BundleID: "com.example.Other"},
		},
	}

	out, effects, err := (SigningMapper{}).Map(proj, config.Default(), services.Default())
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(effects) != 0 {
		t.Errorf("expected no side effects, got %d", len(effects))
	}
	if got := out.Targets[0].Settings.Base["PROVISIONING_PROFILE_SPECIFIER"]; got != "com.example.App" {
		t.Errorf("expected matching target to get a provisioning profile, got %v", got)
	}
	if out.Targets[1].Settings.Base != nil {
		t.Errorf("expected non-matching target to be left untouched, got %+v", out.Targets[1].Settings.Base)
	}
}

func TestSigningMapperMissingDirectoryIsNoop(t *testing.T) {
	proj := model.Project{
		Path:    t.TempDir(),
		Targets: []model.Target{{Name: "App", BundleID: "com.example.App"}},
	}

	out, _, err := (SigningMapper{}).Map(proj, config.Default(), services.Default())
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if out.Targets[0].Settings.Base != nil {
		t.Errorf("expected no signing settings when the directory doesn't exist, got %+v", out.Targets[0].Settings.Base)
	}
}
