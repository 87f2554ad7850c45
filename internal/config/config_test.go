package config

import (
	"testing"

	"github.com/moasq/xcforge/internal/manifest"
)

func TestFromManifestFirstXcodeProjectNameWins(t *testing.T) {
	m := &manifest.Config{
		GenerationOptions: []manifest.GenerationOption{
			{Kind: manifest.OptionOrganizationName, StringValue: "TestOrg"},
			{Kind: manifest.OptionDisableAutogeneratedSchemes},
			{Kind: manifest.OptionXcodeProjectName, StringValue: "one $(project_name) two"},
			{Kind: manifest.OptionXcodeProjectName, StringValue: "two $(project_name) three"},
		},
	}
	cfg := FromManifest(m)
	if cfg.XcodeProjectName != "one $(project_name) two" {
		t.Errorf("XcodeProjectName = %q, want first occurrence", cfg.XcodeProjectName)
	}
	if cfg.OrganizationName != "TestOrg" {
		t.Errorf("OrganizationName = %q", cfg.OrganizationName)
	}
	if !cfg.DisableAutogeneratedSchemes {
		t.Error("expected DisableAutogeneratedSchemes to be true")
	}
}

func TestDefaultConfigHasNoOptions(t *testing.T) {
	cfg := Default()
	if cfg.OrganizationName != "" || cfg.Cloud != nil || cfg.Cache != nil {
		t.Errorf("expected zero-value Config, got %+v", cfg)
	}
}
