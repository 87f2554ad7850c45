// Package config holds the Config value and generation-option handling of
// spec.md §3/§4.J: exactly one typed settings object threaded through the
// generation pipeline.
package config

import (
	"github.com/moasq/xcforge/internal/manifest"
)

// Config is the generation-wide options value (spec.md §3 "Config").
type Config struct {
	XcodeProjectName  string // template string, may contain $(project_name)
	OrganizationName  string
	DevelopmentRegion string

	DisableAutogeneratedSchemes      bool
	DisableSynthesizedResourceAccess bool
	DisableShowEnvVarsInScriptPhases bool
	EnableCodeCoverage               bool
	ResolveDependenciesWithSystemSCM bool
	DisablePackageVersionLocking     bool
	SwiftToolsVersion                string
	TemplateMacros                   map[string]any

	CompatibleIDEVersions []string
	Cloud                 *Cloud
	Cache                 *Cache
	Plugins               []string
}

// Cloud mirrors manifest.Cloud after validation.
type Cloud struct {
	URL       string
	ProjectID string
	Options   map[string]bool // set<{insights}>
}

// Cache mirrors manifest.CacheConfig.
type Cache struct {
	Profile string
}

// Default returns the zero-value Config: no options, nil cloud/cache, all
// compatible IDE versions (spec.md §4.J "Config.default").
func Default() *Config {
	return &Config{CompatibleIDEVersions: nil}
}

// FromManifest builds a Config from a decoded manifest.Config, applying the
// "at most one xcode_project_name and one organization_name; later
// duplicates silently discarded" invariant of spec.md §3 (first occurrence
// wins — see S3 in spec.md §8).
func FromManifest(m *manifest.Config) *Config {
	cfg := Default()
	if m == nil {
		return cfg
	}

	haveProjectName := false
	haveOrgName := false
	for _, opt := range m.GenerationOptions {
		switch opt.Kind {
		case manifest.OptionXcodeProjectName:
			if !haveProjectName {
				cfg.XcodeProjectName = opt.StringValue
				haveProjectName = true
			}
		case manifest.OptionOrganizationName:
			if !haveOrgName {
				cfg.OrganizationName = opt.StringValue
				haveOrgName = true
			}
		case manifest.OptionDevelopmentRegion:
			cfg.DevelopmentRegion = opt.StringValue
		case manifest.OptionDisableAutogeneratedSchemes:
			cfg.DisableAutogeneratedSchemes = true
		case manifest.OptionDisableSynthesizedResourceAccess:
			cfg.DisableSynthesizedResourceAccess = true
		case manifest.OptionDisableShowEnvVarsInScriptPhases:
			cfg.DisableShowEnvVarsInScriptPhases = true
		case manifest.OptionEnableCodeCoverage:
			cfg.EnableCodeCoverage = true
		case manifest.OptionResolveDependenciesWithSystemSCM:
			cfg.ResolveDependenciesWithSystemSCM = true
		case manifest.OptionDisablePackageVersionLocking:
			cfg.DisablePackageVersionLocking = true
		case manifest.OptionSwiftToolsVersion:
			cfg.SwiftToolsVersion = opt.StringValue
		case manifest.OptionTemplateMacros:
			cfg.TemplateMacros = opt.MapValue
		}
	}

	cfg.CompatibleIDEVersions = m.CompatibleIDEVersions
	cfg.Plugins = m.Plugins

	if m.Cloud != nil {
		opts := make(map[string]bool, len(m.Cloud.Options))
		for _, o := range m.Cloud.Options {
			opts[o] = true
		}
		cfg.Cloud = &Cloud{URL: m.Cloud.URL, ProjectID: m.Cloud.ProjectID, Options: opts}
	}
	if m.Cache != nil {
		cfg.Cache = &Cache{Profile: m.Cache.Profile}
	}
	return cfg
}
