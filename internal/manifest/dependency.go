package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DependencyKind is the tag of a Dependency sum-type value (spec.md §3
// "Dependency (tagged variants)").
type DependencyKind string

const (
	DependencyTarget         DependencyKind = "target"
	DependencyProject        DependencyKind = "project"
	DependencyFramework      DependencyKind = "framework"
	DependencyXCFramework    DependencyKind = "xcframework"
	DependencyLibrary        DependencyKind = "library"
	DependencySDK            DependencyKind = "sdk"
	DependencyPackageProduct DependencyKind = "package_product"
	DependencyCocoapods      DependencyKind = "cocoapods"
	DependencyExternal       DependencyKind = "external"
)

// SDKStatus is required or optional linkage for an sdk() dependency.
type SDKStatus string

const (
	SDKRequired SDKStatus = "required"
	SDKOptional SDKStatus = "optional"
)

// Dependency is one edge out of a target, tagged by Kind. Every consumer
// (the converter in 4.E, the external-deps generator in 4.D) must
// exhaustively switch on Kind.
type Dependency struct {
	Kind DependencyKind

	Name string // target / package_product / external name

	ProjectPath string // project(name, path)
	TargetName  string // project(name, path): the target name within that project

	Path string // framework / xcframework / library / cocoapods path

	PublicHeaders  string // library(public_headers?)
	SwiftModuleMap string // library(swift_module_map?)

	SDKName   string
	SDKStatus SDKStatus
}

// dependencyYAML mirrors XcodeGen's dependency schema: exactly one of these
// keys is set per list entry.
type dependencyYAML struct {
	Target         string `yaml:"target"`
	Project        string `yaml:"project"`
	ProjectTarget  string `yaml:"projectTarget,omitempty"`
	Framework      string `yaml:"framework"`
	XCFramework    string `yaml:"xcframework"`
	Library        string `yaml:"library"`
	PublicHeaders  string `yaml:"headers,omitempty"`
	SwiftModuleMap string `yaml:"swiftModuleMap,omitempty"`
	SDK            string `yaml:"sdk"`
	SDKOptional    bool   `yaml:"optional,omitempty"`
	Package        string `yaml:"package"`
	Cocoapods      string `yaml:"carthage"`
	External       string `yaml:"external"`
}

// UnmarshalYAML decodes a dependency list entry into its tagged variant by
// inspecting which key was present.
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	var raw dependencyYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.Target != "":
		d.Kind = DependencyTarget
		d.Name = raw.Target
	case raw.Project != "":
		d.Kind = DependencyProject
		d.ProjectPath = raw.Project
		d.TargetName = raw.ProjectTarget
	case raw.Framework != "":
		d.Kind = DependencyFramework
		d.Path = raw.Framework
	case raw.XCFramework != "":
		d.Kind = DependencyXCFramework
		d.Path = raw.XCFramework
	case raw.Library != "":
		d.Kind = DependencyLibrary
		d.Path = raw.Library
		d.PublicHeaders = raw.PublicHeaders
		d.SwiftModuleMap = raw.SwiftModuleMap
	case raw.SDK != "":
		d.Kind = DependencySDK
		d.SDKName = raw.SDK
		d.SDKStatus = SDKRequired
		if raw.SDKOptional {
			d.SDKStatus = SDKOptional
		}
	case raw.Package != "":
		d.Kind = DependencyPackageProduct
		d.Name = raw.Package
	case raw.Cocoapods != "":
		d.Kind = DependencyCocoapods
		d.Path = raw.Cocoapods
	case raw.External != "":
		d.Kind = DependencyExternal
		d.Name = raw.External
	default:
		return fmt.Errorf("manifest: dependency entry has no recognised key")
	}
	return nil
}

// MarshalYAML encodes a Dependency back to its single-key form.
func (d Dependency) MarshalYAML() (any, error) {
	switch d.Kind {
	case DependencyTarget:
		return dependencyYAML{Target: d.Name}, nil
	case DependencyProject:
		return dependencyYAML{Project: d.ProjectPath, ProjectTarget: d.TargetName}, nil
	case DependencyFramework:
		return dependencyYAML{Framework: d.Path}, nil
	case DependencyXCFramework:
		return dependencyYAML{XCFramework: d.Path}, nil
	case DependencyLibrary:
		return dependencyYAML{Library: d.Path, PublicHeaders: d.PublicHeaders, SwiftModuleMap: d.SwiftModuleMap}, nil
	case DependencySDK:
		return dependencyYAML{SDK: d.SDKName, SDKOptional: d.SDKStatus == SDKOptional}, nil
	case DependencyPackageProduct:
		return dependencyYAML{Package: d.Name}, nil
	case DependencyCocoapods:
		return dependencyYAML{Cocoapods: d.Path}, nil
	case DependencyExternal:
		return dependencyYAML{External: d.Name}, nil
	default:
		return nil, fmt.Errorf("manifest: dependency has unknown kind %q", d.Kind)
	}
}

// GenerationOptionKind tags a single entry of Config.GenerationOptions
// (spec.md §3 "Config... closed set").
type GenerationOptionKind string

const (
	OptionXcodeProjectName                  GenerationOptionKind = "xcode_project_name"
	OptionOrganizationName                  GenerationOptionKind = "organization_name"
	OptionDevelopmentRegion                 GenerationOptionKind = "development_region"
	OptionDisableAutogeneratedSchemes       GenerationOptionKind = "disable_autogenerated_schemes"
	OptionDisableSynthesizedResourceAccess  GenerationOptionKind = "disable_synthesized_resource_accessors"
	OptionDisableShowEnvVarsInScriptPhases  GenerationOptionKind = "disable_show_environment_vars_in_script_phases"
	OptionEnableCodeCoverage                GenerationOptionKind = "enable_code_coverage"
	OptionResolveDependenciesWithSystemSCM  GenerationOptionKind = "resolve_dependencies_with_system_scm"
	OptionDisablePackageVersionLocking      GenerationOptionKind = "disable_package_version_locking"
	OptionTemplateMacros                    GenerationOptionKind = "template_macros"
	OptionSwiftToolsVersion                 GenerationOptionKind = "swift_tools_version"
)

// GenerationOption is one entry of the closed generation_options set.
// StringValue / MapValue hold the payload for options that carry one; flag
// options carry none, their presence is the value.
type GenerationOption struct {
	Kind        GenerationOptionKind
	StringValue string
	MapValue    map[string]any
}

type generationOptionYAML struct {
	XcodeProjectName                 *string        `yaml:"xcodeProjectName,omitempty"`
	OrganizationName                 *string        `yaml:"organizationName,omitempty"`
	DevelopmentRegion                *string        `yaml:"developmentRegion,omitempty"`
	DisableAutogeneratedSchemes      bool           `yaml:"disableAutogeneratedSchemes,omitempty"`
	DisableSynthesizedResourceAccess bool           `yaml:"disableSynthesizedResourceAccessors,omitempty"`
	DisableShowEnvVars               bool           `yaml:"disableShowEnvironmentVarsInScriptPhases,omitempty"`
	EnableCodeCoverage               bool           `yaml:"enableCodeCoverage,omitempty"`
	ResolveWithSystemSCM              bool           `yaml:"resolveDependenciesWithSystemScm,omitempty"`
	DisablePackageVersionLocking     bool           `yaml:"disablePackageVersionLocking,omitempty"`
	TemplateMacros                   map[string]any `yaml:"templateMacros,omitempty"`
	SwiftToolsVersion                *string        `yaml:"swiftToolsVersion,omitempty"`
}

// UnmarshalYAML decodes a single generation_options map entry.
func (o *GenerationOption) UnmarshalYAML(value *yaml.Node) error {
	var raw generationOptionYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.XcodeProjectName != nil:
		o.Kind, o.StringValue = OptionXcodeProjectName, *raw.XcodeProjectName
	case raw.OrganizationName != nil:
		o.Kind, o.StringValue = OptionOrganizationName, *raw.OrganizationName
	case raw.DevelopmentRegion != nil:
		o.Kind, o.StringValue = OptionDevelopmentRegion, *raw.DevelopmentRegion
	case raw.DisableAutogeneratedSchemes:
		o.Kind = OptionDisableAutogeneratedSchemes
	case raw.DisableSynthesizedResourceAccess:
		o.Kind = OptionDisableSynthesizedResourceAccess
	case raw.DisableShowEnvVars:
		o.Kind = OptionDisableShowEnvVarsInScriptPhases
	case raw.EnableCodeCoverage:
		o.Kind = OptionEnableCodeCoverage
	case raw.ResolveWithSystemSCM:
		o.Kind = OptionResolveDependenciesWithSystemSCM
	case raw.DisablePackageVersionLocking:
		o.Kind = OptionDisablePackageVersionLocking
	case raw.TemplateMacros != nil:
		o.Kind, o.MapValue = OptionTemplateMacros, raw.TemplateMacros
	case raw.SwiftToolsVersion != nil:
		o.Kind, o.StringValue = OptionSwiftToolsVersion, *raw.SwiftToolsVersion
	default:
		return fmt.Errorf("manifest: generation option entry has no recognised key")
	}
	return nil
}
