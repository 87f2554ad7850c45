// Package model defines the typed, post-conversion representation used
// throughout the core (spec.md §3 "Model") and the manifest→model converter
// (spec.md §4.E). Mappers in internal/mapper take a Project by value and
// return the mapped Project, but the two share slices and maps: a mapper that
// edits a target's fields or settings also changes the value it was given.
package model

import "github.com/moasq/xcforge/internal/manifest"

// Platform is one of the four target platforms spec.md §3 enumerates.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformMacOS   Platform = "macos"
	PlatformTVOS    Platform = "tvos"
	PlatformWatchOS Platform = "watchos"
)

// Product is the buildable-product kind of a target.
type Product string

const (
	ProductApp                Product = "app"
	ProductFramework          Product = "framework"
	ProductStaticFramework    Product = "static_framework"
	ProductStaticLibrary      Product = "static_library"
	ProductDynamicLibrary     Product = "dynamic_library"
	ProductUnitTests          Product = "unit_tests"
	ProductUITests            Product = "ui_tests"
	ProductBundle             Product = "bundle"
	ProductAppExtension       Product = "app_extension"
	ProductMessagesExtension  Product = "messages_extension"
	ProductWatch2App          Product = "watch2_app"
	ProductWatch2Extension    Product = "watch2_extension"
	ProductTVTopShelfExt      Product = "tv_top_shelf_extension"
	ProductStickerPackExt     Product = "sticker_pack_extension"
	ProductAppClip            Product = "app_clip"
	ProductCommandLineTool    Product = "command_line_tool"
)

// IsTestBundle reports whether the product is a unit- or UI-test bundle.
func (p Product) IsTestBundle() bool { return p == ProductUnitTests || p == ProductUITests }

// IsRunnable reports whether the product can be the target of a run action
// directly (apps and command-line tools; extensions run via their host).
func (p Product) IsRunnable() bool {
	switch p {
	case ProductApp, ProductWatch2App, ProductCommandLineTool:
		return true
	default:
		return false
	}
}

// CanHostExtension reports whether a target of this product kind can embed
// and host an app_extension/messages_extension target.
func (p Product) CanHostExtension() bool {
	return p == ProductApp || p == ProductWatch2App
}

// ResolvedFile is one source/resource entry after glob expansion: an
// absolute path plus the flags that travelled with its manifest entry.
type ResolvedFile struct {
	Path          string
	CompilerFlags []string
	BuildPhase    string
}

// Headers groups the resolved absolute paths of a target's three
// header-visibility buckets.
type Headers struct {
	Public  []string
	Private []string
	Project []string
}

// InfoPlist is either a path to an existing file or a dictionary pending
// synthesis by GenerateInfoPlistProjectMapper.
type InfoPlist struct {
	Path       string
	Properties map[string]any
}

// IsSynthesized reports whether this InfoPlist still needs to be materialised.
func (p InfoPlist) IsSynthesized() bool { return p.Path == "" && len(p.Properties) > 0 }

// Action is one pre/post build script phase, resolved relative to the target's project.
type Action struct {
	Name                      string
	Script                    string
	ShowEnvVarsInLog          bool
	BasedOnDependencyAnalysis bool
}

// Actions groups a target's pre- and post-build script phases.
type Actions struct {
	Pre  []Action
	Post []Action
}

// DependencyKind re-exports manifest.DependencyKind so model consumers don't
// need to import the manifest package directly.
type DependencyKind = manifest.DependencyKind

const (
	DependencyTarget         = manifest.DependencyTarget
	DependencyProject        = manifest.DependencyProject
	DependencyFramework      = manifest.DependencyFramework
	DependencyXCFramework    = manifest.DependencyXCFramework
	DependencyLibrary        = manifest.DependencyLibrary
	DependencySDK            = manifest.DependencySDK
	DependencyPackageProduct = manifest.DependencyPackageProduct
	DependencyCocoapods      = manifest.DependencyCocoapods
	DependencyExternal       = manifest.DependencyExternal
)

// SDKStatus re-exports manifest.SDKStatus.
type SDKStatus = manifest.SDKStatus

const (
	SDKRequired = manifest.SDKRequired
	SDKOptional = manifest.SDKOptional
)

// Dependency is a resolved dependency edge: paths are absolute, and
// DependencyProject/DependencyTarget entries name an existing (project_path,
// target_name) pair once the graph loader has run.
type Dependency struct {
	Kind DependencyKind

	Name string

	ProjectPath string
	TargetName  string

	Path string

	PublicHeaders  string
	SwiftModuleMap string

	SDKName   string
	SDKStatus SDKStatus
}

// Target is a single buildable product description (spec.md §3 "Target").
type Target struct {
	Name             string
	Platform         Platform
	Product          Product
	BundleID         string
	DeploymentTarget string
	InfoPlist        InfoPlist
	Entitlements     string
	Sources          []ResolvedFile
	Resources        []ResolvedFile
	Headers          *Headers
	Dependencies     []Dependency
	Settings         Settings
	Environment      map[string]string
	LaunchArguments  []string
	CoreDataModels   []string
	Actions          Actions
}

// BuildConfigurationVariant is debug or release (spec.md §3 "Settings").
type BuildConfigurationVariant string

const (
	VariantDebug   BuildConfigurationVariant = "debug"
	VariantRelease BuildConfigurationVariant = "release"
)

// BuildConfiguration names one configuration and its debug/release variant.
type BuildConfiguration struct {
	Name    string
	Variant BuildConfigurationVariant
}

// Configuration is one named configuration's settings plus optional xcconfig.
type Configuration struct {
	Settings map[string]any
	Xcconfig string
}

// Settings is a base dictionary plus per-configuration overrides. Iteration
// over Configurations must follow OrderedConfigurationNames, never Go map
// order (spec.md §8 property 3: "strictly ascending by name").
type Settings struct {
	Base           map[string]any
	Configurations map[BuildConfiguration]Configuration
}

// OrderedConfigurationNames returns configuration names in the order they
// must be emitted: lexicographic ascending, ties resolved debug before
// release (spec.md §8 property 3).
func (s Settings) OrderedConfigurationNames() []BuildConfiguration {
	keys := make([]BuildConfiguration, 0, len(s.Configurations))
	for k := range s.Configurations {
		keys = append(keys, k)
	}
	sortBuildConfigurations(keys)
	return keys
}

// TargetReference names a target, optionally in another project.
type TargetReference struct {
	ProjectPath string
	TargetName  string
}

// BuildAction lists the targets a scheme builds.
type BuildAction struct {
	Targets []TargetReference
}

// TestAction configures a scheme's test run.
type TestAction struct {
	Targets             []TargetReference
	Coverage            bool
	CodeCoverageTargets []TargetReference
	BuildConfiguration  string
	Diagnostics         DiagnosticsOptions
}

// DiagnosticsOptions carries the run/test diagnostics flags spec.md §4.G names.
type DiagnosticsOptions struct {
	MainThreadChecker bool
}

// RunAction configures a scheme's launch (spec.md §6 scheme bit-level contract).
type RunAction struct {
	Executable                       *TargetReference
	MacroExpansion                   *TargetReference
	BuildConfiguration                string
	Arguments                        []string
	Environment                      map[string]string
	Diagnostics                      DiagnosticsOptions
	IgnoresPersistentStateOnLaunch   bool
	UseCustomWorkingDirectory        bool
	DebugDocumentVersioning          bool
}

// ProfileAction configures a scheme's Instruments profile run.
type ProfileAction struct {
	BuildConfiguration                string
	ShouldUseLaunchSchemeArgsEnv      bool
	EnableTestabilityWhenProfilingTests bool
}

// AnalyzeAction configures a scheme's static-analysis run.
type AnalyzeAction struct {
	BuildConfiguration string
}

// ArchiveAction configures a scheme's archive.
type ArchiveAction struct {
	BuildConfiguration           string
	RevealArchiveInOrganizer bool
}

// Scheme is a named set of actions targeting one or more targets (spec.md §3 "Scheme").
type Scheme struct {
	Name    string
	Shared  bool
	Build   *BuildAction
	Test    *TestAction
	Run     *RunAction
	Profile *ProfileAction
	Analyze *AnalyzeAction
	Archive *ArchiveAction
}

// Project is the post-conversion representation of one Project.yml (spec.md §3 "Project").
type Project struct {
	Path                               string
	Name                               string
	OrganizationName                   string
	Targets                            []Target
	Schemes                            []Scheme
	Settings                           Settings
	AdditionalFiles                    []ResolvedFile
	ResourceSynthesizers               []string
	DefaultDebugBuildConfigurationName string
	FileName                           string
}

// TargetByName returns the target named name, or false if no such target
// exists. Invariant spec.md §8 property 1: at most one match.
func (p Project) TargetByName(name string) (Target, bool) {
	for _, t := range p.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// SchemeByName returns the scheme named name, or false if none exists.
func (p Project) SchemeByName(name string) (Scheme, bool) {
	for _, s := range p.Schemes {
		if s.Name == name {
			return s, true
		}
	}
	return Scheme{}, false
}

// Workspace is the post-conversion representation of one Workspace.yml (spec.md §3 "Workspace").
type Workspace struct {
	Path            string
	Name            string
	Projects        []string // ordered, deduped absolute project directory paths
	AdditionalFiles []ResolvedFile
	Schemes         []Scheme
}
