// Package manifest defines the manifest value types (spec.md §3, "Manifest")
// and the manifest loader (spec.md §4.B): it turns one YAML file into a typed
// value, or reports manifest_not_found. Manifests are decoded with
// gopkg.in/yaml.v3.
//
// Nothing in this package executes manifest content; every operation is a
// pure decode into the structs below (spec.md §4.B "value-level, no code
// execution inside the core's trust boundary").
package manifest

// Kind identifies which of the four manifest files a path holds.
type Kind string

const (
	KindProject   Kind = "project"
	KindWorkspace Kind = "workspace"
	KindConfig    Kind = "config"
	KindTemplate  Kind = "template"
)

// FileElement is one entry of a sources/resources/additionalFiles list: a
// glob pattern, an explicit path, or a folder reference.
type FileElement struct {
	Path           string   `yaml:"path"`
	Type           string   `yaml:"type,omitempty"` // "group" | "folder" (folder reference)
	Excludes       []string `yaml:"excludes,omitempty"`
	Optional       bool     `yaml:"optional,omitempty"`
	CompilerFlags  []string `yaml:"compilerFlags,omitempty"`
	BuildPhase     string   `yaml:"buildPhase,omitempty"`
}

// Headers groups the three header-visibility globs of a target.
type Headers struct {
	Public  string `yaml:"public,omitempty"`
	Private string `yaml:"private,omitempty"`
	Project string `yaml:"project,omitempty"`
}

// InfoPlist is either a path to an existing file or an inline dictionary to
// synthesize (spec.md §3 Target "info_plist (path or synthesized dictionary)").
type InfoPlist struct {
	Path       string         `yaml:"path,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// IsSynthesized reports whether this InfoPlist should be materialised by the
// GenerateInfoPlistProjectMapper rather than referenced as-is.
func (p InfoPlist) IsSynthesized() bool { return p.Path == "" && len(p.Properties) > 0 }

// Action is one pre- or post-build script phase.
type Action struct {
	Name           string `yaml:"name"`
	Script         string `yaml:"script"`
	ShowEnvVars    bool   `yaml:"showEnvVarsInLog,omitempty"`
	BasedOnDepAnal bool   `yaml:"basedOnDependencyAnalysis,omitempty"`
}

// Actions groups a target's pre- and post-build script phases.
type Actions struct {
	Pre  []Action `yaml:"pre,omitempty"`
	Post []Action `yaml:"post,omitempty"`
}

// Target is one buildable product description within a Project manifest.
type Target struct {
	Name             string            `yaml:"name"`
	Platform         string            `yaml:"platform"`
	Product          string            `yaml:"product"`
	BundleID         string            `yaml:"bundleId,omitempty"`
	DeploymentTarget string            `yaml:"deploymentTarget,omitempty"`
	InfoPlist        InfoPlist         `yaml:"info,omitempty"`
	Entitlements     string            `yaml:"entitlements,omitempty"`
	Sources          []FileElement     `yaml:"sources,omitempty"`
	Resources        []FileElement     `yaml:"resources,omitempty"`
	Headers          *Headers          `yaml:"headers,omitempty"`
	Dependencies     []Dependency      `yaml:"dependencies,omitempty"`
	Settings         *Settings         `yaml:"settings,omitempty"`
	Environment      map[string]string `yaml:"environment,omitempty"`
	LaunchArguments   []string         `yaml:"launchArguments,omitempty"`
	CoreDataModels    []string         `yaml:"coreDataModels,omitempty"`
	Actions           Actions          `yaml:"actions,omitempty"`
}

// Configuration is one named build configuration's settings plus optional xcconfig.
type Configuration struct {
	Settings map[string]any `yaml:"settings,omitempty"`
	Xcconfig string         `yaml:"xcconfig,omitempty"`
}

// Settings is a project- or target-level settings block: a base dictionary
// plus per-configuration overrides (spec.md §3 "Settings").
type Settings struct {
	Base           map[string]any           `yaml:"base,omitempty"`
	Configurations map[string]Configuration `yaml:"configs,omitempty"`
}

// TargetReference names a target, optionally in another project, the way
// scheme actions refer to targets (spec.md §3 "TargetReference").
type TargetReference struct {
	ProjectPath string `yaml:"project,omitempty"`
	TargetName  string `yaml:"target"`
}

// BuildAction lists the targets a scheme builds.
type BuildAction struct {
	Targets []TargetReference `yaml:"targets,omitempty"`
}

// TestAction configures a scheme's test run.
type TestAction struct {
	Targets             []TargetReference `yaml:"targets,omitempty"`
	Coverage            bool              `yaml:"coverage,omitempty"`
	CodeCoverageTargets []TargetReference `yaml:"codeCoverageTargets,omitempty"`
	Config              string            `yaml:"config,omitempty"`
}

// RunAction configures a scheme's launch.
type RunAction struct {
	Executable *TargetReference  `yaml:"executable,omitempty"`
	Config     string            `yaml:"config,omitempty"`
	Arguments  []string          `yaml:"arguments,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// ProfileAction configures a scheme's Instruments profile run.
type ProfileAction struct {
	Config string `yaml:"config,omitempty"`
}

// AnalyzeAction configures a scheme's static-analysis run.
type AnalyzeAction struct {
	Config string `yaml:"config,omitempty"`
}

// ArchiveAction configures a scheme's archive.
type ArchiveAction struct {
	Config string `yaml:"config,omitempty"`
}

// Scheme is a named set of actions targeting one or more targets (spec.md §3).
type Scheme struct {
	Name          string         `yaml:"name"`
	Shared        bool           `yaml:"shared,omitempty"`
	Build         *BuildAction   `yaml:"build,omitempty"`
	Test          *TestAction    `yaml:"test,omitempty"`
	Run           *RunAction     `yaml:"run,omitempty"`
	Profile       *ProfileAction `yaml:"profile,omitempty"`
	Analyze       *AnalyzeAction `yaml:"analyze,omitempty"`
	Archive       *ArchiveAction `yaml:"archive,omitempty"`
}

// Project is the root value decoded from a Project.yml manifest.
type Project struct {
	Name                               string        `yaml:"name"`
	OrganizationName                   string        `yaml:"organizationName,omitempty"`
	Targets                            []Target      `yaml:"targets,omitempty"`
	Schemes                            []Scheme      `yaml:"schemes,omitempty"`
	Settings                           Settings      `yaml:"settings,omitempty"`
	AdditionalFiles                    []FileElement `yaml:"additionalFiles,omitempty"`
	ResourceSynthesizers               []string      `yaml:"resourceSynthesizers,omitempty"`
	DefaultDebugBuildConfigurationName string        `yaml:"defaultDebugConfig,omitempty"`
	FileName                           string        `yaml:"fileName,omitempty"`
}

// Workspace is the root value decoded from a Workspace.yml manifest.
type Workspace struct {
	Name            string        `yaml:"name"`
	Projects        []string      `yaml:"projects,omitempty"`
	AdditionalFiles []FileElement `yaml:"additionalFiles,omitempty"`
	Schemes         []Scheme      `yaml:"schemes,omitempty"`
}

// Cloud holds remote-cache/project-sync configuration (spec.md §4.J).
type Cloud struct {
	URL       string   `yaml:"url"`
	ProjectID string   `yaml:"projectId"`
	Options   []string `yaml:"options,omitempty"`
}

// CacheConfig holds the remote build-cache collaborator's configuration.
type CacheConfig struct {
	Profile string `yaml:"profile,omitempty"`
}

// Config is the root value decoded from a Config.yml manifest (spec.md §4.J).
type Config struct {
	GenerationOptions     []GenerationOption `yaml:"options,omitempty"`
	CompatibleIDEVersions []string           `yaml:"compatibleXcodeVersions,omitempty"`
	Cloud                 *Cloud             `yaml:"cloud,omitempty"`
	Cache                 *CacheConfig       `yaml:"cache,omitempty"`
	Plugins               []string           `yaml:"plugins,omitempty"`
}
