package model

import (
	"fmt"
	"path/filepath"

	"github.com/moasq/xcforge/internal/generrors"
	"github.com/moasq/xcforge/internal/manifest"
	"github.com/moasq/xcforge/internal/services"
	"github.com/moasq/xcforge/internal/xcpath"
)

// platformTable is the surjective mapping from manifest platform strings to
// model.Platform (spec.md §4.E "Platform mapping is surjective").
var platformTable = map[string]Platform{
	"ios":     PlatformIOS,
	"macos":   PlatformMacOS,
	"tvos":    PlatformTVOS,
	"watchos": PlatformWatchOS,
}

// ConvertOptions configures a single manifest→model conversion run.
type ConvertOptions struct {
	// DisabledPlatforms marks platforms the host build does not support yet;
	// converting a target declared for one of these yields
	// feature_not_yet_supported("<platform> platform") (spec.md §4.E).
	DisabledPlatforms map[Platform]bool
}

// ConvertProject lowers a decoded manifest.Project into a model.Project.
// manifestDir is the directory the manifest file lives in; all relative
// paths (sources, resources, info plist, entitlements, settings xcconfig)
// are resolved against it.
func ConvertProject(m *manifest.Project, manifestDir string, opts ConvertOptions, svc *services.Services) (*Project, error) {
	settings, err := convertSettings(m.Settings, manifestDir)
	if err != nil {
		return nil, err
	}

	targets := make([]Target, 0, len(m.Targets))
	for _, t := range m.Targets {
		target, err := convertTarget(t, manifestDir, opts, svc, settings.Base)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	additionalFiles := convertFileElements(m.AdditionalFiles, manifestDir, svc)

	defaultDebug := m.DefaultDebugBuildConfigurationName
	if defaultDebug == "" {
		defaultDebug = "Debug"
	}

	fileName := m.FileName
	if fileName == "" {
		fileName = m.Name
	}

	return &Project{
		Path:                               manifestDir,
		Name:                               m.Name,
		OrganizationName:                   m.OrganizationName,
		Targets:                            targets,
		Schemes:                            convertSchemes(m.Schemes, manifestDir),
		Settings:                           settings,
		AdditionalFiles:                    additionalFiles,
		ResourceSynthesizers:               m.ResourceSynthesizers,
		DefaultDebugBuildConfigurationName: defaultDebug,
		FileName:                           fileName,
	}, nil
}

// ConvertWorkspace lowers a decoded manifest.Workspace into a model.Workspace.
// projectPaths is the already-resolved, deduped list of absolute project
// directories (produced by the recursive loader in internal/loader, spec.md
// §3 Workspace invariant: "projects list is deduped preserving first occurrence").
func ConvertWorkspace(m *manifest.Workspace, manifestDir string, projectPaths []string, svc *services.Services) *Workspace {
	return &Workspace{
		Path:            manifestDir,
		Name:            m.Name,
		Projects:        projectPaths,
		AdditionalFiles: convertFileElements(m.AdditionalFiles, manifestDir, svc),
		Schemes:         convertSchemes(m.Schemes, manifestDir),
	}
}

func convertTarget(t manifest.Target, manifestDir string, opts ConvertOptions, svc *services.Services, projectBaseSettings map[string]any) (Target, error) {
	platform, ok := platformTable[t.Platform]
	if !ok {
		return Target{}, generrors.UnknownPlatform(t.Platform)
	}
	if opts.DisabledPlatforms[platform] {
		return Target{}, generrors.FeatureNotYetSupported(fmt.Sprintf("%s platform", t.Platform))
	}

	settings, err := convertSettings(derefSettings(t.Settings), manifestDir)
	if err != nil {
		return Target{}, err
	}
	// A target's base settings cascade from the project's, flattened with the
	// same merge rule 4.D's settings-grouping table uses: scalar keys are
	// overridden by the target, array-shaped keys (HEADER_SEARCH_PATHS and
	// friends) are accumulated (spec.md §4.E "applying the same merging rules
	// as 4.D").
	if len(projectBaseSettings) > 0 {
		settings.Base = MergeSettings(projectBaseSettings, settings.Base)
	}

	deps := make([]Dependency, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		deps = append(deps, convertDependency(d, manifestDir))
	}

	var headers *Headers
	if t.Headers != nil {
		headers = &Headers{
			Public:  globOrWarn(manifestDir, t.Headers.Public, svc),
			Private: globOrWarn(manifestDir, t.Headers.Private, svc),
			Project: globOrWarn(manifestDir, t.Headers.Project, svc),
		}
	}

	entitlements := ""
	if t.Entitlements != "" {
		entitlements = xcpath.AbsoluteFrom(manifestDir, t.Entitlements)
	}

	infoPlist := InfoPlist{Properties: t.InfoPlist.Properties}
	if t.InfoPlist.Path != "" {
		infoPlist.Path = xcpath.AbsoluteFrom(manifestDir, t.InfoPlist.Path)
	}

	return Target{
		Name:             t.Name,
		Platform:         platform,
		Product:          Product(t.Product),
		BundleID:         t.BundleID,
		DeploymentTarget: t.DeploymentTarget,
		InfoPlist:        infoPlist,
		Entitlements:     entitlements,
		Sources:          convertFileElements(t.Sources, manifestDir, svc),
		Resources:        convertFileElements(t.Resources, manifestDir, svc),
		Headers:          headers,
		Dependencies:     deps,
		Settings:         settings,
		Environment:      t.Environment,
		LaunchArguments:  t.LaunchArguments,
		CoreDataModels:   t.CoreDataModels,
		Actions:          convertActions(t.Actions),
	}, nil
}

func derefSettings(s *manifest.Settings) manifest.Settings {
	if s == nil {
		return manifest.Settings{}
	}
	return *s
}

func convertActions(a manifest.Actions) Actions {
	convert := func(in []manifest.Action) []Action {
		out := make([]Action, 0, len(in))
		for _, action := range in {
			out = append(out, Action{
				Name:                      action.Name,
				Script:                    action.Script,
				ShowEnvVarsInLog:          action.ShowEnvVars,
				BasedOnDependencyAnalysis: action.BasedOnDepAnal,
			})
		}
		return out
	}
	return Actions{Pre: convert(a.Pre), Post: convert(a.Post)}
}

func convertDependency(d manifest.Dependency, manifestDir string) Dependency {
	out := Dependency{
		Kind:           d.Kind,
		Name:           d.Name,
		TargetName:     d.TargetName,
		PublicHeaders:  d.PublicHeaders,
		SwiftModuleMap: d.SwiftModuleMap,
		SDKName:        d.SDKName,
		SDKStatus:      d.SDKStatus,
	}
	switch d.Kind {
	case manifest.DependencyProject:
		out.ProjectPath = xcpath.AbsoluteFrom(manifestDir, d.ProjectPath)
	case manifest.DependencyFramework, manifest.DependencyXCFramework, manifest.DependencyLibrary, manifest.DependencyCocoapods:
		out.Path = xcpath.AbsoluteFrom(manifestDir, d.Path)
	}
	return out
}

func convertSettings(m manifest.Settings, manifestDir string) (Settings, error) {
	configs := make(map[BuildConfiguration]Configuration, len(m.Configurations))
	for name, cfg := range m.Configurations {
		bc := BuildConfiguration{Name: name, Variant: VariantForName(name)}
		xcconfig := ""
		if cfg.Xcconfig != "" {
			xcconfig = xcpath.AbsoluteFrom(manifestDir, cfg.Xcconfig)
		}
		configs[bc] = Configuration{Settings: cfg.Settings, Xcconfig: xcconfig}
	}
	return Settings{Base: m.Base, Configurations: configs}, nil
}

func convertSchemes(in []manifest.Scheme, manifestDir string) []Scheme {
	out := make([]Scheme, 0, len(in))
	for _, s := range in {
		out = append(out, convertScheme(s, manifestDir))
	}
	return out
}

func convertScheme(s manifest.Scheme, manifestDir string) Scheme {
	refs := func(in []manifest.TargetReference) []TargetReference {
		out := make([]TargetReference, 0, len(in))
		for _, r := range in {
			out = append(out, convertTargetReference(r, manifestDir))
		}
		return out
	}
	scheme := Scheme{Name: s.Name, Shared: s.Shared}
	if s.Build != nil {
		scheme.Build = &BuildAction{Targets: refs(s.Build.Targets)}
	}
	if s.Test != nil {
		scheme.Test = &TestAction{
			Targets:             refs(s.Test.Targets),
			Coverage:            s.Test.Coverage,
			CodeCoverageTargets: refs(s.Test.CodeCoverageTargets),
			BuildConfiguration:  s.Test.Config,
		}
	}
	if s.Run != nil {
		var exec *TargetReference
		if s.Run.Executable != nil {
			ref := convertTargetReference(*s.Run.Executable, manifestDir)
			exec = &ref
		}
		scheme.Run = &RunAction{
			Executable:               exec,
			BuildConfiguration:       s.Run.Config,
			Arguments:                s.Run.Arguments,
			Environment:              s.Run.Environment,
			DebugDocumentVersioning:  true,
		}
	}
	if s.Profile != nil {
		scheme.Profile = &ProfileAction{BuildConfiguration: s.Profile.Config}
	}
	if s.Analyze != nil {
		scheme.Analyze = &AnalyzeAction{BuildConfiguration: s.Analyze.Config}
	}
	if s.Archive != nil {
		scheme.Archive = &ArchiveAction{BuildConfiguration: s.Archive.Config, RevealArchiveInOrganizer: true}
	}
	return scheme
}

func convertTargetReference(r manifest.TargetReference, manifestDir string) TargetReference {
	projectPath := manifestDir
	if r.ProjectPath != "" {
		projectPath = xcpath.AbsoluteFrom(manifestDir, r.ProjectPath)
	}
	return TargetReference{ProjectPath: projectPath, TargetName: r.TargetName}
}

// convertFileElements resolves a list of manifest.FileElement globs into
// ResolvedFile entries, applying the warning/omit rules of spec.md §4.E:
// a glob matching nothing is warned and dropped; a glob whose root does not
// exist is warned ("No files found at: <pattern>"); a folder reference that
// is not a directory is warned and dropped; a directory passed as a file
// glob is warned ("<p> is a directory, try using: '<p>/**' ...").
func convertFileElements(elements []manifest.FileElement, manifestDir string, svc *services.Services) []ResolvedFile {
	var out []ResolvedFile
	for _, el := range elements {
		if el.Type == "folder" {
			abs := xcpath.AbsoluteFrom(manifestDir, el.Path)
			if !xcpath.Exists(abs) {
				warn(svc, generrors.FolderReferenceMissing(abs).Error())
				continue
			}
			if !xcpath.IsFolder(abs) {
				warn(svc, generrors.FolderReferenceNotDirectory(abs).Error())
				continue
			}
			out = append(out, ResolvedFile{Path: abs, CompilerFlags: el.CompilerFlags, BuildPhase: el.BuildPhase})
			continue
		}

		abs := xcpath.AbsoluteFrom(manifestDir, el.Path)
		if xcpath.IsFolder(abs) {
			warn(svc, generrors.GlobPointsToDirectory(abs).Error())
			continue
		}

		resolvedRoot := filepath.Join(manifestDir, xcpath.NonWildcardPrefix(el.Path))
		if !xcpath.Exists(resolvedRoot) {
			warn(svc, fmt.Sprintf("No files found at: %s", el.Path))
			continue
		}

		matches := xcpath.Glob(manifestDir, el.Path)
		matches = excludeMatches(matches, manifestDir, el.Excludes)
		if len(matches) == 0 {
			warn(svc, generrors.NoFilesMatchGlob(el.Path).Error())
			continue
		}
		for _, match := range matches {
			out = append(out, ResolvedFile{Path: match, CompilerFlags: el.CompilerFlags, BuildPhase: el.BuildPhase})
		}
	}
	return out
}

func excludeMatches(matches []string, manifestDir string, excludes []string) []string {
	if len(excludes) == 0 {
		return matches
	}
	excluded := make(map[string]bool)
	for _, pattern := range excludes {
		for _, m := range xcpath.Glob(manifestDir, pattern) {
			excluded[m] = true
		}
	}
	out := matches[:0:0]
	for _, m := range matches {
		if !excluded[m] {
			out = append(out, m)
		}
	}
	return out
}

func globOrWarn(manifestDir, pattern string, svc *services.Services) []string {
	if pattern == "" {
		return nil
	}
	matches := xcpath.Glob(manifestDir, pattern)
	if len(matches) == 0 {
		warn(svc, generrors.NoFilesMatchGlob(pattern).Error())
	}
	return matches
}

func warn(svc *services.Services, message string) {
	if svc != nil && svc.Reporter != nil {
		svc.Reporter.Warn(message)
	}
}
