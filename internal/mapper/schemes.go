package mapper

import (
	"sort"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// AutogeneratedSchemesProjectMapper appends one shared scheme per target that
// has no user-defined scheme of the same name (spec.md §4.G step 1). The
// caller skips this mapper entirely when disable_autogenerated_schemes is set.
type AutogeneratedSchemesProjectMapper struct{}

func (AutogeneratedSchemesProjectMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	userSchemes := make(map[string]bool, len(proj.Schemes))
	for _, s := range proj.Schemes {
		userSchemes[s.Name] = true
	}

	defaultDebug := proj.DefaultDebugBuildConfigurationName
	if defaultDebug == "" {
		defaultDebug = "Debug"
	}

	for _, target := range proj.Targets {
		if userSchemes[target.Name] {
			continue
		}
		proj.Schemes = append(proj.Schemes, autoScheme(proj, target, cfg, defaultDebug))
	}

	return proj, nil, nil
}

func autoScheme(proj model.Project, target model.Target, cfg *config.Config, defaultDebug string) model.Scheme {
	ref := model.TargetReference{ProjectPath: proj.Path, TargetName: target.Name}

	buildTargets := []model.TargetReference{ref}
	if target.Product == model.ProductAppExtension || target.Product == model.ProductMessagesExtension {
		if host, ok := hostAppTarget(proj, target.Name); ok {
			buildTargets = append(buildTargets, model.TargetReference{ProjectPath: proj.Path, TargetName: host.Name})
		}
	}
	sortRefsByName(buildTargets)

	var testTargets []model.TargetReference
	if target.Product.IsTestBundle() {
		testTargets = []model.TargetReference{ref}
	} else {
		for _, dependent := range testBundleTargetsDependingOn(proj, target.Name) {
			testTargets = append(testTargets, model.TargetReference{ProjectPath: proj.Path, TargetName: dependent.Name})
		}
		sortRefsByName(testTargets)
	}

	var codeCoverageTargets []model.TargetReference
	if cfg.EnableCodeCoverage {
		codeCoverageTargets = []model.TargetReference{ref}
	}

	diagnostics := model.DiagnosticsOptions{MainThreadChecker: true}

	scheme := model.Scheme{
		Name:   target.Name,
		Shared: true,
		Build:  &model.BuildAction{Targets: buildTargets},
		Test: &model.TestAction{
			Targets:             testTargets,
			Coverage:            cfg.EnableCodeCoverage,
			CodeCoverageTargets: codeCoverageTargets,
			BuildConfiguration:  defaultDebug,
			Diagnostics:         diagnostics,
		},
	}

	executable, macroExpansion := runnableReference(proj, target, ref)
	scheme.Run = &model.RunAction{
		Executable:              executable,
		MacroExpansion:          macroExpansion,
		BuildConfiguration:      defaultDebug,
		Arguments:               nonEmptyStrings(target.LaunchArguments),
		Environment:             nonEmptyMap(target.Environment),
		Diagnostics:             diagnostics,
		DebugDocumentVersioning: true,
	}

	scheme.Profile = &model.ProfileAction{
		BuildConfiguration:                  "Release",
		ShouldUseLaunchSchemeArgsEnv:        true,
		EnableTestabilityWhenProfilingTests: macroExpansion != nil,
	}
	scheme.Analyze = &model.AnalyzeAction{BuildConfiguration: defaultDebug}
	scheme.Archive = &model.ArchiveAction{BuildConfiguration: "Release", RevealArchiveInOrganizer: true}

	return scheme
}

// runnableReference picks the scheme's run/profile target: the target itself
// as a runnable executable for runnable products, or the same data placed in
// macro_expansion for non-runnable products (spec.md §6 "For non-runnable
// targets the same data is placed in macro_expansion") — the target itself by
// default, overridden to the host app for extensions and the host watch app
// for watch2_extension.
func runnableReference(proj model.Project, target model.Target, ref model.TargetReference) (executable, macroExpansion *model.TargetReference) {
	if target.Product.IsRunnable() {
		return &ref, nil
	}
	switch target.Product {
	case model.ProductAppExtension, model.ProductMessagesExtension:
		if host, ok := hostAppTarget(proj, target.Name); ok {
			hostRef := model.TargetReference{ProjectPath: proj.Path, TargetName: host.Name}
			return nil, &hostRef
		}
	case model.ProductWatch2Extension:
		if host, ok := hostWatchAppTarget(proj, target.Name); ok {
			hostRef := model.TargetReference{ProjectPath: proj.Path, TargetName: host.Name}
			return nil, &hostRef
		}
	}
	return nil, &ref
}

func hostAppTarget(proj model.Project, extensionName string) (model.Target, bool) {
	for _, t := range proj.Targets {
		if !t.Product.CanHostExtension() {
			continue
		}
		if dependsOnTarget(t, extensionName) {
			return t, true
		}
	}
	return model.Target{}, false
}

func hostWatchAppTarget(proj model.Project, extensionName string) (model.Target, bool) {
	for _, t := range proj.Targets {
		if t.Product != model.ProductWatch2App {
			continue
		}
		if dependsOnTarget(t, extensionName) {
			return t, true
		}
	}
	return model.Target{}, false
}

func dependsOnTarget(t model.Target, name string) bool {
	for _, dep := range t.Dependencies {
		if dep.Kind == model.DependencyTarget && dep.Name == name {
			return true
		}
	}
	return false
}

func testBundleTargetsDependingOn(proj model.Project, name string) []model.Target {
	var out []model.Target
	for _, t := range proj.Targets {
		if !t.Product.IsTestBundle() {
			continue
		}
		if dependsOnTarget(t, name) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortRefsByName(refs []model.TargetReference) {
	sort.Slice(refs, func(i, j int) bool { return refs[i].TargetName < refs[j].TargetName })
}

func nonEmptyStrings(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return v
}

func nonEmptyMap(v map[string]string) map[string]string {
	if len(v) == 0 {
		return nil
	}
	return v
}
