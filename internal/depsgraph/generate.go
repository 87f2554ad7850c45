package depsgraph

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moasq/xcforge/internal/generrors"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/xcpath"
)

// canonicalPlatformOrder breaks platform-intersection ties deterministically:
// iOS is preferred when present, otherwise the first remaining element in
// this order wins (spec.md §4.D step 4 "platform").
var canonicalPlatformOrder = []model.Platform{
	model.PlatformIOS, model.PlatformMacOS, model.PlatformTVOS, model.PlatformWatchOS,
}

// Input configures one run of the external-dependencies graph generator.
type Input struct {
	StateFile   string // path to workspace-state.json
	CheckoutsDir string
	ArtifactsDir string

	// ProductTypeOverrides lets the caller pin a specific target's product
	// kind instead of deriving it from the containing SwiftPM product.
	ProductTypeOverrides map[string]model.Product

	ConfiguredPlatforms []model.Platform

	Loader PackageInfoLoader
}

// Graph is the generator's output (spec.md §4.D "DependenciesGraph"):
// ExternalDependencies maps a product name to the dependency edges an
// external(name) reference against it expands to; ExternalProjects holds the
// synthetic Project built for each resolved package, keyed by its directory.
type Graph struct {
	ExternalDependencies map[string][]model.Dependency
	ExternalProjects     map[string]*model.Project
}

// ResolveExternal implements loader.ExternalResolver: an external(name)
// dependency whose expansion contains a project(...) edge needs that
// project's directory pushed onto the recursive loader's work stack
// (a "source" dependency, spec.md §4.C); one that resolves only to
// xcframework(...) edges contributes nothing further to load.
func (g *Graph) ResolveExternal(name string) (string, bool) {
	for _, dep := range g.ExternalDependencies[name] {
		if dep.Kind == model.DependencyProject {
			return dep.ProjectPath, true
		}
	}
	return "", false
}

// Generate runs the full algorithm of spec.md §4.D.
func Generate(in Input) (*Graph, error) {
	resolved, err := decodeWorkspaceState(in.StateFile, in.CheckoutsDir)
	if err != nil {
		return nil, err
	}

	infos := make(map[string]*PackageInfo, len(resolved))
	dirs := make(map[string]string, len(resolved))
	for _, pkg := range resolved {
		info, err := in.Loader.Load(pkg.Dir)
		if err != nil {
			return nil, err
		}
		infos[pkg.Identity] = info
		dirs[pkg.Identity] = pkg.Dir
	}

	productToPackage := make(map[string]string)
	targetToFramework := make(map[string]string)
	for _, pkg := range resolved {
		identity := pkg.Identity
		info := infos[identity]
		for _, product := range info.Products {
			productToPackage[product.Name] = identity // last writer wins, spec.md §9 open question
		}
		for _, target := range info.Targets {
			if target.Kind == TargetKindBinary {
				targetToFramework[target.Name] = filepath.Join(in.ArtifactsDir, identity, target.Name+".xcframework")
			}
		}
	}

	graph := &Graph{
		ExternalDependencies: make(map[string][]model.Dependency),
		ExternalProjects:     make(map[string]*model.Project),
	}

	identities := make([]string, 0, len(infos))
	for identity := range infos {
		identities = append(identities, identity)
	}
	sort.Strings(identities)

	for _, identity := range identities {
		info := infos[identity]
		dir := dirs[identity]
		proj, err := buildSyntheticProject(identity, dir, info, in, productToPackage, targetToFramework)
		if err != nil {
			return nil, err
		}
		graph.ExternalProjects[dir] = proj

		targetNames := make(map[string]bool, len(proj.Targets))
		for _, target := range proj.Targets {
			targetNames[target.Name] = true
		}
		for _, product := range info.Products {
			for _, targetName := range product.Targets {
				if !targetNames[targetName] {
					continue
				}
				dep := model.Dependency{Kind: model.DependencyProject, ProjectPath: dir, TargetName: targetName}
				graph.ExternalDependencies[product.Name] = append(graph.ExternalDependencies[product.Name], dep)
			}
		}
	}

	return graph, nil
}

func buildSyntheticProject(identity, dir string, info *PackageInfo, in Input, productToPackage, targetToFramework map[string]string) (*model.Project, error) {
	productByTarget := make(map[string]PackageProduct)
	for _, product := range info.Products {
		for _, targetName := range product.Targets {
			if _, exists := productByTarget[targetName]; !exists {
				productByTarget[targetName] = product
			}
		}
	}
	targetsByName := make(map[string]PackageTarget, len(info.Targets))
	for _, t := range info.Targets {
		targetsByName[t.Name] = t
	}

	var targets []model.Target
	for _, t := range info.Targets {
		if t.Kind != TargetKindRegular {
			continue
		}

		product, known := productByTarget[t.Name]
		if known {
			switch product.Kind {
			case ProductKindExecutable, ProductKindPlugin, ProductKindTest:
				continue
			}
		}

		platform, deploymentTarget, err := choosePlatform(t.Name, identity, info.Platforms, in.ConfiguredPlatforms)
		if err != nil {
			return nil, err
		}

		productKind := derivedProductKind(product, known, in.ProductTypeOverrides[t.Name])

		sources := resolveTargetSources(dir, t)
		resources := resolveTargetResources(dir, t)

		deps, settings, err := resolveTargetDependencies(t, identity, targetsByName, productToPackage, targetToFramework)
		if err != nil {
			return nil, err
		}

		targets = append(targets, model.Target{
			Name:             t.Name,
			Platform:         platform,
			Product:          productKind,
			DeploymentTarget: deploymentTarget,
			Sources:          sources,
			Resources:        resources,
			Dependencies:     deps,
			Settings:         model.Settings{Base: settings},
		})
	}

	return &model.Project{
		Path:    dir,
		Name:    info.Name,
		Targets: targets,
	}, nil
}

// choosePlatform intersects the caller's configured platforms with the
// package's declared platforms (package declaring none means "all"), then
// picks iOS if present, else the first canonical-order survivor.
func choosePlatform(targetName, packageIdentity string, declared []PackagePlatform, configured []model.Platform) (model.Platform, string, error) {
	declaredSet := make(map[model.Platform]string, len(declared))
	for _, p := range declared {
		declaredSet[p.Platform] = p.DeploymentTarget
	}

	configuredList := configured
	if len(configuredList) == 0 {
		configuredList = canonicalPlatformOrder
	}
	configuredSet := make(map[model.Platform]bool, len(configuredList))
	for _, p := range configuredList {
		configuredSet[p] = true
	}

	var intersection []model.Platform
	for _, p := range canonicalPlatformOrder {
		if !configuredSet[p] {
			continue
		}
		if _, ok := declaredSet[p]; ok || len(declaredSet) == 0 {
			intersection = append(intersection, p)
		}
	}

	if len(intersection) == 0 {
		configuredNames := make([]string, 0, len(configuredList))
		for _, p := range configuredList {
			configuredNames = append(configuredNames, string(p))
		}
		return "", "", generrors.NoSupportedPlatforms(targetName, configuredNames, packageIdentity)
	}

	chosen := intersection[0]
	for _, p := range intersection {
		if p == model.PlatformIOS {
			chosen = p
			break
		}
	}
	return chosen, declaredSet[chosen], nil
}

func derivedProductKind(product PackageProduct, known bool, override model.Product) model.Product {
	if override != "" {
		return override
	}
	if !known {
		return model.ProductStaticFramework
	}
	switch product.Kind {
	case ProductKindLibraryStatic, ProductKindLibraryAutomatic:
		return model.ProductStaticFramework
	case ProductKindLibraryDynamic:
		return model.ProductFramework
	default:
		return model.ProductStaticFramework
	}
}

func resolveTargetSources(dir string, t PackageTarget) []model.ResolvedFile {
	if len(t.ExplicitSourcePaths) > 0 {
		var out []model.ResolvedFile
		for _, p := range t.ExplicitSourcePaths {
			out = append(out, expandPackageGlob(dir, p, t.ExplicitExcludes)...)
		}
		return out
	}
	pattern := strings.TrimSuffix(t.SourcesPath, "/") + "/**"
	return expandPackageGlob(dir, pattern, t.ExplicitExcludes)
}

func resolveTargetResources(dir string, t PackageTarget) []model.ResolvedFile {
	var out []model.ResolvedFile
	for _, r := range t.Resources {
		pattern := r
		if filepath.Ext(r) == "" {
			pattern = strings.TrimSuffix(r, "/") + "/**"
		}
		out = append(out, expandPackageGlob(dir, pattern, nil)...)
	}
	return out
}

func expandPackageGlob(dir, pattern string, excludes []string) []model.ResolvedFile {
	matches := xcpath.Glob(dir, pattern)
	if len(excludes) > 0 {
		excluded := make(map[string]bool)
		for _, ex := range excludes {
			for _, m := range xcpath.Glob(dir, ex) {
				excluded[m] = true
			}
		}
		filtered := matches[:0:0]
		for _, m := range matches {
			if !excluded[m] {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}
	out := make([]model.ResolvedFile, 0, len(matches))
	for _, m := range matches {
		out = append(out, model.ResolvedFile{Path: m})
	}
	return out
}

// resolveTargetDependencies expands a package target's dependency list into
// model.Dependency edges plus an accumulated settings dictionary, following
// spec.md §4.D step 4's three dependency rules and the settings grouping table.
func resolveTargetDependencies(t PackageTarget, currentPackage string, targetsByName map[string]PackageTarget, productToPackage, targetToFramework map[string]string) ([]model.Dependency, map[string]any, error) {
	var deps []model.Dependency

	for _, d := range t.Dependencies {
		switch d.Kind {
		case PkgDepTarget:
			deps = append(deps, targetKindDependency(d.Name, targetToFramework))

		case PkgDepProduct:
			pkg := d.ProductPackage
			if pkg == "" {
				pkg = currentPackage
			}
			if owner, ok := productToPackage[d.Name]; !ok || owner != pkg {
				return nil, nil, generrors.UnknownProductDependency(d.Name, pkg)
			}
			deps = append(deps, model.Dependency{Kind: model.DependencyProject, ProjectPath: "../" + pkg, TargetName: d.Name})

		case PkgDepByName:
			if _, inPackage := targetsByName[d.Name]; inPackage {
				deps = append(deps, targetKindDependency(d.Name, targetToFramework))
				continue
			}
			if pkg, ok := productToPackage[d.Name]; ok {
				deps = append(deps, model.Dependency{Kind: model.DependencyProject, ProjectPath: "../" + pkg, TargetName: d.Name})
				continue
			}
			return nil, nil, generrors.UnknownByNameDependency(d.Name)
		}
	}

	settings, sdkDeps, err := groupSettings(t.Settings)
	if err != nil {
		return nil, nil, err
	}
	deps = append(deps, sdkDeps...)

	return deps, settings, nil
}

func targetKindDependency(name string, targetToFramework map[string]string) model.Dependency {
	if path, ok := targetToFramework[name]; ok {
		return model.Dependency{Kind: model.DependencyXCFramework, Path: path}
	}
	return model.Dependency{Kind: model.DependencyTarget, Name: name}
}

// groupSettings implements spec.md §4.D's settings-grouping table: compiler
// settings accumulate into the usual xcconfig-style keys; linker settings
// become sdk(...) dependency edges instead of settings entries.
func groupSettings(pairs []SettingPair) (map[string]any, []model.Dependency, error) {
	headerSearchPaths := []string{}
	defines := map[string]string{}
	otherCFlags := []string{}
	otherCxxFlags := []string{}
	swiftConditions := []string{}
	otherSwiftFlags := []string{}
	var sdkDeps []model.Dependency

	for _, pair := range pairs {
		switch {
		case (pair.Tool == "c" || pair.Tool == "cxx") && pair.Name == "header_search_path":
			headerSearchPaths = append(headerSearchPaths, pair.Value)
		case (pair.Tool == "c" || pair.Tool == "cxx") && pair.Name == "define":
			name, value := splitDefine(pair.Value)
			defines[name] = value
		case pair.Tool == "c" && pair.Name == "unsafe_flags":
			otherCFlags = append(otherCFlags, pair.Value)
		case pair.Tool == "cxx" && pair.Name == "unsafe_flags":
			otherCxxFlags = append(otherCxxFlags, pair.Value)
		case pair.Tool == "swift" && pair.Name == "define":
			swiftConditions = append(swiftConditions, pair.Value)
		case pair.Tool == "swift" && pair.Name == "unsafe_flags":
			otherSwiftFlags = append(otherSwiftFlags, pair.Value)
		case pair.Tool == "linker" && pair.Name == "linked_framework":
			sdkDeps = append(sdkDeps, model.Dependency{Kind: model.DependencySDK, SDKName: pair.Value + ".framework", SDKStatus: model.SDKRequired})
		case pair.Tool == "linker" && pair.Name == "linked_library":
			sdkDeps = append(sdkDeps, model.Dependency{Kind: model.DependencySDK, SDKName: pair.Value + ".tbd", SDKStatus: model.SDKRequired})
		default:
			return nil, nil, generrors.UnsupportedSetting(pair.Tool, pair.Name)
		}
	}

	settings := map[string]any{}
	if len(headerSearchPaths) > 0 {
		settings["HEADER_SEARCH_PATHS"] = headerSearchPaths
	}
	if len(defines) > 0 {
		keys := make([]string, 0, len(defines))
		for k := range defines {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		formatted := make([]string, 0, len(keys))
		for _, k := range keys {
			formatted = append(formatted, fmt.Sprintf("%s=%s", k, defines[k]))
		}
		settings["GCC_PREPROCESSOR_DEFINITIONS"] = formatted
	}
	if len(otherCFlags) > 0 {
		settings["OTHER_CFLAGS"] = otherCFlags
	}
	if len(otherCxxFlags) > 0 {
		settings["OTHER_CPLUSPLUSFLAGS"] = otherCxxFlags
	}
	if len(swiftConditions) > 0 {
		settings["SWIFT_ACTIVE_COMPILATION_CONDITIONS"] = swiftConditions
	}
	if len(otherSwiftFlags) > 0 {
		settings["OTHER_SWIFT_FLAGS"] = otherSwiftFlags
	}

	return settings, sdkDeps, nil
}

func splitDefine(raw string) (name, value string) {
	if idx := strings.IndexByte(raw, '='); idx >= 0 {
		return raw[:idx], raw[idx+1:]
	}
	return raw, "1"
}
