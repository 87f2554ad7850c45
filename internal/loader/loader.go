// Package loader implements the recursive manifest loader (spec.md §4.C): it
// follows project(_, path) and external(name) dependency edges outward from
// one or more roots, loading every transitively referenced Project.yml
// exactly once.
package loader

import (
	"path/filepath"

	"github.com/moasq/xcforge/internal/manifest"
	"github.com/moasq/xcforge/internal/xcpath"
)

// ExternalResolver looks up an external(name) dependency against a resolved
// package workspace state (spec.md §4.D DependenciesGraph.external_dependencies).
// An xcframework external dependency contributes nothing to the project
// traversal (ok=false); a source external dependency contributes the local
// project directory it was checked out to (ok=true).
type ExternalResolver interface {
	ResolveExternal(name string) (projectDir string, ok bool)
}

// LoadedProjects is the {path -> project_manifest} map the recursive loader
// yields. Ordering is not meaningful (spec.md §4.C: "callers must not rely on
// ordering beyond all referenced projects present").
type LoadedProjects struct {
	Projects map[string]*manifest.Project
}

// LoadProject walks outward from rootDir, loading every project transitively
// reachable via project(_, path) and source-kind external(name) dependencies.
// The path-keyed cache guarantees each directory is loaded at most once; cycles are
// tolerated by the cache short-circuit (spec.md §4.C, §9 "Cyclic manifest
// references").
func LoadProject(rootDir string, resolver ExternalResolver) (*LoadedProjects, error) {
	cache := make(map[string]*manifest.Project)
	stack := []string{filepath.Clean(rootDir)}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, loaded := cache[dir]; loaded {
			continue
		}

		proj, err := manifest.LoadProject(filepath.Join(dir, manifest.ProjectFileName))
		if err != nil {
			return nil, err
		}
		cache[dir] = proj

		for _, t := range proj.Targets {
			for _, dep := range t.Dependencies {
				switch dep.Kind {
				case manifest.DependencyProject:
					stack = append(stack, xcpath.AbsoluteFrom(dir, dep.ProjectPath))
				case manifest.DependencyExternal:
					if resolver == nil {
						continue
					}
					if projectDir, ok := resolver.ResolveExternal(dep.Name); ok {
						stack = append(stack, filepath.Clean(projectDir))
					}
				}
			}
		}
	}

	return &LoadedProjects{Projects: cache}, nil
}

// LoadWorkspace loads the Workspace.yml at rootDir, expands its projects list
// against rootDir (each entry may be a literal path or a glob), filters
// matches down to directories that contain a Project.yml, and recursively
// loads each one as a root (spec.md §4.C).
func LoadWorkspace(rootDir string, resolver ExternalResolver) (*manifest.Workspace, *LoadedProjects, error) {
	ws, err := manifest.LoadWorkspace(filepath.Join(rootDir, manifest.WorkspaceFileName))
	if err != nil {
		return nil, nil, err
	}

	var roots []string
	seen := make(map[string]bool)
	for _, entry := range ws.Projects {
		for _, candidate := range expandProjectEntry(rootDir, entry) {
			if !manifest.ManifestsAt(candidate)[manifest.KindProject] {
				continue
			}
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			roots = append(roots, candidate)
		}
	}

	merged := &LoadedProjects{Projects: make(map[string]*manifest.Project)}
	for _, root := range roots {
		loaded, err := LoadProject(root, resolver)
		if err != nil {
			return nil, nil, err
		}
		for path, proj := range loaded.Projects {
			merged.Projects[path] = proj
		}
	}

	return ws, merged, nil
}

// expandProjectEntry resolves one Workspace.yml `projects` entry: a path that
// exists is returned as is (no extension is trimmed); anything else is
// expanded as a glob pattern against rootDir.
func expandProjectEntry(rootDir, entry string) []string {
	abs := xcpath.AbsoluteFrom(rootDir, entry)
	if xcpath.Exists(abs) {
		return []string{abs}
	}
	matches := xcpath.Glob(rootDir, entry)
	if len(matches) == 0 {
		return nil
	}
	return matches
}
