// Package descriptor implements the descriptor generator (spec.md §4.I): a
// pure function from a Graph to a filesystem-agnostic snapshot of what the
// external writer must materialise. It never touches disk.
package descriptor

import (
	"path/filepath"
	"sort"

	"github.com/moasq/xcforge/internal/graph"
	"github.com/moasq/xcforge/internal/mapper"
	"github.com/moasq/xcforge/internal/model"
)

// SchemeDescriptor is one scheme, tagged with where it must be written:
// shared schemes go into the project's shared data; user schemes go into a
// per-user directory (spec.md §4.I, §6 "Generation output").
type SchemeDescriptor struct {
	Scheme model.Scheme
	Shared bool
}

// ProjectDescriptor is everything the writer needs to materialise one
// .xcodeproj container.
type ProjectDescriptor struct {
	Path          string
	ContainerPath string
	Project       model.Project
	Schemes       []SchemeDescriptor
	SideEffects   []mapper.SideEffect
}

// WorkspaceDescriptor is everything the writer needs to materialise one
// .xcworkspace container referencing its member projects.
type WorkspaceDescriptor struct {
	Path          string
	ContainerPath string
	Workspace     *model.Workspace
	Projects      []ProjectDescriptor
	Schemes       []SchemeDescriptor
	SideEffects   []mapper.SideEffect
}

// projectFileName returns the project's display file name, falling back to
// its logical name (spec.md §3 Project "file_name (display name distinct
// from logical name)").
func projectFileName(proj model.Project) string {
	if proj.FileName != "" {
		return proj.FileName
	}
	return proj.Name
}

// GenerateProject builds one ProjectDescriptor from a mapped Project and the
// side effects its mapper pipeline produced.
func GenerateProject(proj model.Project, sideEffects []mapper.SideEffect) ProjectDescriptor {
	schemes := make([]SchemeDescriptor, 0, len(proj.Schemes))
	for _, s := range proj.Schemes {
		schemes = append(schemes, SchemeDescriptor{Scheme: s, Shared: s.Shared})
	}
	container := filepath.Join(proj.Path, projectFileName(proj)+".xcodeproj")
	return ProjectDescriptor{
		Path:          proj.Path,
		ContainerPath: container,
		Project:       proj,
		Schemes:       schemes,
		SideEffects:   sideEffects,
	}
}

// GenerateWorkspace builds a WorkspaceDescriptor from the mapped Graph,
// iterating projects in deterministic path order (spec.md §9 open question
// on Dictionary-keyed project map ordering: "this spec requires deterministic
// ordering by path string").
func GenerateWorkspace(g *graph.Graph, projectEffects map[string][]mapper.SideEffect, workspaceEffects []mapper.SideEffect) WorkspaceDescriptor {
	paths := make([]string, 0, len(g.Projects))
	for path := range g.Projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	projects := make([]ProjectDescriptor, 0, len(paths))
	var workspaceSchemes []SchemeDescriptor
	for _, path := range paths {
		projects = append(projects, GenerateProject(*g.Projects[path], projectEffects[path]))
	}

	var wsPath, containerPath string
	if g.Workspace != nil {
		wsPath = g.Workspace.Path
		containerPath = filepath.Join(wsPath, g.Workspace.Name+".xcworkspace")
		for _, s := range g.Workspace.Schemes {
			workspaceSchemes = append(workspaceSchemes, SchemeDescriptor{Scheme: s, Shared: s.Shared})
		}
	}

	return WorkspaceDescriptor{
		Path:          wsPath,
		ContainerPath: containerPath,
		Workspace:     g.Workspace,
		Projects:      projects,
		Schemes:       workspaceSchemes,
		SideEffects:   workspaceEffects,
	}
}
