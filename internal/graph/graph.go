// Package graph builds the cross-project dependency graph (spec.md §4.F):
// target nodes keyed by (project_path, target_name), resolved dependency
// edges, and the pre-compiled/SDK/package-product nodes a target can link
// against without another target existing for it.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moasq/xcforge/internal/generrors"
	"github.com/moasq/xcforge/internal/model"
)

// TargetKey identifies one target node (spec.md §3 Graph "target_nodes:
// keyed by (project_path, target_name)").
type TargetKey struct {
	ProjectPath string
	TargetName  string
}

// PreCompiledNode is an existing framework/library/xcframework on disk,
// linked directly rather than built from a target.
type PreCompiledNode struct {
	Path string
}

// SDKNode is a system SDK or library dependency.
type SDKNode struct {
	Name   string
	Status model.SDKStatus
}

// PackageProductNode is an external package product linked by name.
type PackageProductNode struct {
	Name string
}

// Graph is the resolved cross-project dependency graph.
type Graph struct {
	Workspace *model.Workspace
	Projects  map[string]*model.Project

	TargetNodes map[TargetKey]model.Target

	// Dependencies holds target→target edges only, in manifest insertion
	// order (spec.md §4.F "Order of enumerating dependencies is insertion
	// order from the manifest").
	Dependencies map[TargetKey][]TargetKey

	PreCompiledNodes map[string]PreCompiledNode
	SDKNodes         map[string]SDKNode
	PackageNodes     map[string]PackageProductNode
	CocoapodsNodes   map[string]PreCompiledNode
}

// linkableProducts is the set of product kinds that participate in
// linkable_dependencies transitive closure (spec.md §4.F).
var linkableProducts = map[model.Product]bool{
	model.ProductFramework:       true,
	model.ProductStaticFramework: true,
	model.ProductDynamicLibrary:  true,
	model.ProductStaticLibrary:   true,
}

// Build constructs a Graph from a workspace and its resolved projects,
// resolving every target's dependency list to a node and detecting cycles
// over the target→target subgraph (spec.md §4.F).
func Build(ws *model.Workspace, projects map[string]*model.Project) (*Graph, error) {
	g := &Graph{
		Workspace:        ws,
		Projects:         projects,
		TargetNodes:      make(map[TargetKey]model.Target),
		Dependencies:     make(map[TargetKey][]TargetKey),
		PreCompiledNodes: make(map[string]PreCompiledNode),
		SDKNodes:         make(map[string]SDKNode),
		PackageNodes:     make(map[string]PackageProductNode),
		CocoapodsNodes:   make(map[string]PreCompiledNode),
	}

	for path, proj := range projects {
		for _, t := range proj.Targets {
			g.TargetNodes[TargetKey{ProjectPath: path, TargetName: t.Name}] = t
		}
	}

	for _, key := range g.SortedTargetKeys() {
		target := g.TargetNodes[key]
		for _, dep := range target.Dependencies {
			switch dep.Kind {
			case model.DependencyTarget:
				depKey := TargetKey{ProjectPath: key.ProjectPath, TargetName: dep.Name}
				if _, ok := g.TargetNodes[depKey]; !ok {
					return nil, generrors.New(generrors.KindMissingFile, dep.Name)
				}
				g.Dependencies[key] = append(g.Dependencies[key], depKey)
			case model.DependencyProject:
				depKey := TargetKey{ProjectPath: dep.ProjectPath, TargetName: dep.TargetName}
				if _, ok := g.TargetNodes[depKey]; !ok {
					return nil, generrors.New(generrors.KindMissingFile, dep.TargetName)
				}
				g.Dependencies[key] = append(g.Dependencies[key], depKey)
			case model.DependencyFramework, model.DependencyXCFramework, model.DependencyLibrary:
				g.PreCompiledNodes[dep.Path] = PreCompiledNode{Path: dep.Path}
			case model.DependencyCocoapods:
				g.CocoapodsNodes[dep.Path] = PreCompiledNode{Path: dep.Path}
			case model.DependencySDK:
				g.SDKNodes[dep.SDKName] = SDKNode{Name: dep.SDKName, Status: dep.SDKStatus}
			case model.DependencyPackageProduct:
				g.PackageNodes[dep.Name] = PackageProductNode{Name: dep.Name}
			}
		}
	}

	if cyclePath, ok := detectCycle(g); ok {
		return nil, generrors.CyclicDependency(cyclePath)
	}

	return g, nil
}

type color int

const (
	white color = iota
	gray
	black
)

// detectCycle runs DFS with three-coloring over the target→target subgraph
// (spec.md §4.F "Detects cycles by DFS with coloring").
func detectCycle(g *Graph) (string, bool) {
	colors := make(map[TargetKey]color, len(g.TargetNodes))
	keys := g.SortedTargetKeys()

	var path string
	var visit func(key TargetKey) bool
	visit = func(key TargetKey) bool {
		colors[key] = gray
		for _, dep := range g.Dependencies[key] {
			switch colors[dep] {
			case gray:
				path = key.TargetName + " -> " + dep.TargetName
				return true
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		colors[key] = black
		return false
	}

	for _, key := range keys {
		if colors[key] == white {
			if visit(key) {
				return path, true
			}
		}
	}
	return "", false
}

// TargetDependencies returns the direct dependency edges of one target, in
// manifest insertion order.
func (g *Graph) TargetDependencies(key TargetKey) []TargetKey {
	return g.Dependencies[key]
}

// SortedTargetKeys returns every target node key in deterministic order,
// sorted by project path then target name.
func (g *Graph) SortedTargetKeys() []TargetKey {
	keys := make([]TargetKey, 0, len(g.TargetNodes))
	for key := range g.TargetNodes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProjectPath != keys[j].ProjectPath {
			return keys[i].ProjectPath < keys[j].ProjectPath
		}
		return keys[i].TargetName < keys[j].TargetName
	})
	return keys
}

// Describe renders every target node and its dependency edges in
// deterministic order, for the describe CLI command and the
// describe_graph MCP tool.
func (g *Graph) Describe() string {
	keys := g.SortedTargetKeys()

	var b strings.Builder
	fmt.Fprintf(&b, "%d target(s)\n", len(keys))
	for _, key := range keys {
		target := g.TargetNodes[key]
		fmt.Fprintf(&b, "  %s::%s (%s, %s)\n", key.ProjectPath, key.TargetName, target.Platform, target.Product)
		for _, d := range g.TargetDependencies(key) {
			fmt.Fprintf(&b, "    -> %s::%s\n", d.ProjectPath, d.TargetName)
		}
	}
	return b.String()
}

// LinkableDependencies returns the transitive closure of key's dependencies,
// filtered to targets whose product is a linkable kind (spec.md §4.F).
func (g *Graph) LinkableDependencies(key TargetKey) []TargetKey {
	visited := make(map[TargetKey]bool)
	var order []TargetKey

	var visit func(TargetKey)
	visit = func(k TargetKey) {
		for _, dep := range g.Dependencies[k] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if target, ok := g.TargetNodes[dep]; ok && linkableProducts[target.Product] {
				order = append(order, dep)
			}
			visit(dep)
		}
	}
	visit(key)
	return order
}
