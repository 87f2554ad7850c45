// Package generate is the top-level orchestrator: it wires the recursive
// loader, the manifest→model converter, the external-dependencies graph
// generator, the cross-project graph builder, the mapper pipelines, and the
// descriptor generator into the single data flow spec.md §2 describes —
// "user path → B/C (manifests) → E (models) → F (graph) → G+H (mapped
// graph) → I (descriptors) → external writer". Nothing here touches disk
// beyond reading manifests and package state; applying side effects is the
// external writer's job (spec.md §1 "Out of scope").
package generate

import (
	"path/filepath"
	"sort"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/depsgraph"
	"github.com/moasq/xcforge/internal/descriptor"
	"github.com/moasq/xcforge/internal/generrors"
	"github.com/moasq/xcforge/internal/graph"
	"github.com/moasq/xcforge/internal/loader"
	"github.com/moasq/xcforge/internal/manifest"
	"github.com/moasq/xcforge/internal/mapper"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// Options configures one generation run.
type Options struct {
	// ProjectOnly generates a single Project.yml directory rather than
	// discovering and resolving a Workspace.yml (spec.md §4.C: a root
	// directory may contain a Project.yml with no enclosing workspace).
	ProjectOnly bool

	DisabledPlatforms map[model.Platform]bool

	// Dependencies configures the external-dependencies graph generator
	// (spec.md §4.D). Nil means the run has no third-party package state to
	// resolve, which is the common case for a plain Project.yml/Workspace.yml
	// pair with no Swift packages.
	Dependencies *depsgraph.Input

	// Cache backs the graph mapper pipeline's cache-hit pruning
	// (spec.md §4.H). Nil disables pruning.
	Cache mapper.CacheLookup

	// SigningDirectoryName overrides the per-project signing directory name
	// consumed by mapper.SigningMapper. Empty uses its "signing" default.
	SigningDirectoryName string

	// DisableAutogeneratedSchemes forces auto-scheme suppression regardless
	// of what a discovered Config.yml declares; set by the generate command's
	// --disable-autogenerated-schemes flag and the generate_workspace MCP
	// tool's disable_autoschemes input.
	DisableAutogeneratedSchemes bool
}

// Result is everything a caller (CLI command or MCP tool) needs to report a
// completed run and hand off to an external writer.
type Result struct {
	Workspace *descriptor.WorkspaceDescriptor
	Project   *descriptor.ProjectDescriptor
	Graph     *graph.Graph
	Summary   services.Summary
}

// Run executes the full pipeline against the manifest(s) rooted at path.
func Run(path string, opts Options, svc *services.Services) (*Result, error) {
	if svc == nil {
		svc = services.Default()
	}
	path = filepath.Clean(path)

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if opts.DisableAutogeneratedSchemes {
		cfg.DisableAutogeneratedSchemes = true
	}

	g, err := BuildGraph(path, opts, svc)
	if err != nil {
		return nil, err
	}

	if opts.ProjectOnly {
		return runProjectOnly(path, g, cfg, opts, svc)
	}
	return runWorkspace(g, cfg, opts, svc)
}

// BuildGraph runs the loader, converter, and cross-project graph builder
// without the mapper pipelines — the subset the describe_graph and
// validate_manifest MCP tools need, since they inspect structure rather
// than produce a writable descriptor.
func BuildGraph(path string, opts Options, svc *services.Services) (*graph.Graph, error) {
	if svc == nil {
		svc = services.Default()
	}
	path = filepath.Clean(path)

	depGraph, err := resolveDependencies(opts.Dependencies)
	if err != nil {
		return nil, err
	}
	convertOpts := model.ConvertOptions{DisabledPlatforms: opts.DisabledPlatforms}

	if opts.ProjectOnly {
		loaded, err := loader.LoadProject(path, depGraph)
		if err != nil {
			return nil, err
		}
		projects, err := convertAll(loaded.Projects, convertOpts, depGraph, svc)
		if err != nil {
			return nil, err
		}
		return graph.Build(nil, projects)
	}

	wsManifest, loaded, err := loader.LoadWorkspace(path, depGraph)
	if err != nil {
		return nil, err
	}
	projects, err := convertAll(loaded.Projects, convertOpts, depGraph, svc)
	if err != nil {
		return nil, err
	}
	projectPaths := make([]string, 0, len(projects))
	for p := range projects {
		projectPaths = append(projectPaths, p)
	}
	sort.Strings(projectPaths)
	ws := model.ConvertWorkspace(wsManifest, path, projectPaths, svc)
	return graph.Build(ws, projects)
}

// Validate loads and converts every manifest reachable from path and builds
// the cross-project graph, surfacing fatal errors and (via a
// services.CollectingReporter) recoverable warnings, without running any
// mapper or producing a descriptor.
func Validate(path string, opts Options, svc *services.Services) ([]string, error) {
	reporter := &services.CollectingReporter{}
	if svc == nil {
		svc = services.Default()
	}
	validating := &services.Services{Reporter: reporter, UserName: svc.UserName}
	_, err := BuildGraph(path, opts, validating)
	return reporter.Warnings, err
}

func loadConfig(path string) (*config.Config, error) {
	if !manifest.ManifestsAt(path)[manifest.KindConfig] {
		return config.Default(), nil
	}
	m, err := manifest.LoadConfig(filepath.Join(path, manifest.ConfigFileName))
	if err != nil {
		return nil, err
	}
	return config.FromManifest(m), nil
}

func resolveDependencies(in *depsgraph.Input) (*depsgraph.Graph, error) {
	if in == nil {
		return &depsgraph.Graph{}, nil
	}
	return depsgraph.Generate(*in)
}

// runProjectOnly maps and describes a single Project.yml directory with no
// enclosing workspace (spec.md §4.C root-without-workspace case). g is
// already built by BuildGraph.
func runProjectOnly(path string, g *graph.Graph, cfg *config.Config, opts Options, svc *services.Services) (*Result, error) {
	summary := services.Summary{}
	projectEffects, err := mapProjects(g, cfg, opts, svc, &summary)
	if err != nil {
		return nil, err
	}

	g, graphEffects, err := graphPipeline(opts).Run(g, cfg, svc)
	if err != nil {
		return nil, err
	}
	summary.SideEffect += len(graphEffects)

	rootProj, ok := g.Projects[path]
	if !ok {
		return nil, generrors.ManifestNotFound(path)
	}
	desc := descriptor.GenerateProject(*rootProj, append(projectEffects[path], graphEffects...))
	summary.Projects = 1

	if cr, ok := svc.Reporter.(*services.CollectingReporter); ok {
		summary.Warnings = cr.Warnings
	}

	return &Result{Project: &desc, Graph: g, Summary: summary}, nil
}

// runWorkspace maps and describes a Workspace.yml and every project it
// transitively references (spec.md §4.C/§4.F/§4.I). g is already built by
// BuildGraph.
func runWorkspace(g *graph.Graph, cfg *config.Config, opts Options, svc *services.Services) (*Result, error) {
	summary := services.Summary{}
	projectEffects, err := mapProjects(g, cfg, opts, svc, &summary)
	if err != nil {
		return nil, err
	}

	g, graphEffects, err := graphPipeline(opts).Run(g, cfg, svc)
	if err != nil {
		return nil, err
	}
	summary.SideEffect += len(graphEffects)
	summary.Workspaces = 1

	desc := descriptor.GenerateWorkspace(g, projectEffects, graphEffects)

	if cr, ok := svc.Reporter.(*services.CollectingReporter); ok {
		summary.Warnings = cr.Warnings
	}

	return &Result{Workspace: &desc, Graph: g, Summary: summary}, nil
}

// convertAll lowers every loaded manifest.Project into a model.Project,
// folding in the synthetic projects the external-dependencies graph
// generator produced for resolved packages (spec.md §4.D "synthesize
// synthetic projects+targets").
func convertAll(loaded map[string]*manifest.Project, opts model.ConvertOptions, depGraph *depsgraph.Graph, svc *services.Services) (map[string]*model.Project, error) {
	out := make(map[string]*model.Project, len(loaded)+len(depGraph.ExternalProjects))
	for path, m := range loaded {
		proj, err := model.ConvertProject(m, path, opts, svc)
		if err != nil {
			return nil, err
		}
		out[path] = proj
	}
	for path, proj := range depGraph.ExternalProjects {
		out[path] = proj
	}
	return out, nil
}

// graphPipeline composes the graph mapper pipeline, wiring in the caller's
// build-cache collaborator if one was supplied (spec.md §4.H "cache-hit
// pruning").
func graphPipeline(opts Options) mapper.GraphPipeline {
	pipeline := mapper.DefaultGraphPipeline()
	if opts.Cache != nil {
		for i, m := range pipeline.Mappers {
			if _, ok := m.(mapper.CacheHitPruningGraphMapper); ok {
				pipeline.Mappers[i] = mapper.CacheHitPruningGraphMapper{Cache: opts.Cache}
			}
		}
	}
	return pipeline
}

// mapProjects runs the project mapper pipeline over every project in g,
// mutating g.Projects in place and returning the side effects collected per
// project path (spec.md §5 "every project mapper runs on every project
// before any graph mapper runs").
func mapProjects(g *graph.Graph, cfg *config.Config, opts Options, svc *services.Services, summary *services.Summary) (map[string][]mapper.SideEffect, error) {
	pipeline := mapper.DefaultProjectPipeline(cfg)
	if opts.SigningDirectoryName != "" {
		for i, m := range pipeline.Mappers {
			if _, ok := m.(mapper.SigningMapper); ok {
				pipeline.Mappers[i] = mapper.SigningMapper{DirectoryName: opts.SigningDirectoryName}
			}
		}
	}
	effects := make(map[string][]mapper.SideEffect, len(g.Projects))
	for path, proj := range g.Projects {
		mapped, stepEffects, err := pipeline.Run(*proj, cfg, svc)
		if err != nil {
			return nil, err
		}
		g.Projects[path] = &mapped
		effects[path] = stepEffects
		summary.SideEffect += len(stepEffects)
	}
	return effects, nil
}
