// Package mapper implements the project and graph mapper pipelines
// (spec.md §4.G, §4.H): ordered, pure transforms from (Project → Project +
// side effects) and (Graph → Graph + side effects).
package mapper

import (
	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/graph"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// SideEffectKind discriminates a declarative filesystem command emitted by a
// mapper (spec.md GLOSSARY "Side effect"). Side effects are never applied by
// the mappers themselves; the host executes them after all mapping succeeds.
type SideEffectKind string

const (
	SideEffectWriteFile         SideEffectKind = "write_file"
	SideEffectDeleteDirectory   SideEffectKind = "delete_directory"
	SideEffectRunCommand        SideEffectKind = "run"
)

// SideEffect is one declarative filesystem command.
type SideEffect struct {
	Kind     SideEffectKind
	Path     string
	Contents []byte
	Command  string
}

// ProjectMapper is a pure transformer over one Project (spec.md GLOSSARY "Mapper").
type ProjectMapper interface {
	Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error)
}

// ProjectPipeline runs a fixed, ordered sequence of ProjectMappers, accumulating
// side effects in pipeline order.
type ProjectPipeline struct {
	Mappers []ProjectMapper
}

// Run applies every mapper in order. An error from any mapper aborts the
// pipeline immediately (spec.md §5 "There is no retry: any mapper error
// aborts the entire generation").
func (p ProjectPipeline) Run(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	var effects []SideEffect
	for _, m := range p.Mappers {
		stepEffects, err := mapOne(m, &proj, cfg, svc)
		if err != nil {
			return model.Project{}, nil, err
		}
		effects = append(effects, stepEffects...)
	}
	return proj, effects, nil
}

func mapOne(m ProjectMapper, proj *model.Project, cfg *config.Config, svc *services.Services) ([]SideEffect, error) {
	mapped, effects, err := m.Map(*proj, cfg, svc)
	if err != nil {
		return nil, err
	}
	*proj = mapped
	return effects, nil
}

// DefaultProjectPipeline composes the spec.md §4.G mapper order, skipping
// mappers disabled by generation options.
func DefaultProjectPipeline(cfg *config.Config) ProjectPipeline {
	var mappers []ProjectMapper
	if !cfg.DisableAutogeneratedSchemes {
		mappers = append(mappers, AutogeneratedSchemesProjectMapper{})
	}
	mappers = append(mappers, DeleteDerivedDirectoryProjectMapper{})
	mappers = append(mappers, ResourcesProjectMapper{})
	mappers = append(mappers, GenerateInfoPlistProjectMapper{})
	if !cfg.DisableSynthesizedResourceAccess {
		mappers = append(mappers, SynthesizedResourceInterfaceProjectMapper{})
	}
	mappers = append(mappers, ProjectNameAndOrganizationMapper{})
	mappers = append(mappers, SigningMapper{})
	return ProjectPipeline{Mappers: mappers}
}

// GraphMapper is a pure transformer over the whole Graph (spec.md §4.H).
type GraphMapper interface {
	Map(g *graph.Graph, cfg *config.Config, svc *services.Services) (*graph.Graph, []SideEffect, error)
}

// GraphPipeline runs graph-wide mappers after every project mapper has run
// on every project (spec.md §5 "graph mappers run after all project mappers
// on all projects").
type GraphPipeline struct {
	Mappers []GraphMapper
}

func (p GraphPipeline) Run(g *graph.Graph, cfg *config.Config, svc *services.Services) (*graph.Graph, []SideEffect, error) {
	var effects []SideEffect
	for _, m := range p.Mappers {
		var stepEffects []SideEffect
		var err error
		g, stepEffects, err = m.Map(g, cfg, svc)
		if err != nil {
			return nil, nil, err
		}
		effects = append(effects, stepEffects...)
	}
	return g, effects, nil
}

// DefaultGraphPipeline composes the spec.md §4.H graph-mapper order.
func DefaultGraphPipeline() GraphPipeline {
	return GraphPipeline{Mappers: []GraphMapper{
		CacheHitPruningGraphMapper{},
		AutomationSchemeGraphMapper{},
	}}
}
