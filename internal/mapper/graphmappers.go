package mapper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/graph"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// CacheLookup is the remote/local build-cache collaborator: given a target's
// content fingerprint, it reports whether a prebuilt artefact already exists
// for it (spec.md §4.H "cache-hit pruning").
type CacheLookup interface {
	Lookup(fingerprint string) (artifactPath string, hit bool)
}

// CacheHitPruningGraphMapper replaces targets whose fingerprint matches a
// cached artefact with a pre-compiled node, so the downstream writer never
// schedules a rebuild for them. A nil Cache makes this mapper a no-op.
type CacheHitPruningGraphMapper struct {
	Cache CacheLookup
}

func (m CacheHitPruningGraphMapper) Map(g *graph.Graph, cfg *config.Config, svc *services.Services) (*graph.Graph, []SideEffect, error) {
	if m.Cache == nil {
		return g, nil, nil
	}

	for path, proj := range g.Projects {
		var kept []model.Target
		for _, target := range proj.Targets {
			fingerprint := targetFingerprint(path, target)
			if artifactPath, hit := m.Cache.Lookup(fingerprint); hit {
				key := graph.TargetKey{ProjectPath: path, TargetName: target.Name}
				g.PreCompiledNodes[artifactPath] = graph.PreCompiledNode{Path: artifactPath}
				delete(g.TargetNodes, key)
				delete(g.Dependencies, key)
				continue
			}
			kept = append(kept, target)
		}
		proj.Targets = kept
	}

	return g, nil, nil
}

// targetFingerprint hashes the parts of a target that determine its build
// output: project path, name, platform, product, and sources. It is deterministic and
// insensitive to map iteration order.
func targetFingerprint(projectPath string, target model.Target) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", projectPath, target.Name, target.Platform, target.Product)
	paths := make([]string, 0, len(target.Sources))
	for _, s := range target.Sources {
		paths = append(paths, s.Path)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(h, "|%s", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AutomationSchemeGraphMapper injects a "<Project>-Project" shared scheme per
// project, building every target and testing every test-bundle target, for
// scripted/CI test runs (spec.md §4.H "automation injection").
type AutomationSchemeGraphMapper struct{}

func (AutomationSchemeGraphMapper) Map(g *graph.Graph, cfg *config.Config, svc *services.Services) (*graph.Graph, []SideEffect, error) {
	for path, proj := range g.Projects {
		schemeName := proj.Name + "-Project"
		if _, ok := proj.SchemeByName(schemeName); ok {
			continue
		}

		var buildTargets, testTargets []model.TargetReference
		for _, target := range proj.Targets {
			ref := model.TargetReference{ProjectPath: path, TargetName: target.Name}
			buildTargets = append(buildTargets, ref)
			if target.Product.IsTestBundle() {
				testTargets = append(testTargets, ref)
			}
		}
		if len(buildTargets) == 0 {
			continue
		}

		proj.Schemes = append(proj.Schemes, model.Scheme{
			Name:   schemeName,
			Shared: true,
			Build:  &model.BuildAction{Targets: buildTargets},
			Test:   &model.TestAction{Targets: testTargets, BuildConfiguration: proj.DefaultDebugBuildConfigurationName},
		})
		g.Projects[path] = proj
	}

	return g, nil, nil
}
