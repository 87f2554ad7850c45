package mapper

import (
	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// ResourcesProjectMapper splits resources off a library/framework target into
// a companion bundle target, and rewrites the host's dependency list to
// include it (spec.md §4.G step 3). Xcode cannot embed loose resources
// directly into a static artifact; a bundle target is the idiomatic fix.
type ResourcesProjectMapper struct{}

var libraryLikeProducts = map[model.Product]bool{
	model.ProductFramework:       true,
	model.ProductStaticFramework: true,
	model.ProductStaticLibrary:   true,
	model.ProductDynamicLibrary:  true,
}

func (ResourcesProjectMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	var bundleTargets []model.Target

	for i, target := range proj.Targets {
		if !libraryLikeProducts[target.Product] || len(target.Resources) == 0 {
			continue
		}

		bundleName := target.Name + "Resources"
		bundleTargets = append(bundleTargets, model.Target{
			Name:      bundleName,
			Platform:  target.Platform,
			Product:   model.ProductBundle,
			Resources: target.Resources,
		})

		proj.Targets[i].Resources = nil
		proj.Targets[i].Dependencies = append(proj.Targets[i].Dependencies, model.Dependency{
			Kind: model.DependencyTarget,
			Name: bundleName,
		})
	}

	proj.Targets = append(proj.Targets, bundleTargets...)
	return proj, nil, nil
}
