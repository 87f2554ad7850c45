package mapper

import (
	"path/filepath"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// DeleteDerivedDirectoryProjectMapper emits a delete_directory side effect
// for the project's derived-data directory (spec.md §4.G step 2). It never
// touches the project value itself.
type DeleteDerivedDirectoryProjectMapper struct{}

func (DeleteDerivedDirectoryProjectMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	derivedPath := filepath.Join(proj.Path, ".build", "DerivedData")
	return proj, []SideEffect{{Kind: SideEffectDeleteDirectory, Path: derivedPath}}, nil
}
