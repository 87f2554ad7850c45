package mapper

import (
	"strings"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// ProjectNameAndOrganizationMapper applies the Config's organization_name and
// xcode_project_name generation options to a Project (spec.md §4.G step 6).
// Config.FromManifest already resolved "first occurrence wins" for repeated
// options (spec.md §8 scenario S3); this mapper only does the substitution.
type ProjectNameAndOrganizationMapper struct{}

const projectNamePlaceholder = "$(project_name)"

func (ProjectNameAndOrganizationMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	if cfg.OrganizationName != "" {
		proj.OrganizationName = cfg.OrganizationName
	}

	if cfg.XcodeProjectName != "" {
		proj.FileName = strings.ReplaceAll(cfg.XcodeProjectName, projectNamePlaceholder, proj.Name)
	} else if proj.FileName == "" {
		proj.FileName = proj.Name
	}

	return proj, nil, nil
}
