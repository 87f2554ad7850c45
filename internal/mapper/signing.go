package mapper

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// SigningMapper injects code-signing settings derived from provisioning
// profiles available in the project's signing directory (spec.md §4.G step
// 7). Directory defaults to "<project>/signing"; a missing directory is not
// an error, it simply yields no signing settings for any target.
type SigningMapper struct {
	// DirectoryName is the signing directory's name relative to the
	// project's path. Empty means the "signing" default.
	DirectoryName string
}

func (m SigningMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	dirName := m.DirectoryName
	if dirName == "" {
		dirName = "signing"
	}
	dir := filepath.Join(proj.Path, dirName)
	profiles := provisioningProfilesByBundleID(dir)
	if len(profiles) == 0 {
		return proj, nil, nil
	}

	for i, target := range proj.Targets {
		profile, ok := profiles[target.BundleID]
		if !ok {
			continue
		}
		if proj.Targets[i].Settings.Base == nil {
			proj.Targets[i].Settings.Base = map[string]any{}
		}
		proj.Targets[i].Settings.Base["CODE_SIGN_IDENTITY"] = "iPhone Distribution"
		proj.Targets[i].Settings.Base["PROVISIONING_PROFILE_SPECIFIER"] = profile
	}

	return proj, nil, nil
}

// provisioningProfilesByBundleID scans dir for "<bundle-id>.mobileprovision"
// files, mapping the bundle id encoded in the filename to the profile's name.
func provisioningProfilesByBundleID(dir string) map[string]string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	out := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mobileprovision") {
			continue
		}
		bundleID := strings.TrimSuffix(entry.Name(), ".mobileprovision")
		out[bundleID] = bundleID
	}
	return out
}
