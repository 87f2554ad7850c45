package depsgraph

import (
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"

	"github.com/moasq/xcforge/internal/generrors"
)

// workspaceStateFile mirrors the subset of workspace-state.json this
// generator needs: one packageRef per resolved dependency.
type workspaceStateFile struct {
	Object struct {
		Dependencies []struct {
			PackageRef struct {
				Identity string `json:"identity"`
				Kind     string `json:"kind"`
				Location string `json:"location"`
				Path     string `json:"path"`
			} `json:"packageRef"`
		} `json:"dependencies"`
	} `json:"object"`
}

// resolvedPackage names one entry decoded from workspace-state.json, with its
// on-disk folder already resolved by kind (spec.md §4.D step 1).
type resolvedPackage struct {
	Identity string
	Dir      string
}

// decodeWorkspaceState reads workspace-state.json and resolves each
// dependency's on-disk folder: "remote" packages live under
// checkoutsDir/<identity>; "local" packages are referenced by their declared
// absolute path. Any other kind is unsupported_dependency_kind.
func decodeWorkspaceState(stateFile, checkoutsDir string) ([]resolvedPackage, error) {
	data, err := os.ReadFile(stateFile)
	if err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, stateFile, err)
	}
	var state workspaceStateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, stateFile, err)
	}

	out := make([]resolvedPackage, 0, len(state.Object.Dependencies))
	for _, dep := range state.Object.Dependencies {
		ref := dep.PackageRef
		switch PackageRefKind(ref.Kind) {
		case PackageRefRemote:
			out = append(out, resolvedPackage{Identity: ref.Identity, Dir: filepath.Join(checkoutsDir, ref.Identity)})
		case PackageRefLocal:
			dir := ref.Path
			if dir == "" {
				dir = ref.Location
			}
			out = append(out, resolvedPackage{Identity: ref.Identity, Dir: dir})
		default:
			return nil, generrors.UnsupportedDependencyKind(ref.Kind)
		}
	}
	return out, nil
}
