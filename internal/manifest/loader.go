package manifest

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/moasq/xcforge/internal/generrors"
)

// ProjectFileName, WorkspaceFileName, and ConfigFileName are the manifest
// file names the loader recognises in a project directory.
const (
	ProjectFileName   = "Project.yml"
	WorkspaceFileName = "Workspace.yml"
	ConfigFileName    = "Config.yml"
	TemplateFileName  = "Template.yml"
)

// LoadProject decodes one Project.yml file into a typed value, or reports
// manifest_not_found.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	return &p, nil
}

// LoadWorkspace decodes one Workspace.yml file into a typed value, or reports
// manifest_not_found.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	var w Workspace
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	return &w, nil
}

// LoadConfig decodes one Config.yml file into a typed value, or reports
// manifest_not_found.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, generrors.Wrap(generrors.KindManifestNotFound, path, err)
	}
	return &c, nil
}

// LoadTemplate decodes one Template.yml file into a typed Project fragment.
// Templates share the Project schema; they are never loaded as the root of a
// generation run, only merged into a Project that references them (merging
// itself is out of this spec's core per §1 "template file generation").
func LoadTemplate(path string) (*Project, error) {
	return LoadProject(path)
}

// ManifestsAt reports which manifest kinds are present in a directory.
func ManifestsAt(dir string) map[Kind]bool {
	found := make(map[Kind]bool)
	candidates := map[Kind]string{
		KindProject:   ProjectFileName,
		KindWorkspace: WorkspaceFileName,
		KindConfig:    ConfigFileName,
		KindTemplate:  TemplateFileName,
	}
	for kind, name := range candidates {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			found[kind] = true
		}
	}
	return found
}
