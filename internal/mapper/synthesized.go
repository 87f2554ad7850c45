package mapper

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// SynthesizedResourceInterfaceProjectMapper generates a typed Swift accessor
// source for each recognized resource kind a target declares, and appends it
// to the target's sources (spec.md §4.G step 5). The caller skips this
// mapper when disable_synthesized_resource_accessors is set.
type SynthesizedResourceInterfaceProjectMapper struct{}

// resourceAccessorKind names the generated-file suffix for one recognized
// resource extension.
var resourceAccessorKind = map[string]string{
	".xcassets":   "Assets",
	".strings":    "Strings",
	".ttf":        "Fonts",
	".otf":        "Fonts",
	".plist":      "Plists",
	".storyboard": "Storyboards",
	".xib":        "Storyboards",
}

func (SynthesizedResourceInterfaceProjectMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	var effects []SideEffect

	for i, target := range proj.Targets {
		kinds := make(map[string][]string)
		for _, res := range target.Resources {
			ext := strings.ToLower(filepath.Ext(res.Path))
			kind, recognized := resourceAccessorKind[ext]
			if !recognized {
				continue
			}
			kinds[kind] = append(kinds[kind], res.Path)
		}
		if len(kinds) == 0 {
			continue
		}

		for _, kind := range sortedKeys(kinds) {
			genPath := filepath.Join(proj.Path, "Generated", fmt.Sprintf("%s+%s.swift", target.Name, kind))
			effects = append(effects, SideEffect{
				Kind:     SideEffectWriteFile,
				Path:     genPath,
				Contents: renderResourceAccessor(target.Name, kind, kinds[kind]),
			})
			proj.Targets[i].Sources = append(proj.Targets[i].Sources, model.ResolvedFile{Path: genPath})
		}
	}

	return proj, effects, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func renderResourceAccessor(targetName, kind string, paths []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "// Generated %s accessors for %s. Do not edit directly.\n", kind, targetName)
	b.WriteString("import Foundation\n\n")
	fmt.Fprintf(&b, "enum %s%s {\n", targetName, kind)
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		fmt.Fprintf(&b, "\tstatic let %s = %q\n", sanitizeIdentifier(name), name)
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r == '-' || r == ' ' || r == '.' {
			continue
		}
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "resource"
	}
	return b.String()
}
