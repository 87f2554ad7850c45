package mapper

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moasq/xcforge/internal/config"
	"github.com/moasq/xcforge/internal/model"
	"github.com/moasq/xcforge/internal/services"
)

// GenerateInfoPlistProjectMapper materialises a target's synthesized
// info_plist dictionary into an actual Info.plist file, emits the write_file
// side effect, and rewrites the target to reference the generated path
// (spec.md §4.G step 4). The renderer below is a small hand-written XML
// encoder rather than a general-purpose plist library, since Apple's plist
// format doesn't map cleanly onto struct-tag-driven marshaling.
type GenerateInfoPlistProjectMapper struct{}

func (GenerateInfoPlistProjectMapper) Map(proj model.Project, cfg *config.Config, svc *services.Services) (model.Project, []SideEffect, error) {
	var effects []SideEffect

	for i, target := range proj.Targets {
		if !target.InfoPlist.IsSynthesized() {
			continue
		}
		path := filepath.Join(proj.Path, "Generated", target.Name+"-Info.plist")
		contents := renderPlist(target.InfoPlist.Properties)
		effects = append(effects, SideEffect{Kind: SideEffectWriteFile, Path: path, Contents: contents})
		proj.Targets[i].InfoPlist = model.InfoPlist{Path: path}
	}

	return proj, effects, nil
}

// renderPlist encodes a dictionary as an Apple XML property list.
func renderPlist(properties map[string]any) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n")
	writePlistValue(&b, properties, 0)
	b.WriteString("\n</plist>\n")
	return []byte(b.String())
}

func writePlistValue(b *strings.Builder, v any, indent int) {
	pad := strings.Repeat("\t", indent)
	switch val := v.(type) {
	case map[string]any:
		b.WriteString(pad + "<dict>\n")
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(pad + "\t<key>" + escapePlist(k) + "</key>\n")
			writePlistValue(b, val[k], indent+1)
		}
		b.WriteString(pad + "</dict>\n")
	case []any:
		b.WriteString(pad + "<array>\n")
		for _, item := range val {
			writePlistValue(b, item, indent+1)
		}
		b.WriteString(pad + "</array>\n")
	case bool:
		if val {
			b.WriteString(pad + "<true/>\n")
		} else {
			b.WriteString(pad + "<false/>\n")
		}
	case int:
		b.WriteString(pad + fmt.Sprintf("<integer>%d</integer>\n", val))
	case float64:
		b.WriteString(pad + fmt.Sprintf("<real>%v</real>\n", val))
	default:
		b.WriteString(pad + "<string>" + escapePlist(fmt.Sprint(val)) + "</string>\n")
	}
}

func escapePlist(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
