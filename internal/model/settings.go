package model

import (
	"sort"
	"strings"
)

// sortBuildConfigurations orders configurations lexicographically by name,
// with ties (there should be none — names are unique, spec.md §3 invariant)
// broken debug-before-release (spec.md §8 property 3).
func sortBuildConfigurations(cfgs []BuildConfiguration) {
	sort.Slice(cfgs, func(i, j int) bool {
		if cfgs[i].Name != cfgs[j].Name {
			return cfgs[i].Name < cfgs[j].Name
		}
		return cfgs[i].Variant == VariantDebug && cfgs[j].Variant == VariantRelease
	})
}

// VariantForName infers debug/release from a configuration name the way
// XcodeGen-shaped manifests do: names containing "debug" (case-insensitive)
// are debug, everything else defaults to release.
func VariantForName(name string) BuildConfigurationVariant {
	if strings.Contains(strings.ToLower(name), "debug") {
		return VariantDebug
	}
	return VariantRelease
}

// MergeSettings merges dictionaries left to right: scalar keys in a later
// dict override the same key in an earlier one; when both the existing and
// incoming values are string slices (the shape of HEADER_SEARCH_PATHS,
// OTHER_SWIFT_FLAGS, and friends), the incoming values are appended rather
// than replacing. This is the single merge rule spec.md §4.E ("applying the
// same merging rules as 4.D") and §4.D's settings accumulation share.
func MergeSettings(dicts ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, dict := range dicts {
		for k, v := range dict {
			existing, had := out[k]
			if had {
				if merged, ok := mergeArrayValues(existing, v); ok {
					out[k] = merged
					continue
				}
			}
			out[k] = v
		}
	}
	return out
}

func mergeArrayValues(existing, incoming any) (any, bool) {
	existingSlice, existingOK := toAnySlice(existing)
	incomingSlice, incomingOK := toAnySlice(incoming)
	if !existingOK || !incomingOK {
		return nil, false
	}
	merged := make([]any, 0, len(existingSlice)+len(incomingSlice))
	merged = append(merged, existingSlice...)
	merged = append(merged, incomingSlice...)
	return merged, true
}

func toAnySlice(v any) ([]any, bool) {
	switch vv := v.(type) {
	case []any:
		return vv, true
	case []string:
		out := make([]any, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
