// Package xcpath implements the Path & Glob service (spec.md §4.A): absolute
// and relative path algebra plus pattern expansion against a root directory,
// grounded on the glob handling in other_examples' generate-session.go and
// compozy's build pipeline, both built on the bmatcuk/doublestar family.
package xcpath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/moasq/xcforge/internal/generrors"
)

// metaChars are the glob metacharacters that mark the start of a wildcard
// segment; the longest prefix of a pattern containing none of them is the
// pattern's "resolved root" for existence checking.
const metaChars = "*{}"

// NonWildcardPrefix returns the longest prefix of pattern containing no glob
// metacharacter, trimmed to the last path separator.
func NonWildcardPrefix(pattern string) string {
	idx := strings.IndexAny(pattern, metaChars)
	prefix := pattern
	if idx >= 0 {
		prefix = pattern[:idx]
	}
	if idx := strings.LastIndex(prefix, "/"); idx >= 0 {
		prefix = prefix[:idx]
	} else {
		prefix = ""
	}
	return prefix
}

// Glob expands pattern against root and returns absolute paths. A pattern
// whose resolved root does not exist, or that matches nothing, yields an
// empty list and no error — callers that need the distinction use
// ThrowingGlob instead (spec.md §4.A, §7 no_files_match_glob is recoverable).
func Glob(root, pattern string) []string {
	matches, err := ThrowingGlob(root, pattern)
	if err != nil {
		return nil
	}
	return matches
}

// ThrowingGlob expands pattern against root and returns absolute paths, or a
// non_existent_glob_directory error when the pattern's non-wildcard prefix
// does not exist as a directory.
func ThrowingGlob(root, pattern string) ([]string, error) {
	resolvedPrefix := NonWildcardPrefix(pattern)
	checkDir := root
	if resolvedPrefix != "" {
		checkDir = filepath.Join(root, resolvedPrefix)
	}
	info, err := os.Stat(checkDir)
	if err != nil || !info.IsDir() {
		return nil, generrors.NonExistentGlobDirectory(pattern, checkDir)
	}

	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, generrors.Wrap(generrors.KindNonExistentGlobDirectory, pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(root, m))
	}
	return out, nil
}

// IsFolder reports whether path exists and is a directory.
func IsFolder(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveLastComponent returns path with its last path component removed
// ("a/b/c" → "a/b").
func RemoveLastComponent(path string) string {
	return filepath.Dir(path)
}

// CommonAncestor returns the deepest directory that is a prefix of both a and b.
func CommonAncestor(a, b string) string {
	aParts := strings.Split(filepath.Clean(a), string(filepath.Separator))
	bParts := strings.Split(filepath.Clean(b), string(filepath.Separator))
	n := len(aParts)
	if len(bParts) < n {
		n = len(bParts)
	}
	i := 0
	for i < n && aParts[i] == bParts[i] {
		i++
	}
	if i == 0 {
		return string(filepath.Separator)
	}
	joined := strings.Join(aParts[:i], string(filepath.Separator))
	if joined == "" {
		return string(filepath.Separator)
	}
	return joined
}

// ExtractTargetAndConfigurationName splits a "Target.Config.ext" filename
// into (target, config). It returns ok=false unless the name has exactly two
// dot-separated components before the extension.
func ExtractTargetAndConfigurationName(filename string) (target, config string, ok bool) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	parts := strings.Split(stem, ".")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// AbsoluteFrom resolves a manifest-relative path against the manifest's
// directory, returning it unchanged if it is already absolute.
func AbsoluteFrom(manifestDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(manifestDir, path))
}
