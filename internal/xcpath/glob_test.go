package xcpath

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestThrowingGlobNonExistentRoot(t *testing.T) {
	root := t.TempDir()
	_, err := ThrowingGlob(root, "Sources/Missing/**")
	if err == nil {
		t.Fatal("expected non_existent_glob_directory error")
	}
}

func TestThrowingGlobMatchesHeaders(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "Sources", "public")
	if err := os.MkdirAll(public, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"A1.h", "A1.m", "A2.h"} {
		if err := os.WriteFile(filepath.Join(public, name), []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := ThrowingGlob(root, "Sources/public/*.h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(matches)
	want := []string{
		filepath.Join(public, "A1.h"),
		filepath.Join(public, "A2.h"),
	}
	if len(matches) != len(want) {
		t.Fatalf("got %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("matches[%d] = %s, want %s", i, matches[i], want[i])
		}
	}
}

func TestGlobEmptyOnNoMatches(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Sources"), 0o755); err != nil {
		t.Fatal(err)
	}
	matches := Glob(root, "Sources/*.swift")
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestExtractTargetAndConfigurationName(t *testing.T) {
	cases := []struct {
		filename   string
		wantTarget string
		wantConfig string
		wantOK     bool
	}{
		{"MyApp.Debug.xcconfig", "MyApp", "Debug", true},
		{"MyApp.xcconfig", "", "", false},
		{"A.B.C.xcconfig", "", "", false},
	}
	for _, tc := range cases {
		target, config, ok := ExtractTargetAndConfigurationName(tc.filename)
		if ok != tc.wantOK || target != tc.wantTarget || config != tc.wantConfig {
			t.Errorf("ExtractTargetAndConfigurationName(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.filename, target, config, ok, tc.wantTarget, tc.wantConfig, tc.wantOK)
		}
	}
}

func TestCommonAncestor(t *testing.T) {
	got := CommonAncestor("/a/b/c", "/a/b/d")
	want := "/a/b"
	if got != want {
		t.Errorf("CommonAncestor = %q, want %q", got, want)
	}
}
