// Package generrors defines the error taxonomy of the generation core.
//
// Every variant here either aborts the pipeline (fatal) or is downgraded to
// a warning by the caller (recoverable); see the Recoverable method.
package generrors

import "fmt"

// Kind identifies a member of the error taxonomy.
type Kind string

const (
	KindManifestNotFound          Kind = "manifest_not_found"
	KindFeatureNotYetSupported    Kind = "feature_not_yet_supported"
	KindMissingFile               Kind = "missing_file"
	KindNonExistentGlobDirectory  Kind = "non_existent_glob_directory"
	KindNoFilesMatchGlob          Kind = "no_files_match_glob"
	KindGlobPointsToDirectory     Kind = "glob_points_to_directory"
	KindFolderReferenceNotDir     Kind = "folder_reference_not_directory"
	KindFolderReferenceMissing    Kind = "folder_reference_missing"
	KindCyclicDependency          Kind = "cyclic_dependency"
	KindUnsupportedDependencyKind Kind = "unsupported_dependency_kind"
	KindUnknownByNameDependency   Kind = "unknown_by_name_dependency"
	KindUnknownProductDependency  Kind = "unknown_product_dependency"
	KindUnknownPlatform           Kind = "unknown_platform"
	KindNoSupportedPlatforms      Kind = "no_supported_platforms"
	KindUnsupportedSetting        Kind = "unsupported_setting"
)

// recoverableKinds are downgraded to warnings rather than aborting generation.
var recoverableKinds = map[Kind]bool{
	KindNoFilesMatchGlob:       true,
	KindGlobPointsToDirectory:  true,
	KindFolderReferenceNotDir:  true,
	KindFolderReferenceMissing: true,
}

// Error is a tagged generation error carrying the path/name relevant to its kind.
type Error struct {
	Kind    Kind
	Subject string // path, pattern, or name, depending on Kind
	Detail  string // secondary detail (e.g. resolved_root, configured platforms)
	Wrapped error
}

func (e *Error) Error() string {
	if e.Kind == KindGlobPointsToDirectory {
		return fmt.Sprintf("%s is a directory, try using: '%s/**' to list its files", e.Subject, e.Subject)
	}
	msg := string(e.Kind)
	if e.Subject != "" {
		msg += ": " + e.Subject
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Recoverable reports whether this error should be downgraded to a warning
// instead of aborting the pipeline (spec.md §7).
func (e *Error) Recoverable() bool { return recoverableKinds[e.Kind] }

// New builds a tagged error with no wrapped cause.
func New(kind Kind, subject string) *Error {
	return &Error{Kind: kind, Subject: subject}
}

// Newf builds a tagged error with a formatted detail string.
func Newf(kind Kind, subject, detailFormat string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: fmt.Sprintf(detailFormat, args...)}
}

// Wrap builds a tagged error around an underlying cause.
func Wrap(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Wrapped: err}
}

// ManifestNotFound reports a manifest file that could not be loaded.
func ManifestNotFound(path string) *Error { return New(KindManifestNotFound, path) }

// FeatureNotYetSupported reports a manifest construct the core cannot lower yet.
func FeatureNotYetSupported(description string) *Error {
	return New(KindFeatureNotYetSupported, description)
}

// NonExistentGlobDirectory reports a glob whose non-wildcard root does not exist.
func NonExistentGlobDirectory(pattern, resolvedRoot string) *Error {
	return Newf(KindNonExistentGlobDirectory, pattern, "resolved_root=%s", resolvedRoot)
}

// NoFilesMatchGlob reports a glob pattern that matched nothing (recoverable).
func NoFilesMatchGlob(pattern string) *Error { return New(KindNoFilesMatchGlob, pattern) }

// GlobPointsToDirectory reports a file glob whose target is a plain directory (recoverable).
func GlobPointsToDirectory(path string) *Error { return New(KindGlobPointsToDirectory, path) }

// FolderReferenceNotDirectory reports a folder reference that resolved to a non-directory (recoverable).
func FolderReferenceNotDirectory(path string) *Error { return New(KindFolderReferenceNotDir, path) }

// FolderReferenceMissing reports a folder reference whose target does not exist (recoverable).
func FolderReferenceMissing(path string) *Error { return New(KindFolderReferenceMissing, path) }

// CyclicDependency reports a target→target dependency cycle detected by the graph loader.
func CyclicDependency(path string) *Error { return New(KindCyclicDependency, path) }

// UnsupportedDependencyKind reports an unrecognised workspace-state package kind.
func UnsupportedDependencyKind(kind string) *Error {
	return New(KindUnsupportedDependencyKind, kind)
}

// UnknownByNameDependency reports a byName dependency that resolves to nothing.
func UnknownByNameDependency(name string) *Error {
	return New(KindUnknownByNameDependency, name)
}

// UnknownProductDependency reports a product dependency absent from its package.
func UnknownProductDependency(product, pkg string) *Error {
	return Newf(KindUnknownProductDependency, product, "package=%s", pkg)
}

// UnknownPlatform reports a platform name the converter does not recognise.
func UnknownPlatform(name string) *Error { return New(KindUnknownPlatform, name) }

// NoSupportedPlatforms reports an empty platform intersection for an external package.
func NoSupportedPlatforms(name string, configured []string, pkg string) *Error {
	return Newf(KindNoSupportedPlatforms, name, "configured=%v package=%s", configured, pkg)
}

// UnsupportedSetting reports a (tool, name) settings pair the converter cannot map.
func UnsupportedSetting(tool, name string) *Error {
	return Newf(KindUnsupportedSetting, name, "tool=%s", tool)
}
