// Package depsgraph implements the external-dependencies graph generator
// (spec.md §4.D): it takes a resolved third-party package workspace state and
// lowers it into synthetic model.Project values plus a name→dependency-edge
// table the recursive manifest loader consults for external(name) references.
package depsgraph

import "github.com/moasq/xcforge/internal/model"

// PackageRefKind is the packageRef.kind discriminant of a workspace-state.json
// dependency entry.
type PackageRefKind string

const (
	PackageRefRemote PackageRefKind = "remote"
	PackageRefLocal  PackageRefKind = "local"
)

// PackagePlatform is one platform a package declares support for, with the
// deployment target string attached to that platform entry.
type PackagePlatform struct {
	Platform         model.Platform
	DeploymentTarget string
}

// PackageProductKind is the kind of product a package target can belong to.
type PackageProductKind string

const (
	ProductKindLibraryStatic    PackageProductKind = "library_static"
	ProductKindLibraryDynamic   PackageProductKind = "library_dynamic"
	ProductKindLibraryAutomatic PackageProductKind = "library_automatic"
	ProductKindExecutable       PackageProductKind = "executable"
	ProductKindPlugin           PackageProductKind = "plugin"
	ProductKindTest             PackageProductKind = "test"
)

// PackageProduct is one product declared by a package manifest, naming the
// targets it bundles.
type PackageProduct struct {
	Name    string
	Kind    PackageProductKind
	Targets []string
}

// PackageTargetKind is the kind of one package target.
type PackageTargetKind string

const (
	TargetKindRegular PackageTargetKind = "regular"
	TargetKindTest    PackageTargetKind = "test"
	TargetKindBinary  PackageTargetKind = "binary"
	TargetKindSystem  PackageTargetKind = "system"
	TargetKindPlugin  PackageTargetKind = "plugin"
)

// PackageTargetDependencyKind discriminates a package target's dependency entry.
type PackageTargetDependencyKind string

const (
	PkgDepTarget  PackageTargetDependencyKind = "target"
	PkgDepProduct PackageTargetDependencyKind = "product"
	PkgDepByName  PackageTargetDependencyKind = "by_name"
)

// PackageTargetDependency is one dependency edge of a package target, before
// resolution against the package graph.
type PackageTargetDependency struct {
	Kind PackageTargetDependencyKind
	Name string

	// ProductPackage names the owning package for a product-kind dependency
	// ("package:" in SwiftPM manifest syntax); empty when the product lives
	// in the current package.
	ProductPackage string
}

// SettingPair is one (tool, name, value) build-setting declaration attached
// to a package target (spec.md §4.D step 4, "settings").
type SettingPair struct {
	Tool  string // "c" | "cxx" | "swift" | "linker"
	Name  string // "header_search_path" | "define" | "unsafe_flags" | "linked_framework" | "linked_library"
	Value string
}

// PackageTarget is one target of a resolved package.
type PackageTarget struct {
	Name string
	Kind PackageTargetKind

	// SourcesPath is the target's default source root, relative to the
	// package directory (e.g. "Sources/Lottie").
	SourcesPath string
	// ExplicitSourcePaths/ExplicitExcludes override SourcesPath when the
	// package manifest declares explicit paths/excludes for this target.
	ExplicitSourcePaths []string
	ExplicitExcludes    []string

	// Resources are declared resource paths, relative to the package directory.
	Resources []string

	Dependencies []PackageTargetDependency
	Settings     []SettingPair
}

// PackageInfo is the package-info loader collaborator's output for one
// resolved package directory (spec.md §4.D step 2).
type PackageInfo struct {
	Name      string
	Platforms []PackagePlatform
	Products  []PackageProduct
	Targets   []PackageTarget
}

// PackageInfoLoader is the external collaborator that reads a package
// manifest off disk and reports its platforms/products/targets. The core
// never parses Package.swift itself; it only consumes this interface
// (spec.md §1 "package-manager integrations... invoked via an
// install-and-report interface").
type PackageInfoLoader interface {
	Load(packageDir string) (*PackageInfo, error)
}
