// File: lixenwraith/flatlint/resolve.go
package flatlint

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Default package layout used for shareable configurations
const (
	DefaultDependencyDir = "node_modules"
	DefaultPackagePrefix = "eslint-config-"
	DefaultPackageRoot   = ".eslintrc"
)

// relativeMarker prefixes an extends reference relative to the owning package
const relativeMarker = "./"

// Resolver computes the location of an extends reference
type Resolver struct {
	// BaseDir is the working directory all document references resolve under
	BaseDir string

	// DependencyDir is the installed dependency directory below BaseDir
	DependencyDir string

	// PackagePrefix is prepended to a named shareable configuration
	PackagePrefix string

	// PackageRoot is the root configuration file name inside a package
	PackageRoot string

	// Modules resolves references owned by module units, may be nil
	Modules ModuleLoader
}

// NewResolver creates a Resolver with the default package layout
func NewResolver(baseDir string, modules ModuleLoader) *Resolver {
	return &Resolver{
		BaseDir:       baseDir,
		DependencyDir: DefaultDependencyDir,
		PackagePrefix: DefaultPackagePrefix,
		PackageRoot:   DefaultPackageRoot,
		Modules:       modules,
	}
}

// Resolve returns the location to load for ref, owned by owner.
// The computed path is not checked for existence.
func (r *Resolver) Resolve(ctx context.Context, ref string, owner *Unit) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w %s: empty extends reference", ErrMalformedDocument, owner.Source)
	}

	if owner.Format == FormatModule {
		return r.resolveModuleRef(ctx, ref, owner)
	}

	// Relative to the owning unit's package directory
	if strings.HasPrefix(ref, relativeMarker) {
		return filepath.Join(r.BaseDir, r.DependencyDir, parentDirName(owner.Source), strings.TrimPrefix(ref, relativeMarker)), nil
	}

	// Named shareable configuration package
	return filepath.Join(r.BaseDir, r.DependencyDir, r.PackagePrefix+ref, r.PackageRoot), nil
}

// resolveModuleRef hands a module-owned reference to the module facility
func (r *Resolver) resolveModuleRef(ctx context.Context, ref string, owner *Unit) (string, error) {
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	if r.Modules == nil {
		return "", fmt.Errorf("%w %s: cannot resolve %q, module support is disabled", ErrModuleLoadFailure, owner.Source, ref)
	}

	resolved, err := r.Modules.ResolveModule(ctx, ref, filepath.Dir(owner.Source))
	if err != nil {
		return "", fmt.Errorf("%w %s: cannot resolve %q: %w", ErrModuleLoadFailure, owner.Source, ref, err)
	}
	return resolved, nil
}

// parentDirName returns the name of the directory containing path,
// the second-to-last path segment
func parentDirName(path string) string {
	return filepath.Base(filepath.Dir(path))
}
