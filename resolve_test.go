// File: lixenwraith/flatlint/resolve_test.go
package flatlint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDocumentReferences(t *testing.T) {
	base := filepath.FromSlash("/work/project")
	r := NewResolver(base, nil)
	ctx := context.Background()

	owner := &Unit{
		Source: filepath.Join(base, "node_modules", "eslint-config-airbnb", ".eslintrc"),
		Format: FormatDocument,
	}

	t.Run("NamedPackage", func(t *testing.T) {
		got, err := r.Resolve(ctx, "airbnb-base", owner)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "node_modules", "eslint-config-airbnb-base", ".eslintrc"), got)
	})

	t.Run("RelativeToOwningPackage", func(t *testing.T) {
		got, err := r.Resolve(ctx, "./rules/react.js", owner)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "node_modules", "eslint-config-airbnb", "rules", "react.js"), got)
	})

	t.Run("RelativeFromRootUsesItsDirectoryName", func(t *testing.T) {
		root := &Unit{Source: filepath.Join(base, ".eslintrc"), Format: FormatDocument}
		got, err := r.Resolve(ctx, "./shared.json", root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "node_modules", "project", "shared.json"), got)
	})

	t.Run("ParentMarkerIsAPackageName", func(t *testing.T) {
		got, err := r.Resolve(ctx, "../other", owner)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "node_modules", "eslint-config-../other", ".eslintrc"), got)
	})

	t.Run("CustomLayout", func(t *testing.T) {
		custom := &Resolver{
			BaseDir:       base,
			DependencyDir: "vendor",
			PackagePrefix: "lint-",
			PackageRoot:   "config.json",
		}
		got, err := custom.Resolve(ctx, "strict", owner)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "vendor", "lint-strict", "config.json"), got)
	})

	t.Run("EmptyReference", func(t *testing.T) {
		_, err := r.Resolve(ctx, "", owner)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestResolveModuleReferences(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	ownerPath := filepath.Join(base, "node_modules", "eslint-config-x", "index.js")
	owner := &Unit{Source: ownerPath, Format: FormatModule}

	t.Run("AbsolutePassThrough", func(t *testing.T) {
		target := filepath.Join(base, "somewhere", "rules.js")
		got, err := NewResolver(base, nil).Resolve(ctx, target, owner)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("DelegatedToModuleFacility", func(t *testing.T) {
		modules := newFakeModules()
		target := filepath.Join(base, "node_modules", "eslint-config-x", "rules", "style.js")
		modules.resolved[filepath.Dir(ownerPath)+"|./rules/style"] = target

		got, err := NewResolver(base, modules).Resolve(ctx, "./rules/style", owner)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("UnresolvableReference", func(t *testing.T) {
		_, err := NewResolver(base, newFakeModules()).Resolve(ctx, "missing", owner)
		assert.ErrorIs(t, err, ErrModuleLoadFailure)
	})

	t.Run("ModuleSupportDisabled", func(t *testing.T) {
		_, err := NewResolver(base, nil).Resolve(ctx, "./rules", owner)
		assert.ErrorIs(t, err, ErrModuleLoadFailure)
	})
}
