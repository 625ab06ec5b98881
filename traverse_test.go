// File: lixenwraith/flatlint/traverse_test.go
package flatlint

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// traverseRoot loads the root at path and runs a traversal over it
func traverseRoot(t *testing.T, base, path string, modules ModuleLoader) (RuleSet, *Traversal, error) {
	t.Helper()
	ctx := context.Background()
	loader := NewLoader(modules)

	root, err := loader.Load(ctx, path)
	require.NoError(t, err)

	tr := NewTraversal(loader, NewResolver(base, modules), nil)
	set, err := tr.Run(ctx, root)
	return set, tr, err
}

// sources lists the entry sources of a rule set
func sources(set RuleSet) []string {
	out := make([]string, 0, len(set))
	for _, e := range set {
		out = append(out, e.Source)
	}
	return out
}

func TestTraversalOrder(t *testing.T) {
	base := t.TempDir()

	// root -> [a, c], a -> b, a -> ./extra.json
	root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": ["a", "c"], "rules": {"k": "root"}}`)
	a := writeFile(t, packagePath(base, "a"), `{"extends": ["b", "./extra.json"], "rules": {"k": "a"}}`)
	b := writeFile(t, packagePath(base, "b"), `{"rules": {"k": "b"}}`)
	extra := writeFile(t, filepath.Join(base, "node_modules", "eslint-config-a", "extra.json"), `{"rules": {"x": 1}}`)
	c := writeFile(t, packagePath(base, "c"), `{"rules": {"k": "c"}}`)

	set, tr, err := traverseRoot(t, base, root, nil)
	require.NoError(t, err)

	// Pre-order, each subtree completed before the next sibling
	assert.Equal(t, []string{root, a, b, extra, c}, sources(set))
	assert.Equal(t, []string{root, a, b, extra, c}, tr.Sources())
}

func TestTraversalSkipsUnitsWithoutRules(t *testing.T) {
	base := t.TempDir()

	root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": "a"}`)
	a := writeFile(t, packagePath(base, "a"), `{"extends": "b", "env": {"node": true}}`)
	b := writeFile(t, packagePath(base, "b"), `{"rules": {"semi": "error"}}`)

	set, tr, err := traverseRoot(t, base, root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{b}, sources(set))
	assert.Equal(t, []string{root, a, b}, tr.Sources())
}

func TestModulePluginFilter(t *testing.T) {
	base := t.TempDir()
	modules := newFakeModules()

	root := writeFile(t, filepath.Join(base, ".eslintrc"),
		`{"plugins": ["react"], "extends": ["react-mod", "vue-mod", "plain-mod", "vue-doc"]}`)

	reactMod := modules.add(t, packagePath(base, "react-mod"), map[string]any{
		"plugins": []any{"react", "jsx-a11y"},
		"rules":   map[string]any{"react/jsx-key": "error"},
	})
	modules.add(t, packagePath(base, "vue-mod"), map[string]any{
		"plugins": []any{"vue"},
		"rules":   map[string]any{"vue/no-v-html": "error"},
		"extends": []any{filepath.Join(base, "vue-base.js")},
	})
	vueBase := modules.add(t, filepath.Join(base, "vue-base.js"), map[string]any{
		"rules": map[string]any{"vue/html-indent": "warn"},
	})
	plainMod := modules.add(t, packagePath(base, "plain-mod"), map[string]any{
		"rules": map[string]any{"eqeqeq": "error"},
	})
	// Documents are never filtered
	vueDoc := writeFile(t, packagePath(base, "vue-doc"), `{"plugins": ["vue"], "rules": {"vue/max-len": "off"}}`)

	set, _, err := traverseRoot(t, base, root, modules)
	require.NoError(t, err)

	// vue-mod is excluded but still traversed
	assert.Equal(t, []string{reactMod, vueBase, plainMod, vueDoc}, sources(set))
}

func TestModuleFilterWithoutRootPlugins(t *testing.T) {
	base := t.TempDir()
	modules := newFakeModules()

	root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": ["foo-mod", "plain-mod"]}`)
	modules.add(t, packagePath(base, "foo-mod"), map[string]any{
		"plugins": []any{"foo"},
		"rules":   map[string]any{"foo/rule": "error"},
	})
	plain := modules.add(t, packagePath(base, "plain-mod"), map[string]any{
		"plugins": []any{},
		"rules":   map[string]any{"semi": "error"},
	})

	set, _, err := traverseRoot(t, base, root, modules)
	require.NoError(t, err)
	assert.Equal(t, []string{plain}, sources(set))
}

func TestTraversalCycles(t *testing.T) {
	t.Run("MutualExtends", func(t *testing.T) {
		base := t.TempDir()
		root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": "a"}`)
		writeFile(t, packagePath(base, "a"), `{"extends": "b", "rules": {"a": 1}}`)
		writeFile(t, packagePath(base, "b"), `{"extends": "a", "rules": {"b": 1}}`)

		_, _, err := traverseRoot(t, base, root, nil)
		assert.ErrorIs(t, err, ErrCyclicExtends)
		assert.Contains(t, err.Error(), packagePath(base, "a"))
	})

	t.Run("SelfExtends", func(t *testing.T) {
		base := t.TempDir()
		root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": "a"}`)
		writeFile(t, packagePath(base, "a"), `{"extends": "a"}`)

		_, _, err := traverseRoot(t, base, root, nil)
		assert.ErrorIs(t, err, ErrCyclicExtends)
	})

	t.Run("DiamondIsNotACycle", func(t *testing.T) {
		base := t.TempDir()
		root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": ["a", "c"]}`)
		a := writeFile(t, packagePath(base, "a"), `{"extends": "shared", "rules": {"a": 1}}`)
		shared := writeFile(t, packagePath(base, "shared"), `{"rules": {"s": 1}}`)
		c := writeFile(t, packagePath(base, "c"), `{"extends": "shared", "rules": {"c": 1}}`)

		set, tr, err := traverseRoot(t, base, root, nil)
		require.NoError(t, err)

		// The shared unit is visited once, through the first branch
		assert.Equal(t, []string{a, shared, c}, sources(set))
		assert.Equal(t, []string{root, a, shared, c}, tr.Sources())
	})
}

func TestTraversalAbortsOnLoadFailure(t *testing.T) {
	base := t.TempDir()
	root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": ["a", "missing"], "rules": {"semi": 1}}`)
	writeFile(t, packagePath(base, "a"), `{"rules": {"a": 1}}`)

	set, _, err := traverseRoot(t, base, root, nil)
	assert.ErrorIs(t, err, ErrUnreadableUnit)
	assert.Nil(t, set)
}

func TestTraversalHonorsCancellation(t *testing.T) {
	base := t.TempDir()
	root := writeFile(t, filepath.Join(base, ".eslintrc"), `{"extends": "a"}`)
	writeFile(t, packagePath(base, "a"), `{"rules": {"a": 1}}`)

	loader := NewLoader(nil)
	unit, err := loader.Load(context.Background(), root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewTraversal(loader, NewResolver(base, nil), nil).Run(ctx, unit)
	assert.ErrorIs(t, err, context.Canceled)
}
