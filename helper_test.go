// File: lixenwraith/flatlint/helper_test.go
package flatlint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates path and its parent directories with content
func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// packagePath returns the root configuration path of a named shareable config
func packagePath(base, name string) string {
	return filepath.Join(base, DefaultDependencyDir, DefaultPackagePrefix+name, DefaultPackageRoot)
}

// fakeModules serves module exports from memory, keyed by absolute path
type fakeModules struct {
	exports  map[string]map[string]any
	resolved map[string]string // "fromDir|ref" -> path
	loads    []string
}

func newFakeModules() *fakeModules {
	return &fakeModules{
		exports:  make(map[string]map[string]any),
		resolved: make(map[string]string),
	}
}

// add writes a module marker file at path and registers its export
func (m *fakeModules) add(t *testing.T, path string, export map[string]any) string {
	t.Helper()
	writeFile(t, path, "module.exports = {};\n")
	m.exports[path] = export
	return path
}

func (m *fakeModules) LoadModule(_ context.Context, path string) (map[string]any, error) {
	m.loads = append(m.loads, path)
	export, ok := m.exports[path]
	if !ok {
		return nil, fmt.Errorf("cannot find module '%s'", path)
	}
	return export, nil
}

func (m *fakeModules) ResolveModule(_ context.Context, ref, fromDir string) (string, error) {
	if path, ok := m.resolved[fromDir+"|"+ref]; ok {
		return path, nil
	}
	return "", fmt.Errorf("cannot find module '%s' from '%s'", ref, fromDir)
}
