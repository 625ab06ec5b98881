// File: lixenwraith/flatlint/builder_test.go
package flatlint

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		f, err := NewBuilder().Build()
		require.NoError(t, err)

		abs, err := filepath.Abs(".")
		require.NoError(t, err)
		assert.Equal(t, abs, f.BaseDir())
		assert.Equal(t, DefaultSettings(), f.Settings())

		node, ok := f.modules.(*NodeModuleLoader)
		require.True(t, ok, "default module loader should be node backed")
		assert.Equal(t, "node", node.Binary)
		assert.Equal(t, abs, node.Dir)
		assert.Equal(t, DefaultModuleTimeout, node.Timeout)
	})

	t.Run("NodeLoaderFollowsSettings", func(t *testing.T) {
		s := DefaultSettings()
		s.NodeBinary = "/opt/node/bin/node"
		s.ModuleTimeout = 5 * time.Second

		f, err := NewBuilder().WithSettings(s).Build()
		require.NoError(t, err)

		node := f.modules.(*NodeModuleLoader)
		assert.Equal(t, "/opt/node/bin/node", node.Binary)
		assert.Equal(t, 5*time.Second, node.Timeout)
	})

	t.Run("ModulesDisabled", func(t *testing.T) {
		f, err := NewBuilder().WithModuleLoader(nil).Build()
		require.NoError(t, err)
		assert.Nil(t, f.modules)
	})

	t.Run("Overrides", func(t *testing.T) {
		dir := t.TempDir()
		f, err := NewBuilder().
			WithBaseDir(dir).
			WithCandidates(".lintrc").
			WithSentinel(99).
			WithOutputFormat(OutputYAML).
			Build()
		require.NoError(t, err)

		s := f.Settings()
		assert.Equal(t, []string{".lintrc"}, s.Candidates)
		assert.Equal(t, int64(99), s.Sentinel)
		assert.Equal(t, string(OutputYAML), s.OutputFormat)
		assert.Equal(t, dir, f.BaseDir())
	})

	t.Run("InvalidOutputFormat", func(t *testing.T) {
		_, err := NewBuilder().WithOutputFormat(OutputFormat("xml")).Build()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "settings validation failed")
	})
}
