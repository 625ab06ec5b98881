// File: lixenwraith/flatlint/builder.go
package flatlint

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Builder provides a fluent interface for building a Flattener
type Builder struct {
	settings    Settings
	modules     ModuleLoader
	modulesSet  bool
	logger      *zap.Logger
	onDuplicate DuplicateFunc
	err         error
}

// NewBuilder creates a new builder with default settings
func NewBuilder() *Builder {
	return &Builder{
		settings: DefaultSettings(),
	}
}

// WithSettings replaces all settings
func (b *Builder) WithSettings(s Settings) *Builder {
	b.settings = s
	return b
}

// WithBaseDir sets the working directory the root is searched in
func (b *Builder) WithBaseDir(dir string) *Builder {
	if dir == "" {
		b.err = fmt.Errorf("base directory cannot be empty")
		return b
	}
	b.settings.BaseDir = dir
	return b
}

// WithCandidates sets the root configuration names in search order
func (b *Builder) WithCandidates(names ...string) *Builder {
	b.settings.Candidates = names
	return b
}

// WithSentinel sets the value substituted for infinite numbers
func (b *Builder) WithSentinel(sentinel int64) *Builder {
	b.settings.Sentinel = sentinel
	return b
}

// WithOutputFormat sets the output encoding
func (b *Builder) WithOutputFormat(format OutputFormat) *Builder {
	b.settings.OutputFormat = string(format)
	return b
}

// WithModuleLoader sets the module evaluation facility.
// Passing nil disables module support.
func (b *Builder) WithModuleLoader(l ModuleLoader) *Builder {
	b.modules = l
	b.modulesSet = true
	return b
}

// WithLogger sets the logger, nil keeps the no-op logger
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// WithDuplicateHandler adds an observer for overwritten rule values
func (b *Builder) WithDuplicateHandler(fn DuplicateFunc) *Builder {
	b.onDuplicate = fn
	return b
}

// Build creates the Flattener. Without an explicit module loader a node
// backed loader is used, configured from the settings.
func (b *Builder) Build() (*Flattener, error) {
	if b.err != nil {
		return nil, b.err
	}

	if err := b.settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	baseDir, err := filepath.Abs(b.settings.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory '%s': %w", b.settings.BaseDir, err)
	}

	modules := b.modules
	if !b.modulesSet {
		node := NewNodeModuleLoader(b.settings.NodeBinary, baseDir)
		node.Timeout = b.settings.ModuleTimeout
		modules = node
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Flattener{
		settings:    b.settings,
		baseDir:     baseDir,
		modules:     modules,
		logger:      logger,
		onDuplicate: b.onDuplicate,
	}, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Flattener {
	f, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("flattener build failed: %v", err))
	}
	return f
}
