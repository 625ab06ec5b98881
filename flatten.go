// File: lixenwraith/flatlint/flatten.go
package flatlint

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Flattener resolves a root configuration into one flat configuration
type Flattener struct {
	settings    Settings
	baseDir     string
	modules     ModuleLoader
	logger      *zap.Logger
	onDuplicate DuplicateFunc
}

// Result describes one flattening run
type Result struct {
	// RootPath is the discovered root configuration
	RootPath string

	// RootPlugins are the root's top-level plugins used by the module filter
	RootPlugins []string

	// Config is the final configuration, without extends
	Config map[string]any

	// Origins maps each final rule to the source whose value won
	Origins map[string]string

	// Duplicates lists every overwritten rule value in merge order
	Duplicates []Duplicate

	// Count is the number of rule occurrences merged
	Count int

	// Sources lists every location loaded, in visit order
	Sources []string

	// OutputPath and OutputFormat are set by Run
	OutputPath   string
	OutputFormat OutputFormat
}

// Rules returns the merged rule mapping of the final configuration
func (r *Result) Rules() map[string]any {
	rules, _ := r.Config[fieldRules].(map[string]any)
	return rules
}

// Settings returns the settings the flattener was built with
func (f *Flattener) Settings() Settings {
	return f.settings
}

// BaseDir returns the absolute working directory of the flattener
func (f *Flattener) BaseDir() string {
	return f.baseDir
}

// Flatten discovers the root configuration, traverses everything it extends
// and merges the rules. Nothing is written to disk.
func (f *Flattener) Flatten(ctx context.Context) (*Result, error) {
	rootPath, err := FindRoot(f.baseDir, f.settings.Candidates)
	if err != nil {
		return nil, err
	}
	f.logger.Info("Found root configuration", zap.String("path", rootPath))

	loader := NewLoader(f.modules)
	root, err := loader.Load(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	if len(root.Plugins) > 0 {
		f.logger.Info("Found top level plugins", zap.Strings("plugins", root.Plugins))
	} else {
		f.logger.Info("Found no top level plugins")
	}

	resolver := &Resolver{
		BaseDir:       f.baseDir,
		DependencyDir: f.settings.DependencyDir,
		PackagePrefix: f.settings.PackagePrefix,
		PackageRoot:   f.settings.PackageRoot,
		Modules:       f.modules,
	}

	traversal := NewTraversal(loader, resolver, f.logger)
	set, err := traversal.Run(ctx, root)
	if err != nil {
		return nil, err
	}

	merged := Merge(set, MergeOptions{OnDuplicate: f.reportDuplicate})

	return &Result{
		RootPath:    rootPath,
		RootPlugins: root.Plugins,
		Config:      Finalize(root.Raw, merged.Rules),
		Origins:     merged.Origins,
		Duplicates:  merged.Duplicates,
		Count:       merged.Count,
		Sources:     traversal.Sources(),
	}, nil
}

// Run flattens and writes the result next to the root configuration.
// A failure anywhere leaves no output behind.
func (f *Flattener) Run(ctx context.Context) (*Result, error) {
	res, err := f.Flatten(ctx)
	if err != nil {
		return nil, err
	}

	outputPath := OutputName(res.RootPath)
	if filepath.Clean(outputPath) == filepath.Clean(res.RootPath) {
		return nil, fmt.Errorf("output for '%s' would overwrite the root configuration", res.RootPath)
	}

	format, err := ParseOutputFormat(f.settings.OutputFormat)
	if err != nil {
		return nil, err
	}
	format = format.resolveFor(res.RootPath)

	data, err := Encode(res.Config, format, f.settings.Sentinel)
	if err != nil {
		return nil, err
	}

	if err := atomicWriteFile(outputPath, data); err != nil {
		return nil, fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}

	res.OutputPath = outputPath
	res.OutputFormat = format
	f.logger.Info("Wrote rules",
		zap.Int("count", res.Count),
		zap.Int("distinct", len(res.Rules())),
		zap.String("path", outputPath))

	return res, nil
}

// reportDuplicate logs and forwards a duplicate rule
func (f *Flattener) reportDuplicate(d Duplicate) {
	if f.settings.ShowDuplicates {
		f.logger.Info("Found duplicate rule",
			zap.String("rule", d.Rule),
			zap.Any("existing", d.Old),
			zap.Any("new", d.New),
			zap.String("from", d.Source))
	}
	if f.onDuplicate != nil {
		f.onDuplicate(d)
	}
}
