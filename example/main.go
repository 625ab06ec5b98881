// File: lixenwraith/flatlint/example/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/flatlint"
)

const rootConfig = `{
  // project level overrides
  "root": true,
  "extends": "company",
  "rules": {
    "semi": ["error", "always"],
  }
}`

const companyConfig = `{
  "extends": ["base", "./strict"],
  "rules": {"semi": "off", "quotes": ["error", "single"]}
}`

const strictConfig = `{"rules": {"eqeqeq": "error", "max-depth": ["error", 4]}}`

const baseConfig = `{"rules": {"quotes": ["warn", "double"], "no-console": "warn"}}`

func main() {
	// =========================================================================
	// PART 1: PROJECT SETUP
	// Lay out a project with a root configuration and installed packages.
	// =========================================================================
	dir, err := os.MkdirTemp("", "flatlint-example")
	if err != nil {
		log.Fatalf("Failed to create project directory: %v", err)
	}
	defer os.RemoveAll(dir)

	files := map[string]string{
		".eslintrc": rootConfig,
		"node_modules/eslint-config-company/.eslintrc": companyConfig,
		"node_modules/eslint-config-company/strict":    strictConfig,
		"node_modules/eslint-config-base/.eslintrc":    baseConfig,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	// =========================================================================
	// PART 2: FLATTEN
	// =========================================================================
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	flattener := flatlint.NewBuilder().
		WithBaseDir(dir).
		WithModuleLoader(nil).
		WithLogger(logger).
		WithDuplicateHandler(func(d flatlint.Duplicate) {
			fmt.Printf("  %s: %v replaced by %v from %s\n", d.Rule, d.Old, d.New, d.Source)
		}).
		MustBuild()

	fmt.Println("Duplicates:")
	res, err := flattener.Run(context.Background())
	if err != nil {
		log.Fatalf("Flatten failed: %v", err)
	}

	out, err := os.ReadFile(res.OutputPath)
	if err != nil {
		log.Fatalf("Failed to read output: %v", err)
	}
	fmt.Printf("\nMerged %d rule occurrences into %s:\n%s\n", res.Count, res.OutputPath, out)

	// =========================================================================
	// PART 3: WATCH
	// Change an extended configuration and observe the rerun.
	// =========================================================================
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	runs := make(chan *flatlint.Result, 4)
	go func() {
		_ = flattener.Watch(ctx, flatlint.WatchOptions{
			Debounce: 100 * time.Millisecond,
			OnResult: func(res *flatlint.Result) { runs <- res },
			OnError:  func(err error) { log.Printf("Run failed: %v", err) },
		})
	}()

	<-runs
	strict := filepath.Join(dir, "node_modules/eslint-config-company/strict")
	if err := os.WriteFile(strict, []byte(`{"rules": {"eqeqeq": "warn"}}`), 0644); err != nil {
		log.Fatalf("Failed to update %s: %v", strict, err)
	}

	select {
	case res := <-runs:
		fmt.Printf("Rerun after change, eqeqeq is now %v\n", res.Rules()["eqeqeq"])
	case <-ctx.Done():
		fmt.Println("No rerun observed before timeout")
	}
}
