// File: lixenwraith/flatlint/doc.go

// Package flatlint flattens a hierarchical ESLint-style configuration into a
// single self-contained configuration: the root configuration and every unit
// it transitively extends are reduced to one rules mapping with no remaining
// extends references.
//
// Features:
//   - Root discovery over a fixed, ordered list of candidate file names
//   - JSONC documents (comments and trailing commas) and YAML documents
//   - Executable configuration modules evaluated through a pluggable ModuleLoader
//   - Deterministic depth-first traversal with a cycle guard
//   - Precedence-preserving merge with duplicate and provenance reporting
//   - Infinite numeric values replaced by a finite sentinel on output
//   - Layered tool settings (flags, environment, TOML file, defaults)
//
// Quick Start:
//
//	f, err := flatlint.NewBuilder().
//	    WithBaseDir(".").
//	    WithModuleLoader(flatlint.NewNodeModuleLoader("node", ".")).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := f.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Wrote %d rules to %s\n", res.Count, res.OutputPath)
//
// Precedence (highest to lowest):
//  1. Rules of the root configuration
//  2. Rules of units visited earlier in depth-first pre-order
//  3. Rules of units visited later
//
// A unit listed earlier in an extends array therefore outranks a unit listed
// after it, which is the reverse of the "last listed wins" convention used by
// ESLint itself.
package flatlint
