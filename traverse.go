// File: lixenwraith/flatlint/traverse.go
package flatlint

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RuleEntry records the rules accepted from one unit
type RuleEntry struct {
	Source string
	Rules  map[string]any
}

// RuleSet is the ordered sequence of accepted entries, root first, pre-order
type RuleSet []RuleEntry

// Traversal walks the extends graph of one root configuration.
// A Traversal is single-use and not safe for concurrent use.
type Traversal struct {
	loader   *Loader
	resolver *Resolver
	logger   *zap.Logger

	rootPlugins map[string]bool
	visited     map[string]bool // fully visited locations
	sources     []string        // every location loaded, in visit order
}

// NewTraversal creates a Traversal over the given loader and resolver
func NewTraversal(loader *Loader, resolver *Resolver, logger *zap.Logger) *Traversal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Traversal{
		loader:   loader,
		resolver: resolver,
		logger:   logger,
		visited:  make(map[string]bool),
	}
}

// Run visits the already loaded root and everything it extends.
// The root's plugins define the capability set used by the module filter.
func (t *Traversal) Run(ctx context.Context, root *Unit) (RuleSet, error) {
	t.rootPlugins = make(map[string]bool, len(root.Plugins))
	for _, p := range root.Plugins {
		t.rootPlugins[p] = true
	}
	t.sources = append(t.sources, root.Source)

	return t.visit(ctx, root, []string{root.Source})
}

// Sources returns every location loaded during Run, in visit order
func (t *Traversal) Sources() []string {
	return t.sources
}

// visit returns the entries of unit and its extended subtrees in pre-order.
// chain holds the locations from the root down to unit.
func (t *Traversal) visit(ctx context.Context, unit *Unit, chain []string) (RuleSet, error) {
	var set RuleSet

	if t.accepts(unit) {
		if unit.HasRules {
			set = append(set, RuleEntry{Source: unit.Source, Rules: unit.Rules})
		}
	} else {
		t.logger.Debug("Excluded by plugin filter",
			zap.String("source", unit.Source),
			zap.Strings("plugins", unit.Plugins))
	}

	for _, ref := range unit.Extends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		location, err := t.resolver.Resolve(ctx, ref, unit)
		if err != nil {
			return nil, err
		}

		// Ancestors on the current chain form a cycle
		for _, ancestor := range chain {
			if ancestor == location {
				return nil, fmt.Errorf("%w: %s -> %s", ErrCyclicExtends, strings.Join(chain, " -> "), location)
			}
		}

		// Already reached through another branch, its first visit outranks any later one
		if t.visited[location] {
			t.logger.Debug("Skipping revisit", zap.String("source", location))
			continue
		}

		t.logger.Debug("Recursing into", zap.String("source", location))
		child, err := t.loader.Load(ctx, location)
		if err != nil {
			return nil, err
		}
		t.sources = append(t.sources, location)

		childSet, err := t.visit(ctx, child, append(chain[:len(chain):len(chain)], location))
		if err != nil {
			return nil, err
		}
		set = append(set, childSet...)
	}

	t.visited[unit.Source] = true
	return set, nil
}

// accepts applies the plugin inclusion filter. Documents are always accepted.
func (t *Traversal) accepts(unit *Unit) bool {
	if unit.Format != FormatModule {
		return true
	}
	return len(unit.Plugins) == 0 || unit.declaresPlugin(t.rootPlugins)
}
