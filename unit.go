// File: lixenwraith/flatlint/unit.go
package flatlint

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Reserved top-level field names of a configuration unit
const (
	fieldRules   = "rules"
	fieldExtends = "extends"
	fieldPlugins = "plugins"
)

// Unit is one loaded configuration source, either a document or a module
type Unit struct {
	// Source is the resolved location the unit was loaded from
	Source string

	// Format is computed once when the unit is loaded
	Format Format

	// Rules maps rule names to their literal values
	Rules map[string]any

	// HasRules reports whether the unit declared a rules field at all
	HasRules bool

	// Extends holds the inheritance references in declared order
	Extends []string

	// Plugins holds the declared plugin names, possibly empty
	Plugins []string

	// Raw is the complete decoded configuration object
	Raw map[string]any
}

// unitFields is the decode target for the fields the engine interprets
type unitFields struct {
	Rules   map[string]any `mapstructure:"rules"`
	Extends []string       `mapstructure:"extends"`
	Plugins []string       `mapstructure:"plugins"`
}

// newUnit builds a Unit from a decoded configuration object.
// A single extends string is promoted to a one-element list.
func newUnit(source string, format Format, raw map[string]any) (*Unit, error) {
	if raw == nil {
		raw = make(map[string]any)
	}

	var fields unitFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fields,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}

	// Decode only the interpreted fields, everything else passes through in Raw
	section := make(map[string]any, 3)
	for _, key := range []string{fieldRules, fieldExtends, fieldPlugins} {
		if v, ok := raw[key]; ok && v != nil {
			section[key] = v
		}
	}
	if err := decoder.Decode(section); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformedDocument, source, err)
	}

	for key := range fields.Rules {
		if key == "" {
			return nil, fmt.Errorf("%w %s: empty rule name", ErrMalformedDocument, source)
		}
	}

	_, hasRules := section[fieldRules]

	return &Unit{
		Source:   source,
		Format:   format,
		Rules:    fields.Rules,
		HasRules: hasRules,
		Extends:  fields.Extends,
		Plugins:  fields.Plugins,
		Raw:      raw,
	}, nil
}

// declaresPlugin reports whether any of the unit's plugins is in the given set
func (u *Unit) declaresPlugin(set map[string]bool) bool {
	for _, p := range u.Plugins {
		if set[p] {
			return true
		}
	}
	return false
}
