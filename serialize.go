// File: lixenwraith/flatlint/serialize.go
package flatlint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSentinel replaces infinite values on output (2^53-1, the largest
// integer a double represents exactly)
const DefaultSentinel int64 = 1<<53 - 1

// OutputFormat selects the encoding of the flattened configuration
type OutputFormat string

const (
	// OutputAuto picks YAML for a YAML root and JSON otherwise
	OutputAuto OutputFormat = "auto"
	// OutputJSON encodes indented JSON
	OutputJSON OutputFormat = "json"
	// OutputYAML encodes YAML
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "", OutputAuto:
		return OutputAuto, nil
	case OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q, must be 'auto', 'json' or 'yaml'", s)
	}
}

// resolveFor settles OutputAuto against the root file name
func (f OutputFormat) resolveFor(rootName string) OutputFormat {
	if f != OutputAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(rootName)) {
	case ".yaml", ".yml":
		return OutputYAML
	default:
		return OutputJSON
	}
}

// Finalize returns a copy of root with extends and rules removed and the
// merged rules assigned. root is not modified.
func Finalize(root map[string]any, rules map[string]any) map[string]any {
	final := make(map[string]any, len(root)+1)
	for k, v := range root {
		if k == fieldExtends || k == fieldRules {
			continue
		}
		final[k] = v
	}
	if rules == nil {
		rules = make(map[string]any)
	}
	final[fieldRules] = rules
	return final
}

// Encode serializes doc, substituting infinite numbers with ±sentinel
func Encode(doc map[string]any, format OutputFormat, sentinel int64) ([]byte, error) {
	clean := sanitize(doc, sentinel)

	var buf bytes.Buffer
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(clean); err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
	case OutputJSON, OutputAuto, "":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(clean); err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return buf.Bytes(), nil
}

// sanitize deep-copies v, replacing values with no strict numeric encoding.
// json.Number values are normalized to int64 or float64 on the way.
func sanitize(v any, sentinel int64) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = sanitize(item, sentinel)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sanitize(item, sentinel)
		}
		return out
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64() // overflow yields ±Inf alongside the range error
		return sanitizeFloat(f, sentinel)
	case float64:
		return sanitizeFloat(val, sentinel)
	case float32:
		return sanitizeFloat(float64(val), sentinel)
	default:
		return v
	}
}

// sanitizeFloat maps ±Inf to ±sentinel and NaN to null
func sanitizeFloat(f float64, sentinel int64) any {
	switch {
	case math.IsInf(f, 1):
		return sentinel
	case math.IsInf(f, -1):
		return -sentinel
	case math.IsNaN(f):
		return nil
	default:
		return f
	}
}

// OutputName derives the output file name from the root file name by
// removing its leading dot, so the root is never overwritten
func OutputName(rootName string) string {
	dir, base := filepath.Split(rootName)
	return dir + strings.TrimPrefix(base, ".")
}
