// File: lixenwraith/flatlint/loader.go
package flatlint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ModuleLoader evaluates executable configuration modules.
// Implementations perform the host runtime's own module resolution.
type ModuleLoader interface {
	// LoadModule evaluates the module at path and returns its default export
	LoadModule(ctx context.Context, path string) (map[string]any, error)

	// ResolveModule resolves a module reference relative to fromDir
	ResolveModule(ctx context.Context, ref, fromDir string) (string, error)
}

// Loader materializes configuration units from disk
type Loader struct {
	modules ModuleLoader
}

// NewLoader creates a Loader. A nil ModuleLoader disables module support,
// loading a module then fails with ErrModuleLoadFailure.
func NewLoader(modules ModuleLoader) *Loader {
	return &Loader{modules: modules}
}

// Load reads, classifies and decodes the unit at path
func (l *Loader) Load(ctx context.Context, path string) (*Unit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableUnit, path, err)
	}

	format := Classify(content)

	var raw map[string]any
	switch format {
	case FormatModule:
		raw, err = l.loadModule(ctx, path)
	default:
		raw, err = parseDocument(path, content)
	}
	if err != nil {
		return nil, err
	}

	return newUnit(path, format, raw)
}

// loadModule delegates evaluation to the configured ModuleLoader
func (l *Loader) loadModule(ctx context.Context, path string) (map[string]any, error) {
	if l.modules == nil {
		return nil, fmt.Errorf("%w %s: module support is disabled", ErrModuleLoadFailure, path)
	}

	exported, err := l.modules.LoadModule(ctx, path)
	if err != nil {
		if errors.Is(err, ErrModuleLoadFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %w", ErrModuleLoadFailure, path, err)
	}
	if exported == nil {
		return nil, fmt.Errorf("%w %s: no default export", ErrModuleLoadFailure, path)
	}
	return exported, nil
}

// parseDocument decodes a document by extension: YAML for .yaml/.yml, JSONC otherwise
func parseDocument(path string, content []byte) (map[string]any, error) {
	var (
		raw map[string]any
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = decodeYAML(content)
	default:
		raw, err = decodeJSON(Clean(content))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformedDocument, path, err)
	}
	return raw, nil
}

// Clean removes trailing commas before a closing brace or bracket and strips
// comments, leaving strict JSON. Offsets are preserved so parse errors still
// point at the original text.
func Clean(content []byte) []byte {
	return jsonc.ToJSON(content)
}

// decodeJSON parses a single JSON object, keeping numbers as json.Number
func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	// Reject trailing content after the top-level value
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected content after top-level object")
	}

	if raw == nil {
		return nil, fmt.Errorf("top-level value is not an object")
	}
	return raw, nil
}

// decodeYAML parses a YAML mapping document
func decodeYAML(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("top-level value is not a mapping")
	}
	return raw, nil
}
