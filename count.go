// File: lixenwraith/flatlint/count.go
package flatlint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleCount summarizes a flattened configuration document
type RuleCount struct {
	// Rules holds the rule names, sorted
	Rules []string

	// Properties holds the top-level field names in document order
	Properties []string
}

// CountRules reads an already flattened document and lists its rules and
// top-level properties. The document must contain a rules object.
func CountRules(path string) (*RuleCount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableUnit, path, err)
	}

	var (
		properties []string
		rules      map[string]any
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		properties, rules, err = inspectYAML(data)
	default:
		properties, rules, err = inspectJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMalformedDocument, path, err)
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	return &RuleCount{Rules: names, Properties: properties}, nil
}

// inspectJSON returns the ordered top-level keys and the rules object
func inspectJSON(data []byte) ([]string, map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	rules, err := rulesObject(doc)
	if err != nil {
		return nil, nil, err
	}

	// Second pass over the token stream, maps do not keep key order
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	var properties []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		properties = append(properties, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, nil, err
		}
	}
	return properties, rules, nil
}

// inspectYAML returns the ordered top-level keys and the rules object
func inspectYAML(data []byte) ([]string, map[string]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, nil, err
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("top-level value is not a mapping")
	}

	var doc map[string]any
	if err := node.Decode(&doc); err != nil {
		return nil, nil, err
	}
	rules, err := rulesObject(doc)
	if err != nil {
		return nil, nil, err
	}

	mapping := node.Content[0]
	properties := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		properties = append(properties, mapping.Content[i].Value)
	}
	return properties, rules, nil
}

// rulesObject extracts the rules field, which must be an object
func rulesObject(doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return nil, fmt.Errorf("top-level value is not an object")
	}
	raw, ok := doc[fieldRules]
	if !ok {
		return nil, fmt.Errorf("no rules field")
	}
	rules, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rules field is not an object")
	}
	return rules, nil
}
