// File: lixenwraith/flatlint/node.go
package flatlint

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// infinityMarker carries non-finite numbers across JSON.stringify, which
// would otherwise turn them into null
const infinityMarker = "@@flatlint:Infinity@@"

// loadScript imports a module and prints its default export as JSON on stdout.
// Infinite values are emitted as overflowing literals that decode as ±Inf.
const loadScript = `
import { pathToFileURL } from 'node:url';
const mod = await import(pathToFileURL(process.argv[1]).href);
const cfg = mod.default === undefined ? null : mod.default;
const out = JSON.stringify(cfg, (key, value) => {
  if (value === Infinity) return '+` + infinityMarker + `';
  if (value === -Infinity) return '-` + infinityMarker + `';
  return value;
});
process.stdout.write(out
  .split('"+` + infinityMarker + `"').join('1e999')
  .split('"-` + infinityMarker + `"').join('-1e999'));
`

// resolveScript resolves a module reference from a directory
const resolveScript = `process.stdout.write(require.resolve(process.argv[1], { paths: [process.argv[2]] }));`

// NodeModuleLoader evaluates configuration modules with a node binary
type NodeModuleLoader struct {
	// Binary is the node executable name or path
	Binary string

	// Dir is the working directory of the node process
	Dir string

	// Timeout bounds a single evaluation, zero means no limit
	Timeout time.Duration
}

// NewNodeModuleLoader creates a loader running binary in dir
func NewNodeModuleLoader(binary, dir string) *NodeModuleLoader {
	return &NodeModuleLoader{
		Binary:  binary,
		Dir:     dir,
		Timeout: DefaultModuleTimeout,
	}
}

// LoadModule evaluates the module at path and decodes its default export
func (n *NodeModuleLoader) LoadModule(ctx context.Context, path string) (map[string]any, error) {
	out, err := n.exec(ctx, "--input-type=module", "-e", loadScript, path)
	if err != nil {
		return nil, err
	}

	raw, err := decodeJSON(out)
	if err != nil {
		return nil, fmt.Errorf("default export is not a configuration object: %w", err)
	}
	return raw, nil
}

// ResolveModule resolves ref with node's module resolution from fromDir
func (n *NodeModuleLoader) ResolveModule(ctx context.Context, ref, fromDir string) (string, error) {
	out, err := n.exec(ctx, "-e", resolveScript, ref, fromDir)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// exec runs node with args and returns stdout
func (n *NodeModuleLoader) exec(ctx context.Context, args ...string) ([]byte, error) {
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	binary := n.Binary
	if binary == "" {
		binary = "node"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = n.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := errorLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", binary, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", binary, err)
	}
	return stdout.Bytes(), nil
}

// errorLine picks the most telling line of node's stderr: the first one naming
// an error, else the first non-empty one
func errorLine(s string) string {
	first := ""
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "Error:") || strings.Contains(line, "Error [") {
			return line
		}
		if first == "" {
			first = line
		}
	}
	return first
}
