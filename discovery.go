// File: lixenwraith/flatlint/discovery.go
package flatlint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCandidates lists the root configuration names in search order
func DefaultCandidates() []string {
	return []string{".eslintrc", ".eslintrc.json", ".eslintrc.yaml", ".eslintrc.yml"}
}

// FindRoot returns the path of the first candidate that exists as a regular
// file in dir. No match is ErrMissingRootConfig.
func FindRoot(dir string, candidates []string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: could not find %s", ErrMissingRootConfig, strings.Join(candidates, " nor "))
}
