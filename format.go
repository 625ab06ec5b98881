// File: lixenwraith/flatlint/format.go
package flatlint

import "regexp"

// Format tags the representation of a configuration unit
type Format int

const (
	// FormatDocument is declarative text (JSONC or YAML)
	FormatDocument Format = iota
	// FormatModule is an executable unit whose default export is the configuration
	FormatModule
)

// String returns the lower-case name of the format
func (f Format) String() string {
	switch f {
	case FormatDocument:
		return "document"
	case FormatModule:
		return "module"
	default:
		return "unknown"
	}
}

// exportMarker matches CommonJS and ES module default exports
var exportMarker = regexp.MustCompile(`module\.exports|export\s+default`)

// Classify decides whether raw text is a document or a module.
// This is a syntactic sniff: a document carrying the marker inside a string
// value is classified as a module.
func Classify(content []byte) Format {
	if exportMarker.Match(content) {
		return FormatModule
	}
	return FormatDocument
}
