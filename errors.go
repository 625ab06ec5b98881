// File: lixenwraith/flatlint/errors.go
package flatlint

import "errors"

// Failure taxonomy. Every load failure anywhere in a traversal aborts the run,
// callers distinguish them with errors.Is.
var (
	// ErrMissingRootConfig is returned when none of the candidate root file names exist
	ErrMissingRootConfig = errors.New("root configuration not found")

	// ErrUnreadableUnit is returned when a configuration file cannot be read
	ErrUnreadableUnit = errors.New("unreadable configuration unit")

	// ErrMalformedDocument is returned when a cleaned document is not valid structured data
	ErrMalformedDocument = errors.New("malformed configuration document")

	// ErrModuleLoadFailure is returned when an executable module cannot be evaluated
	// or does not export a configuration object
	ErrModuleLoadFailure = errors.New("configuration module load failure")

	// ErrCyclicExtends is returned when a unit extends one of its own ancestors
	ErrCyclicExtends = errors.New("cyclic extends")
)
