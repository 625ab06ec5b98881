// File: lixenwraith/flatlint/timing.go
package flatlint

import "time"

// Core timing constants for production use.
const (
	MinDebounce          = 50 * time.Millisecond  // Hard floor for change coalescence
	DefaultDebounce      = 500 * time.Millisecond // File change coalescence period
	DefaultModuleTimeout = 30 * time.Second       // Maximum duration of one module evaluation
)
