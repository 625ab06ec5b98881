// File: lixenwraith/flatlint/merge.go
package flatlint

import "sort"

// Duplicate describes a rule value about to be overwritten during the merge
type Duplicate struct {
	Rule   string
	Old    any
	New    any
	Source string // unit whose value overwrites Old
}

// DuplicateFunc observes duplicates as they are found
type DuplicateFunc func(d Duplicate)

// MergeOptions configures Merge
type MergeOptions struct {
	// OnDuplicate is called for every overwrite of an existing key, may be nil
	OnDuplicate DuplicateFunc
}

// MergeResult holds the flat rule mapping and merge statistics
type MergeResult struct {
	// Rules is the flat rule mapping
	Rules map[string]any

	// Origins maps each rule to the source whose value won
	Origins map[string]string

	// Duplicates lists every overwrite in merge order
	Duplicates []Duplicate

	// Count is the number of rule key occurrences processed, not distinct keys
	Count int
}

// Merge collapses a pre-order RuleSet into one flat mapping.
// The set is applied in reverse, so the root (first entry) is applied last
// and wins, and among the rest an earlier entry outranks a later one.
func Merge(set RuleSet, opts MergeOptions) *MergeResult {
	result := &MergeResult{
		Rules:   make(map[string]any),
		Origins: make(map[string]string),
	}

	for i := len(set) - 1; i >= 0; i-- {
		entry := set[i]

		// Stable key order keeps duplicate reports deterministic
		keys := make([]string, 0, len(entry.Rules))
		for key := range entry.Rules {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := entry.Rules[key]
			result.Count++

			if old, exists := result.Rules[key]; exists {
				dup := Duplicate{Rule: key, Old: old, New: value, Source: entry.Source}
				result.Duplicates = append(result.Duplicates, dup)
				if opts.OnDuplicate != nil {
					opts.OnDuplicate(dup)
				}
			}

			result.Rules[key] = value
			result.Origins[key] = entry.Source
		}
	}

	return result
}
