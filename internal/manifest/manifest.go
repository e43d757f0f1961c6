// Package manifest provides declarative structural checks for artifact
// directories. A manifest is an ordered list of (glob pattern, failure
// message) pairs; the checker reports the first violated entry.
package manifest

import (
	"os"
	"path/filepath"
)

// Entry is a single required path pattern and the message reported when
// the pattern does not resolve to an existing path
type Entry struct {
	// Pattern is a glob pattern resolved relative to the base directory.
	// It may name a directory segment (e.g. "taxa_summary_plots/js").
	Pattern string
	// Message is the failure message surfaced when the pattern fails
	Message string
}

// Manifest is an ordered list of entries. Entries are evaluated strictly
// in declaration order, which determines the message that surfaces when
// multiple problems coexist.
type Manifest []Entry

// Check evaluates each entry of the manifest against baseDir in order and
// returns (false, message) for the first entry whose pattern does not
// resolve to an existing path. No further entries are evaluated after a
// failure. If every entry resolves it returns (true, "").
func Check(baseDir string, m Manifest) (bool, string) {
	for _, entry := range m {
		matches, err := filepath.Glob(filepath.Join(baseDir, entry.Pattern))
		if err != nil {
			// Malformed pattern; treat as unmatched
			return false, entry.Message
		}
		if len(matches) == 0 {
			return false, entry.Message
		}
		// Glob may return a stale directory entry; confirm the first
		// match still exists
		if _, err := os.Stat(matches[0]); err != nil {
			return false, entry.Message
		}
	}
	return true, ""
}
