// Package domain contains the core change-impact analysis and test-selection
// logic.
package domain

import (
	"path/filepath"
	"sort"
	"strings"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

const (
	testFilePrefix = "test_"
	pythonFileExt  = ".py"
)

// ResolveImpact returns the names of callables whose span contains at least
// one changed line. Both span bounds are inclusive: a change on the last
// line of a function impacts it, one line past does not. An empty changed
// set means the diff produced no usable information for the file, so no
// impact is claimed rather than guessed.
func ResolveImpact(spans []m.UnitSpan, changed m.LineSet) []string {
	if len(spans) == 0 || len(changed) == 0 {
		return nil
	}

	var names []string

	for _, span := range spans {
		for line := range changed {
			if span.Contains(line) {
				names = append(names, span.Name)
				break
			}
		}
	}

	sort.Strings(names)

	return names
}

// IsTestFile reports whether path names a test file by the pytest
// convention: base name starting with test_. Test files are never
// decomposed into callables; their diffs are handled directly by the
// selection policy.
func IsTestFile(path m.Path) bool {
	return strings.HasPrefix(filepath.Base(string(path)), testFilePrefix)
}
