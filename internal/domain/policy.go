package domain

import (
	"path/filepath"
	"strings"

	"github.com/Nemesis2003/smartci-platform/internal/adapter"
	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// safetyFiles are base names whose change can alter test behavior in ways no
// line-level analysis can bound. Any match forces a full run.
var safetyFiles = map[string]struct{}{
	"setup.py":         {},
	"setup.cfg":        {},
	"pyproject.toml":   {},
	"requirements.txt": {},
	"Pipfile":          {},
	"tox.ini":          {},
	"conftest.py":      {},
	"pytest.ini":       {},
}

// ciConfigDir covers workflow definitions; changing CI itself means rerun
// everything.
const ciConfigDir = ".github/"

// conventionTestDirs are the canonical locations searched for a
// test_<basename>.py companion, relative to the repository root.
var conventionTestDirs = []string{"", "tests", "test"}

// SelectionPolicy converts changed files and impacted callables into a
// concrete test selection. The policy is deterministic and errs toward
// over-selection: the only path that skips tests entirely is the emptiness
// rule, which requires every changed file to have produced nothing.
type SelectionPolicy struct {
	fs   adapter.SourceFSAdapter
	repo m.Path
}

// NewSelectionPolicy constructs a SelectionPolicy for the repository at repo.
func NewSelectionPolicy(fs adapter.SourceFSAdapter, repo m.Path) *SelectionPolicy {
	return &SelectionPolicy{fs: fs, repo: repo}
}

// Select applies the policy rules in order. The safety override wins
// outright and never mixes with other entries.
func (p *SelectionPolicy) Select(changed []m.FileChange, impacted m.ImpactedUnits) m.Selection {
	for _, fc := range changed {
		if isSafetyCritical(fc.Path) {
			return m.SelectAll()
		}
	}

	var entries []m.SelectionEntry

	// Changed test files run no matter what else the change touched.
	for _, fc := range changed {
		if IsTestFile(fc.Path) {
			entries = append(entries, m.SelectionEntry{Kind: m.ExplicitTest, Value: string(fc.Path)})
		}
	}

	for _, fc := range changed {
		if IsTestFile(fc.Path) {
			continue
		}

		funcs := impacted[fc.Path]
		if len(funcs) == 0 {
			// Impact unknown: fall back to the file-level naming convention.
			// When no companion test exists either, the file contributes
			// nothing. That can under-select; it is the documented
			// precision/recall trade-off, not an oversight.
			if testFile, ok := p.findConventionTest(fc.Path); ok {
				entries = append(entries, m.SelectionEntry{Kind: m.ExplicitTest, Value: testFile})
			}

			continue
		}

		for _, fn := range funcs {
			entries = append(entries, m.SelectionEntry{Kind: m.NamePattern, Value: testFilePrefix + fn})
		}
	}

	return m.SelectSubset(entries)
}

// findConventionTest looks for test_<basename>.py in the canonical test
// directories and returns its repo-relative path.
func (p *SelectionPolicy) findConventionTest(source m.Path) (string, bool) {
	base := strings.TrimSuffix(filepath.Base(string(source)), pythonFileExt)
	candidate := testFilePrefix + base + pythonFileExt

	for _, dir := range conventionTestDirs {
		rel := candidate
		if dir != "" {
			rel = dir + "/" + candidate
		}

		if p.fs.FileExists(p.fs.JoinPath(string(p.repo), rel)) {
			return rel, true
		}
	}

	return "", false
}

func isSafetyCritical(path m.Path) bool {
	if strings.HasPrefix(string(path), ciConfigDir) {
		return true
	}

	_, ok := safetyFiles[filepath.Base(string(path))]

	return ok
}
