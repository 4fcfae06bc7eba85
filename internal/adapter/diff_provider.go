// Package adapter contains the infrastructure adapters behind the analysis
// pipeline: version control, Python parsing, test execution, filesystem
// access and report storage.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/go-diff/diff"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

const pythonFileExt = ".py"

// Timeouts bound every git invocation. Expiry degrades to an empty result,
// never a fatal error.
const (
	changedFilesTimeout = 10 * time.Second
	changedLinesTimeout = 5 * time.Second
)

// DiffProvider abstracts the version control system that produces diffs
// between two revisions. Implementations must degrade gracefully: "no
// information available" is an empty result, not an error. A non-nil error
// signals a fault the caller converts into the run-everything fallback.
type DiffProvider interface {
	// ChangedFiles lists the Python files that differ between base and head
	// and still exist at the head revision.
	ChangedFiles(ctx context.Context, base, head string) ([]m.FileChange, error)

	// ChangedLines returns the 1-based line numbers added or modified in one
	// file between base and head.
	ChangedLines(ctx context.Context, path m.Path, base, head string) (m.LineSet, error)
}

// GitDiffProvider implements DiffProvider by shelling out to git.
type GitDiffProvider struct {
	repo m.Path
	log  *slog.Logger
}

// NewGitDiffProvider constructs a GitDiffProvider rooted at repo.
func NewGitDiffProvider(repo m.Path) *GitDiffProvider {
	return &GitDiffProvider{repo: repo, log: slog.Default()}
}

// ChangedFiles runs `git diff --name-only base head` and keeps Python files
// that still exist in the working tree. Any git failure is logged and
// reported as no changes.
func (g *GitDiffProvider) ChangedFiles(ctx context.Context, base, head string) ([]m.FileChange, error) {
	ctx, cancel := context.WithTimeout(ctx, changedFilesTimeout)
	defer cancel()

	out, err := g.git(ctx, "diff", "--name-only", base, head)
	if err != nil {
		g.log.Warn("could not list changed files", "base", base, "head", head, "error", err)
		return nil, nil
	}

	var changes []m.FileChange

	for _, line := range strings.Split(string(out), "\n") {
		path := strings.TrimSpace(line)
		if path == "" || filepath.Ext(path) != pythonFileExt {
			continue
		}

		// Deleted files have nothing left to analyze.
		if _, err := os.Stat(filepath.Join(string(g.repo), path)); err != nil {
			continue
		}

		changes = append(changes, m.FileChange{Path: m.Path(filepath.ToSlash(path))})
	}

	return changes, nil
}

// ChangedLines runs a zero-context diff for one path and collects the
// added/modified line numbers from its hunks. Failures degrade to an empty
// set.
func (g *GitDiffProvider) ChangedLines(ctx context.Context, path m.Path, base, head string) (m.LineSet, error) {
	ctx, cancel := context.WithTimeout(ctx, changedLinesTimeout)
	defer cancel()

	out, err := g.git(ctx, "diff", "-U0", base, head, "--", string(path))
	if err != nil {
		g.log.Warn("could not diff file", "path", path, "error", err)
		return m.LineSet{}, nil
	}

	return parseChangedLines(out), nil
}

// parseChangedLines extracts the new-side line ranges from unified diff
// hunks. With -U0 there are no context lines, so each hunk's new range is
// exactly the added/modified lines: [NewStartLine, NewStartLine+NewLines-1],
// with an omitted count meaning one line. Hunks with an empty new side are
// pure deletions and contribute nothing.
func parseChangedLines(raw []byte) m.LineSet {
	lines := m.LineSet{}

	if len(bytes.TrimSpace(raw)) == 0 {
		return lines
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(raw)).ReadAllFiles()
	if err != nil {
		return lines
	}

	for _, fd := range fileDiffs {
		for _, hunk := range fd.Hunks {
			if hunk.NewLines == 0 {
				continue
			}

			lines.AddRange(int(hunk.NewStartLine), int(hunk.NewLines))
		}
	}

	return lines
}

// git runs one git command inside the repository and returns its stdout.
func (g *GitDiffProvider) git(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = string(g.repo)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}
