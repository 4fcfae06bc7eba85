package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Nemesis2003/smartci-platform/internal/adapter"
	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// Analyzer runs the full analysis pipeline for one (base, head) revision
// pair and always returns a complete report. It owns the error-fallback
// contract: nothing escapes Analyze, and when in doubt the answer is "run
// everything".
type Analyzer struct {
	diff     adapter.DiffProvider
	parser   adapter.PythonFileAdapter
	fs       adapter.SourceFSAdapter
	policy   *SelectionPolicy
	repo     m.Path
	parallel int
	log      *slog.Logger
}

// NewAnalyzer wires an Analyzer from its adapters. parallel bounds the
// number of files analyzed concurrently; values below 1 mean sequential.
func NewAnalyzer(diff adapter.DiffProvider, parser adapter.PythonFileAdapter, fs adapter.SourceFSAdapter, repo m.Path, parallel int) *Analyzer {
	if parallel < 1 {
		parallel = 1
	}

	return &Analyzer{
		diff:     diff,
		parser:   parser,
		fs:       fs,
		policy:   NewSelectionPolicy(fs, repo),
		repo:     repo,
		parallel: parallel,
		log:      slog.Default(),
	}
}

// Analyze produces the analysis report for the revision pair. The run is a
// pure function of the repository snapshot and the two revisions: repeating
// it yields a byte-identical report.
func (a *Analyzer) Analyze(ctx context.Context, base, head string) (report m.AnalysisReport) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("analysis panicked, falling back to full run", "panic", r)
			report = m.ErrorFallback(fmt.Errorf("analysis panic: %v", r))
		}
	}()

	report = m.NewReport()

	changed, err := a.diff.ChangedFiles(ctx, base, head)
	if err != nil {
		return m.ErrorFallback(err)
	}

	if len(changed) == 0 {
		report.Mode = m.ModeNoChanges
		report.Success = true

		return report
	}

	report.ChangedFiles = changed
	report.Impacted = a.resolveImpacts(ctx, base, head, changed)
	report.Selection = a.policy.Select(changed, report.Impacted)

	switch {
	case report.Selection.IsRunAll():
		report.Mode = m.ModeRunAll
	case report.Selection.IsRunNone():
		report.Mode = m.ModeNoTestsNeeded
	default:
		report.Mode = m.ModeSmartSelection
	}

	report.Success = true

	return report
}

// resolveImpacts maps each changed non-test file to its impacted callables.
// Files are independent, so they are analyzed under a bounded worker group;
// per-file failures degrade to "no impact identified" for that file only.
func (a *Analyzer) resolveImpacts(ctx context.Context, base, head string, changed []m.FileChange) m.ImpactedUnits {
	impacted := m.ImpactedUnits{}

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallel)

	for _, fc := range changed {
		if IsTestFile(fc.Path) {
			continue
		}

		g.Go(func() error {
			names := a.analyzeFile(ctx, base, head, fc.Path)
			if len(names) == 0 {
				return nil
			}

			mu.Lock()
			impacted[fc.Path] = names
			mu.Unlock()

			return nil
		})
	}

	// Workers never return errors; degradation happens per file.
	_ = g.Wait()

	return impacted
}

// analyzeFile resolves the impacted callables for one file. Every failure
// mode (unreadable file, unparsable syntax, no diff information) collapses
// to an empty result at this smallest possible scope.
func (a *Analyzer) analyzeFile(ctx context.Context, base, head string, path m.Path) []string {
	content, err := a.fs.ReadFile(a.fs.JoinPath(string(a.repo), string(path)))
	if err != nil {
		a.log.Warn("could not read changed file", "path", path, "error", err)
		return nil
	}

	spans, err := a.parser.Spans(ctx, content)
	if err != nil {
		a.log.Warn("could not analyze file", "path", path, "error", err)
		return nil
	}

	if len(spans) == 0 {
		return nil
	}

	lines, err := a.diff.ChangedLines(ctx, path, base, head)
	if err != nil {
		a.log.Warn("could not get changed lines", "path", path, "error", err)
		return nil
	}

	return ResolveImpact(spans, lines)
}
