package domain

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Nemesis2003/smartci-platform/internal/adapter"
	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// Executor turns an analysis report into a test-runner invocation and
// propagates the runner's exit code. Execution is the only side-effecting
// step in the system and is an explicit opt-in.
type Executor struct {
	runner  adapter.TestRunnerAdapter
	repo    m.Path
	command string
	log     *slog.Logger
}

// NewExecutor constructs an Executor that runs command (e.g. "pytest")
// inside repo.
func NewExecutor(runner adapter.TestRunnerAdapter, repo m.Path, command string) *Executor {
	return &Executor{
		runner:  runner,
		repo:    repo,
		command: command,
		log:     slog.Default(),
	}
}

// Execute runs the selection from the report. A failed analysis runs
// everything; an empty selection runs nothing and succeeds. The returned
// exit code mirrors the underlying runner.
func (e *Executor) Execute(ctx context.Context, report m.AnalysisReport) (int, error) {
	if !report.Success {
		e.log.Warn("analysis failed, running all tests", "error", report.Error)
		return e.runner.Run(ctx, e.repo, e.command, nil, "")
	}

	selection := report.Selection

	switch {
	case selection.IsRunNone():
		return 0, nil
	case selection.IsRunAll():
		return e.runner.Run(ctx, e.repo, e.command, nil, "")
	}

	filter := strings.Join(selection.Patterns(), " or ")

	return e.runner.Run(ctx, e.repo, e.command, selection.Files(), filter)
}
