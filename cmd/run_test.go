package cmd

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// fakeReportStore records saves and serves a canned report.
type fakeReportStore struct {
	saved    []m.AnalysisReport
	savedDir m.Path
	latest   m.AnalysisReport
	loadErr  error
}

func (f *fakeReportStore) SaveReport(dir m.Path, report m.AnalysisReport) (m.Path, error) {
	f.saved = append(f.saved, report)
	f.savedDir = dir

	return m.Path(fmt.Sprintf("%s/report-%d.yaml", dir, len(f.saved))), nil
}

func (f *fakeReportStore) LoadLatest(_ m.Path) (m.AnalysisReport, error) {
	return f.latest, f.loadErr
}

// fakeUI records displayed reports.
type fakeUI struct {
	displayed []m.AnalysisReport
}

func (f *fakeUI) DisplayReport(report m.AnalysisReport) error {
	f.displayed = append(f.displayed, report)
	return nil
}

func swapRunDeps(t *testing.T, store *fakeReportStore, display *fakeUI) {
	t.Helper()

	originalStore := reportStore
	originalUI := ui
	reportStore = store
	ui = display
	t.Cleanup(func() {
		reportStore = originalStore
		ui = originalUI
	})
}

func swapExecute(t *testing.T, fn func(ctx context.Context, repo m.Path, command string, report m.AnalysisReport) (int, error)) {
	t.Helper()

	original := execute
	execute = fn
	t.Cleanup(func() { execute = original })
}

func smartReport() m.AnalysisReport {
	report := m.NewReport()
	report.ChangedFiles = []m.FileChange{{Path: "src/utils.py"}}
	report.Selection = m.SelectSubset([]m.SelectionEntry{{Kind: m.NamePattern, Value: "test_compute"}})
	report.Mode = m.ModeSmartSelection
	report.Success = true

	return report
}

func TestRunCmd_WithoutExecutePrintsReport(t *testing.T) {
	store := &fakeReportStore{}
	swapRunDeps(t, store, &fakeUI{})
	swapAnalyze(t, func(_ context.Context, _ m.Path, _, _ string, _ int) m.AnalysisReport {
		return smartReport()
	})
	swapExecute(t, func(_ context.Context, _ m.Path, _ string, _ m.AnalysisReport) (int, error) {
		t.Fatalf("execute must not run without --execute")
		return 0, nil
	})

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--base-sha", "a", "--head-sha", "b", "--reports", "/tmp/reports"})

	require.NoError(t, cmd.Execute())

	require.Len(t, store.saved, 1)
	assert.Equal(t, m.Path("/tmp/reports"), store.savedDir)
	assert.Contains(t, out.String(), `"smart_selection"`)
}

func TestRunCmd_ExecutePassesCommandAndExitsZero(t *testing.T) {
	display := &fakeUI{}
	swapRunDeps(t, &fakeReportStore{}, display)
	swapAnalyze(t, func(_ context.Context, _ m.Path, _, _ string, _ int) m.AnalysisReport {
		return smartReport()
	})

	var gotCommand string

	swapExecute(t, func(_ context.Context, _ m.Path, command string, _ m.AnalysisReport) (int, error) {
		gotCommand = command
		return 0, nil
	})

	originalExit := exitFunc
	exitFunc = func(code int) { t.Fatalf("exitFunc called with %d on a clean run", code) }
	defer func() { exitFunc = originalExit }()

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--base-sha", "a", "--head-sha", "b", "--execute", "--test-command", "python -m pytest"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "python -m pytest", gotCommand)
	assert.Len(t, display.displayed, 1)
}

func TestRunCmd_ExecutePropagatesFailureExitCode(t *testing.T) {
	swapRunDeps(t, &fakeReportStore{}, &fakeUI{})
	swapAnalyze(t, func(_ context.Context, _ m.Path, _, _ string, _ int) m.AnalysisReport {
		return smartReport()
	})
	swapExecute(t, func(_ context.Context, _ m.Path, _ string, _ m.AnalysisReport) (int, error) {
		return 5, nil
	})

	var exitCode int

	originalExit := exitFunc
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = originalExit }()

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--base-sha", "a", "--head-sha", "b", "--execute"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 5, exitCode)
}
