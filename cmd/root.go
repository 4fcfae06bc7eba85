// Package cmd provides the root command and CLI setup for smartci.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nemesis2003/smartci-platform/internal/adapter"
	"github.com/Nemesis2003/smartci-platform/internal/controller"
	"github.com/Nemesis2003/smartci-platform/internal/domain"
	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var pyAdapter adapter.PythonFileAdapter
var testAdapter adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var ui controller.UI

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	pyAdapter = adapter.NewTreeSitterPythonAdapter()
	testAdapter = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewLocalReportStore()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

// analyze runs the full analysis pipeline. It is a package variable so
// command tests can substitute an in-memory pipeline.
var analyze = func(ctx context.Context, repo m.Path, base, head string, parallel int) m.AnalysisReport {
	diffProvider := adapter.NewGitDiffProvider(repo)
	analyzer := domain.NewAnalyzer(diffProvider, pyAdapter, fsAdapter, repo, parallel)

	return analyzer.Analyze(ctx, base, head)
}

// execute runs the selection from a report and returns the runner exit code.
var execute = func(ctx context.Context, repo m.Path, command string, report m.AnalysisReport) (int, error) {
	executor := domain.NewExecutor(testAdapter, repo, command)

	return executor.Execute(ctx, report)
}

// exitFunc mirrors the test-runner exit code to the caller; swapped in tests.
var exitFunc = os.Exit

var repoFlag string
var reportsOutputDirFlag string
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smartci",
		Short: "Change-aware test selection for Python projects",
		Long: `Smartci inspects the diff between two commits, maps the changed lines
onto the functions they touch, and selects the pytest tests relevant to the
change. When it cannot bound the impact of a change it falls back to running
the full suite, so skipping is always safe.

Modes:
  analyze   emit the analysis report as JSON
  run       analyze, and optionally execute the selected tests
  view      browse a previously saved report`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogging(verboseFlag)
		},
	}

	cmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "repository path")
	cmd.PersistentFlags().StringVar(&reportsOutputDirFlag, "reports", ".smartci-reports", "directory for saved analysis reports")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging on stderr")

	return cmd
}

// configureLogging routes diagnostics to stderr so the report payload on
// stdout stays machine-readable.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// printJSON writes the report payload to the command's stdout.
func printJSON(cmd *cobra.Command, report m.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	cmd.Println(string(data))

	return nil
}
