package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

var runBaseSHAFlag string
var runHeadSHAFlag string
var runTestCommandFlag string
var runExecuteFlag bool
var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze changes and optionally execute the selected tests",
		Long: `Run performs the same analysis as the analyze command and saves the
report. Without --execute it prints the JSON report and exits 0. With
--execute it hands the selection to the test runner and exits with the
runner's exit code; an empty selection exits 0 without spawning anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo := m.Path(repoFlag)
			report := analyze(cmd.Context(), repo, runBaseSHAFlag, runHeadSHAFlag, runParallelFlag)

			if _, err := reportStore.SaveReport(m.Path(reportsOutputDirFlag), report); err != nil {
				slog.Warn("could not save report", "dir", reportsOutputDirFlag, "error", err)
			}

			if !runExecuteFlag {
				return printJSON(cmd, report)
			}

			if err := ui.DisplayReport(report); err != nil {
				slog.Warn("could not display report", "error", err)
			}

			code, err := execute(cmd.Context(), repo, runTestCommandFlag, report)
			if err != nil {
				return err
			}

			if code != 0 {
				exitFunc(code)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&runBaseSHAFlag, "base-sha", "", "base commit SHA")
	cmd.Flags().StringVar(&runHeadSHAFlag, "head-sha", "", "head commit SHA")
	cmd.Flags().StringVar(&runTestCommandFlag, "test-command", "pytest", "test runner command")
	cmd.Flags().BoolVar(&runExecuteFlag, "execute", false, "execute the selected tests (default: just analyze)")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of files analyzed concurrently")
	_ = cmd.MarkFlagRequired("base-sha")
	_ = cmd.MarkFlagRequired("head-sha")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
