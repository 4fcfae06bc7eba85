package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

var analyzeBaseSHAFlag string
var analyzeHeadSHAFlag string
var analyzeParallelFlag int

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze changes and emit the test selection as JSON",
		Long: `Analyze compares two revisions, maps changed lines onto top-level
functions, and prints the resulting test selection as a JSON report on
stdout. The exit code is 0 whenever analysis completes, regardless of the
selection outcome; CI consumers branch on the analysis_mode field.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := analyze(cmd.Context(), m.Path(repoFlag), analyzeBaseSHAFlag, analyzeHeadSHAFlag, analyzeParallelFlag)

			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&analyzeBaseSHAFlag, "base-sha", "", "base commit SHA")
	cmd.Flags().StringVar(&analyzeHeadSHAFlag, "head-sha", "", "head commit SHA")
	cmd.Flags().IntVarP(&analyzeParallelFlag, "parallel", "p", 1, "number of files analyzed concurrently")
	_ = cmd.MarkFlagRequired("base-sha")
	_ = cmd.MarkFlagRequired("head-sha")

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
