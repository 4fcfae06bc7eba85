package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved analysis report",
		Long:  "View loads the most recent report from the reports directory and renders it.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			report, err := reportStore.LoadLatest(m.Path(reportsOutputDirFlag))
			if err != nil {
				return err
			}

			return ui.DisplayReport(report)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
