package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// SimpleUI implements UI using plain text on the cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints a per-file summary table followed by the selection
// outcome.
func (s *SimpleUI) DisplayReport(report m.AnalysisReport) error {
	if len(report.ChangedFiles) == 0 {
		s.printf("No changed source files\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Changed File", "Impacted Callables"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	paths := make([]string, 0, len(report.ChangedFiles))
	for _, fc := range report.ChangedFiles {
		paths = append(paths, string(fc.Path))
	}

	sort.Strings(paths)

	for _, path := range paths {
		funcs := report.Impacted[m.Path(path)]

		cell := "-"
		if len(funcs) > 0 {
			cell = strings.Join(funcs, ", ")
		}

		table.Append([]string{path, cell})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(paths)),
		fmt.Sprintf("Mode %s", report.Mode),
	})

	table.Render()
	s.printf("\n%s\n", tableBuffer.String())
	s.printSelection(report.Selection)

	if report.Error != "" {
		s.printf("Error: %s\n", report.Error)
	}

	return nil
}

func (s *SimpleUI) printSelection(selection m.Selection) {
	switch {
	case selection.IsRunAll():
		s.printf("Selection: run the full test suite\n")
	case selection.IsRunNone():
		s.printf("Selection: no tests need to run\n")
	default:
		if files := selection.Files(); len(files) > 0 {
			s.printf("Test files: %s\n", strings.Join(files, " "))
		}

		if patterns := selection.Patterns(); len(patterns) > 0 {
			s.printf("Name filter: %s\n", strings.Join(patterns, " or "))
		}
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
