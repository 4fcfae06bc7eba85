package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayReport shows the report in an interactive browser. Short reports
// are printed directly without entering the alternate screen.
func (t *TUI) DisplayReport(report m.AnalysisReport) error {
	rm := newReportModel(report)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			rm.width = width
			rm.height = height
		}
	}

	if !rm.needsPagination() {
		_, err := fmt.Fprint(t.output, rm.View())
		return err
	}

	program := tea.NewProgram(rm, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
