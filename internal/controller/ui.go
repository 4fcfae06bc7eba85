// Package controller provides output adapters for displaying analysis
// reports.
package controller

import (
	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

// UI defines the interface for rendering an analysis report to a human.
// Implementations can use different output methods (plain text, TUI).
// The machine-readable JSON payload is not a UI concern; it always goes to
// stdout untouched.
type UI interface {
	// DisplayReport renders the report summary.
	DisplayReport(report m.AnalysisReport) error
}
