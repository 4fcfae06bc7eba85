// Package model defines the data structures for change-impact analysis and
// test selection.
package model

import "fmt"

// Mode classifies the terminal outcome of one analysis run.
type Mode string

const (
	// ModeNoChanges means no source file matched the diff.
	ModeNoChanges Mode = "no_changes"
	// ModeNoTestsNeeded means files changed but no relevant test was found.
	ModeNoTestsNeeded Mode = "no_tests_needed"
	// ModeRunAll means a safety-critical file changed and the whole suite runs.
	ModeRunAll Mode = "run_all"
	// ModeSmartSelection means a concrete subset of tests was selected.
	ModeSmartSelection Mode = "smart_selection"
	// ModeErrorFallback means analysis failed and the whole suite runs.
	ModeErrorFallback Mode = "error_fallback"
)

// AnalysisReport is the complete result of one analysis run. It is always
// well-formed: any failure inside the pipeline is converted into the
// error-fallback shape rather than surfaced as a partial report.
type AnalysisReport struct {
	ChangedFiles []FileChange  `json:"changed_files" yaml:"changed_files"`
	Impacted     ImpactedUnits `json:"changed_functions" yaml:"changed_functions"`
	Selection    Selection     `json:"selected_tests" yaml:"selected_tests"`
	Mode         Mode          `json:"analysis_mode" yaml:"analysis_mode"`
	Success      bool          `json:"success" yaml:"success"`
	Error        string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport returns a report with all collections initialized so the
// serialized payload never contains nulls.
func NewReport() AnalysisReport {
	return AnalysisReport{
		ChangedFiles: []FileChange{},
		Impacted:     ImpactedUnits{},
		Selection:    SelectNone(),
	}
}

// ErrorFallback builds the report emitted when analysis fails for any
// reason: run everything, record why.
func ErrorFallback(err error) AnalysisReport {
	report := NewReport()
	report.Mode = ModeErrorFallback
	report.Selection = SelectAll()
	report.Error = err.Error()

	return report
}

// Validate checks the report invariants: run_all mode pairs with the RunAll
// selection and nothing else does, and error fallback always records an error.
func (r AnalysisReport) Validate() error {
	if (r.Mode == ModeRunAll || r.Mode == ModeErrorFallback) != r.Selection.IsRunAll() {
		return fmt.Errorf("mode %q inconsistent with selection kind %d", r.Mode, r.Selection.Kind)
	}

	if r.Mode == ModeErrorFallback {
		if r.Error == "" {
			return fmt.Errorf("error_fallback report without error")
		}

		if r.Success {
			return fmt.Errorf("error_fallback report marked successful")
		}
	}

	return nil
}
