package harness

import "github.com/roach88/fullscan/internal/report"

// Result captures the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion and expectation held.
	Pass bool `json:"pass"`

	// Console is the rendered console report for the run.
	Console string `json:"console"`

	// Report is the full verification report the run produced.
	Report *report.Report `json:"report"`

	// Errors lists assertion failures in scenario order. Empty when
	// Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with no errors recorded.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Pass = false
	r.Errors = append(r.Errors, msg)
}
