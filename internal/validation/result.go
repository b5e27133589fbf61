// Package validation implements the pluggable validation layer for Steward.
// Validators are registered by name at startup; configurations select one by
// plugin name, and the state machine dispatches through the registry without
// knowing any concrete validator type.
package validation

// Status describes the overall outcome of a validation run.
type Status string

// Valid validation statuses.
const (
	StatusSuccess Status = "SUCCESS"
	StatusErrors  Status = "ERRORS"
)

// FieldError describes one rule violation.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result is the outcome of validating an extracted payload against a
// configuration's rule set. A Result with Status ERRORS is a business-rule
// rejection, not a system fault: the caller routes it through the HITL gate.
type Result struct {
	Status Status       `json:"status"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Rejected reports whether the run produced any rule violations.
func (r *Result) Rejected() bool {
	return r.Status == StatusErrors
}

func success() *Result {
	return &Result{Status: StatusSuccess}
}

func rejected(errs []FieldError) *Result {
	return &Result{Status: StatusErrors, Errors: errs}
}
