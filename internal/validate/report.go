package validate

import (
	"strings"

	"sitegen_server/internal/types"
)

// Report is the validation report returned to callers. Errors come from the
// fatal checks (schema, security); Warnings are advisory.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate runs schema, content and security checks in that order and
// returns the union of their results.
func Validate(cfg *types.SiteConfiguration) Report {
	var r Report
	for _, fe := range Schema(cfg) {
		r.Errors = append(r.Errors, fe.String())
	}
	r.Warnings = append(r.Warnings, Content(cfg).Warnings...)
	for _, f := range Security(cfg) {
		r.Errors = append(r.Errors, f.String())
	}
	r.Valid = len(r.Errors) == 0
	return r
}

// AddWarnings appends advisory messages without affecting validity.
func (r *Report) AddWarnings(ws ...string) {
	r.Warnings = append(r.Warnings, ws...)
}

// Err returns a *RejectedError when the report is not valid.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	return &RejectedError{Report: r}
}

// RejectedError means a configuration failed a fatal check and must not be
// rendered, stored or forwarded.
type RejectedError struct {
	Report Report
}

func (e *RejectedError) Error() string {
	return "configuration rejected: " + strings.Join(e.Report.Errors, "; ")
}
