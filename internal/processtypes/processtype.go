// Package processtypes implements the process type domain for Steward.
// A process type is a named workflow definition (e.g. "payroll_v1") that
// prompts, configurations, and processes bind to.
package processtypes

import "time"

// ProcessType represents a named workflow definition. The identifier is a
// stable slug chosen by administrators and referenced from prompts,
// configurations, processes, and audit entries.
type ProcessType struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Active         bool      `json:"active"`
	DefaultVersion int       `json:"default_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to define a new process type.
type CreateCommand struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DefaultVersion int    `json:"default_version"`
}
