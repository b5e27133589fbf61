// Package prompts implements the versioned prompt domain for Steward.
// A prompt is an immutable LLM instruction bound to an exact
// (process_type, version, stage) triple. New instructions create a new
// version; rows referenced by a running process are never mutated, so
// audit replay always resolves the exact template a process used.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt represents a versioned instruction for one pipeline stage.
type Prompt struct {
	ID            uuid.UUID `json:"id"`
	ProcessTypeID string    `json:"process_type_id"`
	Version       int       `json:"version"`
	Stage         Stage     `json:"stage"`
	Template      string    `json:"template"`
	Model         string    `json:"model"`
	Temperature   float64   `json:"temperature"`
	TokenBudget   int       `json:"token_budget"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to create a new prompt version.
// There is no update command: prompt rows are immutable once created.
type CreateCommand struct {
	ProcessTypeID string  `json:"process_type_id"`
	Version       int     `json:"version"`
	Stage         Stage   `json:"stage"`
	Template      string  `json:"template"`
	Model         string  `json:"model"`
	Temperature   float64 `json:"temperature"`
	TokenBudget   int     `json:"token_budget"`
}
