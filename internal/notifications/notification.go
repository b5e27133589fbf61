// Package notifications implements user-facing alerts derived from process
// events: HITL review requests, completions, and failures.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the event a notification describes.
type Type string

// Valid notification types.
const (
	TypeHITLRequired     Type = "hitl_required"
	TypeProcessCompleted Type = "process_completed"
	TypeProcessFailed    Type = "process_failed"
	TypeProcessCancelled Type = "process_cancelled"
)

// Severity grades a notification for display.
type Severity string

// Valid severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification represents one user-facing alert.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	ProcessID uuid.UUID `json:"process_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Type      Type      `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotifyCommand carries the data needed to create a notification.
type NotifyCommand struct {
	ProcessID uuid.UUID `json:"process_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Type      Type      `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}
