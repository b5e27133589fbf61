// Package outputs implements post-completion side effects: output actions
// enqueued against a process and dispatched to named targets (email,
// webhook, ERP, database insert) with a bounded retry budget.
package outputs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionType identifies the delivery mechanism for an output action.
type ActionType string

// Valid action types.
const (
	ActionEmail    ActionType = "email"
	ActionWebhook  ActionType = "webhook"
	ActionERP      ActionType = "erp"
	ActionDBInsert ActionType = "db_insert"
)

// ActionStatus represents an output action's dispatch state.
type ActionStatus string

// Valid action statuses.
const (
	ActionPending   ActionStatus = "pending"
	ActionExecuting ActionStatus = "executing"
	ActionCompleted ActionStatus = "completed"
	ActionFailed    ActionStatus = "failed"
	ActionRetrying  ActionStatus = "retrying"
)

// OutputAction represents one side-effecting delivery tied to a process.
type OutputAction struct {
	ID         uuid.UUID       `json:"id"`
	ProcessID  uuid.UUID       `json:"process_id"`
	Type       ActionType      `json:"type"`
	Target     json.RawMessage `json:"target"`
	Status     ActionStatus    `json:"status"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	LastError  *string         `json:"last_error"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EnqueueCommand carries the data needed to enqueue an output action.
type EnqueueCommand struct {
	ProcessID  uuid.UUID       `json:"process_id"`
	Type       ActionType      `json:"type"`
	Target     json.RawMessage `json:"target"`
	MaxRetries int             `json:"max_retries"`
}
