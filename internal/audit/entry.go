// Package audit implements the append-only audit trail for Steward.
// Every stage transition emits exactly one entry: durably appended to the
// audit_logs table and published on the event bus under a <verb>.<stage>
// routing key. Entries are immutable facts; nothing in this package (or the
// schema) updates or deletes a written row.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/prompts"
	"github.com/steward-io/steward/pkg/messaging"
)

// Result describes the outcome of one stage attempt.
type Result string

// Valid stage results.
const (
	ResultSuccess Result = "SUCCESS"
	ResultFailed  Result = "FAILED"
	ResultErrors  Result = "ERRORS"
)

// TokenUsage records LLM token consumption for a stage attempt.
type TokenUsage struct {
	Input  int    `json:"input"`
	Output int    `json:"output"`
	Model  string `json:"model"`
}

// Entry is one immutable stage-attempt fact. The JSON field names are the
// wire schema consumed by the compliance stream and must not change.
type Entry struct {
	// ID is the append sequence; per-process ordering follows it.
	ID            int64           `json:"-"`
	Timestamp     time.Time       `json:"timestamp"`
	Results       Result          `json:"results"`
	StageType     prompts.Stage   `json:"stage_type"`
	PluginName    string          `json:"process_plugin_name"`
	ProcessID     uuid.UUID       `json:"process_id"`
	Documents     []string        `json:"documents"`
	ClientID      uuid.UUID       `json:"client_id"`
	ProcessTypeID string          `json:"process_type_id"`
	Payload       json.RawMessage `json:"payload"`
	TokenUsage    TokenUsage      `json:"token_usage"`
	ErrorDetail   *string         `json:"error_detail,omitempty"`
}

// Topic returns the routing key for this entry: <verb>.<stage>, where the
// verb is the lower-cased result (e.g. "success.intelligent_ocr").
func (e Entry) Topic() string {
	return messaging.Topic(e.verb(), e.StageType.RoutingKey())
}

func (e Entry) verb() string {
	switch e.Results {
	case ResultSuccess:
		return "success"
	case ResultFailed:
		return "failed"
	case ResultErrors:
		return "errors"
	default:
		return "unknown"
	}
}
