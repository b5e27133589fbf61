// Package configurations implements the tenant configuration domain for
// Steward. A configuration is an immutable snapshot bound to a
// (tenant, process_type, version) triple: schemas, validation rules, the
// validator plugin name, feature flags, and the confidence threshold.
// Administrative changes create new versions; existing rows are never
// mutated, so a process pinned to a version keeps its behavior for life.
package configurations

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Configuration represents one immutable configuration version for a
// (tenant, process_type) pair.
type Configuration struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	ProcessTypeID       string          `json:"process_type_id"`
	Version             int             `json:"version"`
	InputSchema         json.RawMessage `json:"input_schema"`
	OutputSchema        json.RawMessage `json:"output_schema"`
	ValidationRules     json.RawMessage `json:"validation_rules"`
	PluginName          string          `json:"plugin_name"`
	EnableFraudCheck    bool            `json:"enable_fraud_check"`
	EnableHITL          bool            `json:"enable_hitl"`
	ConfidenceThreshold float64         `json:"confidence_threshold"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"created_at"`
}

// CreateCommand carries the data needed to create a new configuration
// version. There is no update command: configuration rows are immutable.
type CreateCommand struct {
	TenantID            uuid.UUID       `json:"tenant_id"`
	ProcessTypeID       string          `json:"process_type_id"`
	Version             int             `json:"version"`
	InputSchema         json.RawMessage `json:"input_schema"`
	OutputSchema        json.RawMessage `json:"output_schema"`
	ValidationRules     json.RawMessage `json:"validation_rules"`
	PluginName          string          `json:"plugin_name"`
	EnableFraudCheck    bool            `json:"enable_fraud_check"`
	EnableHITL          bool            `json:"enable_hitl"`
	ConfidenceThreshold float64         `json:"confidence_threshold"`
}
