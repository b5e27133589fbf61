// Package processes implements the process domain for Steward: one
// processing job per document batch, owned by a tenant, pinned to a
// configuration version at creation, and advanced exclusively by the
// orchestration engine and operator review actions. Processes are never
// hard-deleted.
package processes

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/prompts"
)

// Process represents one processing job and its per-stage results.
type Process struct {
	ID                   uuid.UUID       `json:"id"`
	TenantID             uuid.UUID       `json:"tenant_id"`
	ProcessTypeID        string          `json:"process_type_id"`
	ConfigVersion        int             `json:"config_version"`
	Status               Status          `json:"status"`
	CurrentStage         *prompts.Stage  `json:"current_stage"`
	ClassificationResult json.RawMessage `json:"classification_result"`
	ExtractionResult     json.RawMessage `json:"extraction_result"`
	ValidationResult     json.RawMessage `json:"validation_result"`
	FinalResult          json.RawMessage `json:"final_result"`
	Confidence           *float64        `json:"confidence"`
	RequiresReview       bool            `json:"requires_review"`
	ReviewedBy           *string         `json:"reviewed_by"`
	ErrorMessage         *string         `json:"error_message"`
	TokensInput          int64           `json:"tokens_input"`
	TokensOutput         int64           `json:"tokens_output"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	CompletedAt          *time.Time      `json:"completed_at"`
}

// CreateCommand carries the data needed to create a new process with its
// documents. ConfigVersion is the version pinned at creation time.
type CreateCommand struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	ProcessTypeID string    `json:"process_type_id"`
	ConfigVersion int       `json:"config_version"`
	DocumentRefs  []string  `json:"document_refs"`
}

// Mutation carries optional field updates applied atomically with a status
// transition. Nil fields are left unchanged; token counts are deltas.
type Mutation struct {
	CurrentStage         *prompts.Stage
	ClassificationResult json.RawMessage
	ExtractionResult     json.RawMessage
	ValidationResult     json.RawMessage
	FinalResult          json.RawMessage
	Confidence           *float64
	RequiresReview       *bool
	ReviewedBy           *string
	ErrorMessage         *string
	TokensInput          int64
	TokensOutput         int64
}
