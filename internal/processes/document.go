package processes

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents a document's upload confirmation state.
type DocumentStatus string

// Valid document statuses.
const (
	DocumentPending   DocumentStatus = "pending"
	DocumentConfirmed DocumentStatus = "confirmed"
	DocumentFailed    DocumentStatus = "failed"
)

// Document represents one file within a process, referenced by an opaque
// storage key. The orchestration core never reads file bytes; it only
// confirms that the referenced blob exists.
type Document struct {
	ID            uuid.UUID      `json:"id"`
	ProcessID     uuid.UUID      `json:"process_id"`
	StorageRef    string         `json:"storage_ref"`
	Status        DocumentStatus `json:"status"`
	OCRText       *string        `json:"ocr_text"`
	OCRConfidence *float64       `json:"ocr_confidence"`
	FraudScore    *float64       `json:"fraud_score"`
	FraudFlags    []string       `json:"fraud_flags"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
