package processes

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "processes", "p").
	Project("id", "ID").
	Project("tenant_id", "TenantID").
	Project("process_type_id", "ProcessTypeID").
	Project("config_version", "ConfigVersion").
	Project("status", "Status").
	Project("current_stage", "CurrentStage").
	Project("classification_result", "ClassificationResult").
	Project("extraction_result", "ExtractionResult").
	Project("validation_result", "ValidationResult").
	Project("final_result", "FinalResult").
	Project("confidence", "Confidence").
	Project("requires_review", "RequiresReview").
	Project("reviewed_by", "ReviewedBy").
	Project("error_message", "ErrorMessage").
	Project("tokens_input", "TokensInput").
	Project("tokens_output", "TokensOutput").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
}

// Filters contains optional filtering criteria for process queries.
type Filters struct {
	TenantID       *uuid.UUID `json:"tenant_id,omitempty"`
	ProcessTypeID  *string    `json:"process_type_id,omitempty"`
	Status         *string    `json:"status,omitempty"`
	RequiresReview *bool      `json:"requires_review,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TenantID", f.TenantID).
		WhereEquals("ProcessTypeID", f.ProcessTypeID).
		WhereEquals("Status", f.Status).
		WhereEquals("RequiresReview", f.RequiresReview)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("tenant_id"); t != "" {
		if id, err := uuid.Parse(t); err == nil {
			f.TenantID = &id
		}
	}
	if pt := values.Get("process_type_id"); pt != "" {
		f.ProcessTypeID = &pt
	}
	if s := values.Get("status"); s != "" {
		if status, err := ParseStatus(s); err == nil {
			v := string(status)
			f.Status = &v
		}
	}
	if rr := values.Get("requires_review"); rr != "" {
		if v, err := strconv.ParseBool(rr); err == nil {
			f.RequiresReview = &v
		}
	}

	return f
}

func scanProcess(s repository.Scanner) (Process, error) {
	var p Process
	err := s.Scan(
		&p.ID,
		&p.TenantID,
		&p.ProcessTypeID,
		&p.ConfigVersion,
		&p.Status,
		&p.CurrentStage,
		&p.ClassificationResult,
		&p.ExtractionResult,
		&p.ValidationResult,
		&p.FinalResult,
		&p.Confidence,
		&p.RequiresReview,
		&p.ReviewedBy,
		&p.ErrorMessage,
		&p.TokensInput,
		&p.TokensOutput,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CompletedAt,
	)
	return p, err
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d     Document
		flags []byte
	)

	err := s.Scan(
		&d.ID,
		&d.ProcessID,
		&d.StorageRef,
		&d.Status,
		&d.OCRText,
		&d.OCRConfidence,
		&d.FraudScore,
		&flags,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}

	if len(flags) > 0 {
		if err := json.Unmarshal(flags, &d.FraudFlags); err != nil {
			return d, err
		}
	}

	return d, nil
}
