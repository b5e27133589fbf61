package processes_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/steward-io/steward/internal/processes"
)

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status processes.Status
		want   bool
	}{
		{processes.StatusPending, false},
		{processes.StatusIngested, false},
		{processes.StatusClassifying, false},
		{processes.StatusExtracting, false},
		{processes.StatusValidating, false},
		{processes.StatusHITLReview, false},
		{processes.StatusCompleted, true},
		{processes.StatusFailed, true},
		{processes.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from processes.Status
		to   processes.Status
		want bool
	}{
		{"pending to ingested", processes.StatusPending, processes.StatusIngested, true},
		{"pending to classifying skips ingest", processes.StatusPending, processes.StatusClassifying, false},
		{"ingested to classifying", processes.StatusIngested, processes.StatusClassifying, true},
		{"classifying to extracting", processes.StatusClassifying, processes.StatusExtracting, true},
		{"extracting to validating", processes.StatusExtracting, processes.StatusValidating, true},
		{"validating to hitl", processes.StatusValidating, processes.StatusHITLReview, true},
		{"validating to completed", processes.StatusValidating, processes.StatusCompleted, true},
		{"hitl resumes validation", processes.StatusHITLReview, processes.StatusValidating, true},
		{"hitl to completed", processes.StatusHITLReview, processes.StatusCompleted, true},
		{"hitl cannot re-extract", processes.StatusHITLReview, processes.StatusExtracting, false},
		{"any active to cancelled", processes.StatusClassifying, processes.StatusCancelled, true},
		{"any active to failed", processes.StatusExtracting, processes.StatusFailed, true},
		{"completed is terminal", processes.StatusCompleted, processes.StatusFailed, false},
		{"cancelled is terminal", processes.StatusCancelled, processes.StatusPending, false},
		{"failed is terminal", processes.StatusFailed, processes.StatusValidating, false},
		{"no backwards transition", processes.StatusValidating, processes.StatusExtracting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := processes.ParseStatus("hitl_review"); err != nil {
		t.Errorf("ParseStatus(hitl_review) error = %v", err)
	}

	if _, err := processes.ParseStatus("bogus"); !errors.Is(err, processes.ErrInvalidStatus) {
		t.Errorf("ParseStatus(bogus) error = %v, want ErrInvalidStatus", err)
	}
}

func TestStatusUnmarshalJSON(t *testing.T) {
	var s processes.Status
	if err := json.Unmarshal([]byte(`"completed"`), &s); err != nil {
		t.Fatalf("Unmarshal(completed) error = %v", err)
	}
	if s != processes.StatusCompleted {
		t.Errorf("Unmarshal(completed) = %v, want %v", s, processes.StatusCompleted)
	}

	if err := json.Unmarshal([]byte(`"done"`), &s); !errors.Is(err, processes.ErrInvalidStatus) {
		t.Errorf("Unmarshal(done) error = %v, want ErrInvalidStatus", err)
	}
}
