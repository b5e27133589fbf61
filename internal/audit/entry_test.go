package audit_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/prompts"
)

// TestEntryWireSchema pins the JSON field names consumed downstream.
func TestEntryWireSchema(t *testing.T) {
	entry := audit.Entry{
		ID:            7,
		Timestamp:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Results:       audit.ResultSuccess,
		StageType:     prompts.StageIntelligentOCR,
		PluginName:    "payroll",
		ProcessID:     uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962"),
		Documents:     []string{"doc-a.pdf"},
		ClientID:      uuid.MustParse("9f8c8720-aaaa-4f4e-8f64-111111111111"),
		ProcessTypeID: "payroll_batch",
		Payload:       json.RawMessage(`{"pages":3}`),
		TokenUsage:    audit.TokenUsage{Input: 120, Output: 40, Model: "test-model"},
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := []string{
		"timestamp",
		"results",
		"stage_type",
		"process_plugin_name",
		"process_id",
		"documents",
		"client_id",
		"process_type_id",
		"payload",
		"token_usage",
	}
	for _, name := range want {
		if _, ok := fields[name]; !ok {
			t.Errorf("wire schema missing field %q", name)
		}
	}

	if _, ok := fields["id"]; ok {
		t.Error("wire schema must not expose the append sequence id")
	}
	if _, ok := fields["error_detail"]; ok {
		t.Error("error_detail should be omitted when nil")
	}

	var usage map[string]json.RawMessage
	if err := json.Unmarshal(fields["token_usage"], &usage); err != nil {
		t.Fatalf("Unmarshal(token_usage) error = %v", err)
	}
	for _, name := range []string{"input", "output", "model"} {
		if _, ok := usage[name]; !ok {
			t.Errorf("token_usage missing field %q", name)
		}
	}
}

func TestEntryTopic(t *testing.T) {
	tests := []struct {
		name   string
		result audit.Result
		stage  prompts.Stage
		want   string
	}{
		{"success ocr", audit.ResultSuccess, prompts.StageIntelligentOCR, "success.intelligent_ocr"},
		{"failed process", audit.ResultFailed, prompts.StageIntelligentProcess, "failed.intelligent_process"},
		{"errors output", audit.ResultErrors, prompts.StageOutput, "errors.output"},
		{"success ingest", audit.ResultSuccess, prompts.StageIngest, "success.ingest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := audit.Entry{Results: tt.result, StageType: tt.stage}
			if got := entry.Topic(); got != tt.want {
				t.Errorf("Topic() = %q, want %q", got, tt.want)
			}
		})
	}
}
