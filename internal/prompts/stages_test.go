package prompts_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/steward-io/steward/internal/prompts"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    prompts.Stage
		wantErr bool
	}{
		{"canonical", "INTELLIGENT_OCR", prompts.StageIntelligentOCR, false},
		{"lower case accepted", "intelligent_process", prompts.StageIntelligentProcess, false},
		{"mixed case accepted", "Output", prompts.StageOutput, false},
		{"ingest", "INGEST", prompts.StageIngest, false},
		{"unknown", "TRANSFORM", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrInvalidStage) {
					t.Errorf("ParseStage(%q) error = %v, want ErrInvalidStage", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStage(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStageRoutingKey(t *testing.T) {
	tests := []struct {
		stage prompts.Stage
		want  string
	}{
		{prompts.StageIngest, "ingest"},
		{prompts.StageIntelligentOCR, "intelligent_ocr"},
		{prompts.StageIntelligentProcess, "intelligent_process"},
		{prompts.StageOutput, "output"},
	}

	for _, tt := range tests {
		if got := tt.stage.RoutingKey(); got != tt.want {
			t.Errorf("RoutingKey(%s) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var s prompts.Stage
	if err := json.Unmarshal([]byte(`"OUTPUT"`), &s); err != nil {
		t.Fatalf("Unmarshal(OUTPUT) error = %v", err)
	}
	if s != prompts.StageOutput {
		t.Errorf("Unmarshal(OUTPUT) = %v, want %v", s, prompts.StageOutput)
	}

	if err := json.Unmarshal([]byte(`"output"`), &s); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("Unmarshal(output) error = %v, want ErrInvalidStage (wire stages are upper case)", err)
	}
}
