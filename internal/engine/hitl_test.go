package engine_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/steward-io/steward/internal/configurations"
	"github.com/steward-io/steward/internal/engine"
)

// TestRequiresReview walks the full decision table: any of low confidence,
// a fraud flag, or (HITL enabled AND validation rejected) triggers review.
func TestRequiresReview(t *testing.T) {
	for _, lowConf := range []bool{false, true} {
		for _, fraud := range []bool{false, true} {
			for _, rejected := range []bool{false, true} {
				for _, hitl := range []bool{false, true} {
					name := fmt.Sprintf("lowConf=%v fraud=%v rejected=%v hitl=%v",
						lowConf, fraud, rejected, hitl)

					t.Run(name, func(t *testing.T) {
						cfg := &configurations.Configuration{
							ConfidenceThreshold: 0.85,
							EnableHITL:          hitl,
						}

						confidence := 0.92
						if lowConf {
							confidence = 0.60
						}

						var classification json.RawMessage
						if fraud {
							classification = json.RawMessage(`{"fraud_flag":true}`)
						} else {
							classification = json.RawMessage(`{"document_type":"invoice"}`)
						}

						want := lowConf || fraud || (hitl && rejected)
						got := engine.RequiresReview(&confidence, classification, rejected, cfg)
						if got != want {
							t.Errorf("RequiresReview() = %v, want %v", got, want)
						}
					})
				}
			}
		}
	}
}

func TestRequiresReviewNilConfidence(t *testing.T) {
	cfg := &configurations.Configuration{ConfidenceThreshold: 0.85}
	if engine.RequiresReview(nil, nil, false, cfg) {
		t.Error("RequiresReview() = true with no confidence signal, want false")
	}
}

func TestRequiresReviewThresholdBoundary(t *testing.T) {
	cfg := &configurations.Configuration{ConfidenceThreshold: 0.85}

	exact := 0.85
	if engine.RequiresReview(&exact, nil, false, cfg) {
		t.Error("RequiresReview() = true at the exact threshold, want false")
	}

	below := 0.8499
	if !engine.RequiresReview(&below, nil, false, cfg) {
		t.Error("RequiresReview() = false just below the threshold, want true")
	}
}

func TestFraudFlagged(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"boolean flag set", `{"fraud_flag":true}`, true},
		{"boolean flag clear", `{"fraud_flag":false}`, false},
		{"flag list populated", `{"fraud_flags":["duplicate_invoice"]}`, true},
		{"flag list empty", `{"fraud_flags":[]}`, false},
		{"no fraud fields", `{"document_type":"invoice"}`, false},
		{"empty payload", ``, false},
		{"malformed payload", `{oops`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.FraudFlagged(json.RawMessage(tt.payload)); got != tt.want {
				t.Errorf("FraudFlagged(%s) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}
