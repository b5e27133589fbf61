package engine

import (
	"encoding/json"

	"github.com/steward-io/steward/internal/configurations"
)

// RequiresReview is the HITL gate: a pure decision with no side effects.
// Review is required when the overall confidence falls below the
// configuration's threshold, when the classification carries a fraud flag,
// or when HITL is enabled and validation reported errors. Identical inputs
// always yield the identical decision.
func RequiresReview(
	confidence *float64,
	classification json.RawMessage,
	validationRejected bool,
	cfg *configurations.Configuration,
) bool {
	if confidence != nil && *confidence < cfg.ConfidenceThreshold {
		return true
	}
	if FraudFlagged(classification) {
		return true
	}
	return cfg.EnableHITL && validationRejected
}

// FraudFlagged reports whether a classification payload carries a fraud
// signal: either a true "fraud_flag" boolean or a non-empty "fraud_flags"
// list. Unparseable payloads carry no signal.
func FraudFlagged(classification json.RawMessage) bool {
	if len(classification) == 0 {
		return false
	}

	var payload struct {
		FraudFlag  bool     `json:"fraud_flag"`
		FraudFlags []string `json:"fraud_flags"`
	}
	if err := json.Unmarshal(classification, &payload); err != nil {
		return false
	}

	return payload.FraudFlag || len(payload.FraudFlags) > 0
}
