package prompts

import (
	"encoding/json"
	"slices"
	"strings"
)

// Stage identifies one pipeline phase that a prompt or audit entry targets.
type Stage string

// Canonical pipeline stages.
const (
	StageIngest             Stage = "INGEST"
	StageIntelligentOCR     Stage = "INTELLIGENT_OCR"
	StageIntelligentProcess Stage = "INTELLIGENT_PROCESS"
	StageOutput             Stage = "OUTPUT"
)

var stages = []Stage{
	StageIngest,
	StageIntelligentOCR,
	StageIntelligentProcess,
	StageOutput,
}

// Stages returns the list of valid pipeline stages.
func Stages() []Stage {
	return stages
}

// RoutingKey returns the lower-cased stage name for event routing keys.
func (s Stage) RoutingKey() string {
	return strings.ToLower(string(s))
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known pipeline stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(strings.ToUpper(s))
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
