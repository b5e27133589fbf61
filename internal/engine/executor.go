package engine

import (
	"context"
	"encoding/json"

	"github.com/steward-io/steward/internal/audit"
	"github.com/steward-io/steward/internal/prompts"
)

// StageExecutor performs the external model call for one pipeline stage.
// The state machine treats each invocation as a single opaque attempt:
// success or failure exactly once, with any retry policy owned by the
// implementation behind this interface.
type StageExecutor interface {
	Execute(
		ctx context.Context,
		stage prompts.Stage,
		documentRefs []string,
		prompt *prompts.Prompt,
	) (*StageResult, error)
}

// StageResult is the outcome of one executor attempt.
type StageResult struct {
	Payload    json.RawMessage  `json:"payload"`
	Confidence *float64         `json:"confidence"`
	TokenUsage audit.TokenUsage `json:"token_usage"`
}

// ExecutorFunc adapts a function to the StageExecutor interface.
type ExecutorFunc func(
	ctx context.Context,
	stage prompts.Stage,
	documentRefs []string,
	prompt *prompts.Prompt,
) (*StageResult, error)

// Execute calls f.
func (f ExecutorFunc) Execute(
	ctx context.Context,
	stage prompts.Stage,
	documentRefs []string,
	prompt *prompts.Prompt,
) (*StageResult, error) {
	return f(ctx, stage, documentRefs, prompt)
}
