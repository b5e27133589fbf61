package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/steward-io/steward/internal/prompts"
)

// NewStubExecutor returns a stage executor that produces empty payloads
// with full confidence and no token usage. It stands in for a model
// integration in local development; every execution logs a warning so a
// misconfigured deployment is visible immediately.
func NewStubExecutor(logger *slog.Logger) StageExecutor {
	log := logger.With("system", "executor")

	return ExecutorFunc(func(
		ctx context.Context,
		stage prompts.Stage,
		documentRefs []string,
		prompt *prompts.Prompt,
	) (*StageResult, error) {
		log.Warn("stub executor invoked", "stage", stage, "documents", len(documentRefs))

		payload, err := json.Marshal(map[string]any{
			"stage":     stage,
			"documents": documentRefs,
			"model":     prompt.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("encode stub payload: %w", err)
		}

		confidence := 1.0
		return &StageResult{
			Payload:    payload,
			Confidence: &confidence,
		}, nil
	})
}
