package outputs

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// System defines the public contract for output action operations.
type System interface {
	Handler() *Handler

	Enqueue(ctx context.Context, cmd EnqueueCommand) (*OutputAction, error)
	Find(ctx context.Context, id uuid.UUID) (*OutputAction, error)
	ListByProcess(ctx context.Context, processID uuid.UUID) ([]OutputAction, error)

	// DispatchPending delivers every pending or retrying action for a
	// process through the sender registry. Each failed delivery consumes
	// one retry; an action whose budget is exhausted moves to failed.
	// Returns the actions in their post-dispatch state.
	DispatchPending(ctx context.Context, processID uuid.UUID, result json.RawMessage) ([]OutputAction, error)
}
