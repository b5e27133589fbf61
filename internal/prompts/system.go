package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)

	// Resolve returns the active prompt matching the exact
	// (process_type, version, stage) triple. There is no highest-version
	// fallback: a process pinned to a configuration version must resolve
	// the prompt for that exact version, or fail with ErrNotFound.
	// Resolution is side-effect-free; identical arguments return identical
	// template content.
	Resolve(ctx context.Context, processTypeID string, version int, stage Stage) (*Prompt, error)
}
