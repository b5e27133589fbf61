package processtypes

import (
	"context"

	"github.com/steward-io/steward/pkg/pagination"
)

// System defines the public contract for process type domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ProcessType], error)

	Find(ctx context.Context, id string) (*ProcessType, error)
	Create(ctx context.Context, cmd CreateCommand) (*ProcessType, error)
	Activate(ctx context.Context, id string) (*ProcessType, error)
	Deactivate(ctx context.Context, id string) (*ProcessType, error)

	// RequireActive returns the process type if it exists and is active,
	// ErrInactive otherwise.
	RequireActive(ctx context.Context, id string) (*ProcessType, error)
}
