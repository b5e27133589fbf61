package configurations

import (
	"context"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
)

// System defines the public contract for configuration domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Configuration], error)

	Find(ctx context.Context, id uuid.UUID) (*Configuration, error)
	Create(ctx context.Context, cmd CreateCommand) (*Configuration, error)
	Activate(ctx context.Context, id uuid.UUID) (*Configuration, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Configuration, error)

	// Resolve returns the active configuration with the highest version for
	// the (tenant, process_type) pair. Versions are totally ordered, so the
	// result is deterministic; ErrNotFound when no active version exists.
	// Processes call this once at creation and pin the resolved version.
	Resolve(ctx context.Context, tenantID uuid.UUID, processTypeID string) (*Configuration, error)

	// ResolvePinned returns the exact configuration version a running
	// process pinned at creation, regardless of its active flag or any
	// newer versions activated since.
	ResolvePinned(ctx context.Context, tenantID uuid.UUID, processTypeID string, version int) (*Configuration, error)
}
