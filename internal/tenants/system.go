package tenants

import (
	"context"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
)

// System defines the public contract for tenant domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Tenant], error)

	Find(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Create(ctx context.Context, cmd CreateCommand) (*Tenant, error)
	Suspend(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Reactivate(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// RequireActive returns the tenant if it exists and is active,
	// ErrNotActive otherwise. Process creation gates on this check.
	RequireActive(ctx context.Context, id uuid.UUID) (*Tenant, error)
}
