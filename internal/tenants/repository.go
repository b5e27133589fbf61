package tenants

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

const returning = "id, name, status, tier, token_balance, created_at, updated_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tenant repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tenants"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Tenant], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tenants: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTenant)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTenant)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Tenant, error) {
	q := fmt.Sprintf(`
		INSERT INTO tenants(name, tier)
		VALUES ($1, $2)
		RETURNING %s`, returning)

	args := []any{cmd.Name, cmd.Tier}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tenant, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTenant)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tenant created", "id", t.ID, "name", t.Name, "tier", t.Tier)
	return &t, nil
}

func (r *repo) Suspend(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return r.setStatus(ctx, id, StatusSuspended)
}

func (r *repo) Reactivate(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return r.setStatus(ctx, id, StatusActive)
}

func (r *repo) RequireActive(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	t, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusActive {
		return nil, fmt.Errorf("%w: tenant %s is %s", ErrNotActive, t.ID, t.Status)
	}
	return t, nil
}

func (r *repo) setStatus(ctx context.Context, id uuid.UUID, status Status) (*Tenant, error) {
	q := fmt.Sprintf(`
		UPDATE tenants SET status = $1
		WHERE id = $2
		RETURNING %s`, returning)

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tenant, error) {
		return repository.QueryOne(ctx, tx, q, []any{status, id}, scanTenant)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tenant status changed", "id", t.ID, "status", t.Status)
	return &t, nil
}
