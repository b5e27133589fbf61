package processtypes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/steward-io/steward/pkg/pagination"
	"github.com/steward-io/steward/pkg/query"
	"github.com/steward-io/steward/pkg/repository"
)

const returning = "id, name, active, default_version, created_at, updated_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a process type repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "processtypes"),
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
) (*pagination.PageResult[ProcessType], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ID", "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count process types: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProcessType)
	if err != nil {
		return nil, fmt.Errorf("query process types: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*ProcessType, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	pt, err := repository.QueryOne(ctx, r.db, q, args, scanProcessType)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &pt, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*ProcessType, error) {
	if err := ValidateID(cmd.ID); err != nil {
		return nil, err
	}

	version := cmd.DefaultVersion
	if version < 1 {
		version = 1
	}

	q := fmt.Sprintf(`
		INSERT INTO process_types(id, name, default_version)
		VALUES ($1, $2, $3)
		RETURNING %s`, returning)

	pt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ProcessType, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.ID, cmd.Name, version}, scanProcessType)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("process type created", "id", pt.ID, "name", pt.Name)
	return &pt, nil
}

func (r *repo) Activate(ctx context.Context, id string) (*ProcessType, error) {
	return r.setActive(ctx, id, true)
}

func (r *repo) Deactivate(ctx context.Context, id string) (*ProcessType, error) {
	return r.setActive(ctx, id, false)
}

func (r *repo) RequireActive(ctx context.Context, id string) (*ProcessType, error) {
	pt, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pt.Active {
		return nil, fmt.Errorf("%w: %s", ErrInactive, pt.ID)
	}
	return pt, nil
}

func (r *repo) setActive(ctx context.Context, id string, active bool) (*ProcessType, error) {
	q := fmt.Sprintf(`
		UPDATE process_types SET active = $1
		WHERE id = $2
		RETURNING %s`, returning)

	pt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ProcessType, error) {
		return repository.QueryOne(ctx, tx, q, []any{active, id}, scanProcessType)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("process type active flag changed", "id", pt.ID, "active", pt.Active)
	return &pt, nil
}
