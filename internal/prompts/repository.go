package prompts

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

const returning = "id, process_type_id, version, stage, template, model, temperature, token_budget, active, created_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
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
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "ProcessTypeID", "Model")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	if _, err := ParseStage(string(cmd.Stage)); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO prompts(process_type_id, version, stage, template, model, temperature, token_budget)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, returning)

	args := []any{
		cmd.ProcessTypeID,
		cmd.Version,
		cmd.Stage,
		cmd.Template,
		cmd.Model,
		cmd.Temperature,
		cmd.TokenBudget,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"prompt created",
		"id", p.ID,
		"process_type", p.ProcessTypeID,
		"version", p.Version,
		"stage", p.Stage,
	)
	return &p, nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.setActive(ctx, id, true)
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.setActive(ctx, id, false)
}

func (r *repo) Resolve(
	ctx context.Context,
	processTypeID string,
	version int,
	stage Stage,
) (*Prompt, error) {
	active := true
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ProcessTypeID", processTypeID).
		WhereEquals("Version", version).
		WhereEquals("Stage", string(stage)).
		WhereEquals("Active", &active).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) setActive(ctx context.Context, id uuid.UUID, active bool) (*Prompt, error) {
	q := fmt.Sprintf(`
		UPDATE prompts SET active = $1
		WHERE id = $2
		RETURNING %s`, returning)

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, []any{active, id}, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt active flag changed", "id", p.ID, "active", p.Active)
	return &p, nil
}
