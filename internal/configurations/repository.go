package configurations

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

const returning = `id, tenant_id, process_type_id, version, input_schema, output_schema,
		validation_rules, plugin_name, enable_fraud_check, enable_hitl,
		confidence_threshold, active, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a configuration repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "configurations"),
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
) (*pagination.PageResult[Configuration], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "ProcessTypeID", "PluginName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count configurations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanConfiguration)
	if err != nil {
		return nil, fmt.Errorf("query configurations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Configuration, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConfiguration)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Configuration, error) {
	if cmd.PluginName == "" {
		return nil, ErrMissingPlugin
	}
	if cmd.ConfidenceThreshold < 0 || cmd.ConfidenceThreshold > 1 {
		return nil, ErrBadThreshold
	}

	q := fmt.Sprintf(`
		INSERT INTO configurations(
			tenant_id, process_type_id, version, input_schema, output_schema,
			validation_rules, plugin_name, enable_fraud_check, enable_hitl,
			confidence_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, returning)

	args := []any{
		cmd.TenantID,
		cmd.ProcessTypeID,
		cmd.Version,
		normalizeJSON(cmd.InputSchema),
		normalizeJSON(cmd.OutputSchema),
		normalizeJSON(cmd.ValidationRules),
		cmd.PluginName,
		cmd.EnableFraudCheck,
		cmd.EnableHITL,
		cmd.ConfidenceThreshold,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Configuration, error) {
		return repository.QueryOne(ctx, tx, q, args, scanConfiguration)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"configuration created",
		"id", c.ID,
		"tenant", c.TenantID,
		"process_type", c.ProcessTypeID,
		"version", c.Version,
		"plugin", c.PluginName,
	)
	return &c, nil
}

func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Configuration, error) {
	return r.setActive(ctx, id, true)
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Configuration, error) {
	return r.setActive(ctx, id, false)
}

func (r *repo) Resolve(
	ctx context.Context,
	tenantID uuid.UUID,
	processTypeID string,
) (*Configuration, error) {
	active := true
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "Version", Descending: true}).
		WhereEquals("TenantID", tenantID).
		WhereEquals("ProcessTypeID", processTypeID).
		WhereEquals("Active", &active).
		BuildSingleOrNull()

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConfiguration)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) ResolvePinned(
	ctx context.Context,
	tenantID uuid.UUID,
	processTypeID string,
	version int,
) (*Configuration, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("TenantID", tenantID).
		WhereEquals("ProcessTypeID", processTypeID).
		WhereEquals("Version", version).
		BuildSingleOrNull()

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConfiguration)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) setActive(ctx context.Context, id uuid.UUID, active bool) (*Configuration, error) {
	q := fmt.Sprintf(`
		UPDATE configurations SET active = $1
		WHERE id = $2
		RETURNING %s`, returning)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Configuration, error) {
		return repository.QueryOne(ctx, tx, q, []any{active, id}, scanConfiguration)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("configuration active flag changed", "id", c.ID, "active", c.Active)
	return &c, nil
}

func normalizeJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}
