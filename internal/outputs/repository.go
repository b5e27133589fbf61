package outputs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/repository"
)

const returning = `id, process_id, type, target, status, retry_count, max_retries,
		last_error, created_at, updated_at`

var actionTypes = []ActionType{ActionEmail, ActionWebhook, ActionERP, ActionDBInsert}

type repo struct {
	db      *sql.DB
	logger  *slog.Logger
	senders *SenderRegistry
}

// New creates an output action repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, senders *SenderRegistry) System {
	return &repo{
		db:      db,
		logger:  logger.With("system", "outputs"),
		senders: senders,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Enqueue(ctx context.Context, cmd EnqueueCommand) (*OutputAction, error) {
	if !slices.Contains(actionTypes, cmd.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cmd.Type)
	}

	q := fmt.Sprintf(`
		INSERT INTO output_actions(process_id, type, target, max_retries)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, returning)

	target := cmd.Target
	if len(target) == 0 {
		target = []byte("{}")
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (OutputAction, error) {
		return repository.QueryOne(
			ctx, tx, q,
			[]any{cmd.ProcessID, cmd.Type, []byte(target), cmd.MaxRetries},
			scanAction,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info(
		"output action enqueued",
		"id", a.ID,
		"process", a.ProcessID,
		"type", a.Type,
	)
	return &a, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*OutputAction, error) {
	q := fmt.Sprintf(`SELECT %s FROM output_actions WHERE id = $1`, returning)

	a, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanAction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &a, nil
}

func (r *repo) ListByProcess(ctx context.Context, processID uuid.UUID) ([]OutputAction, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM output_actions
		WHERE process_id = $1
		ORDER BY created_at, id`, returning)

	actions, err := repository.QueryMany(ctx, r.db, q, []any{processID}, scanAction)
	if err != nil {
		return nil, fmt.Errorf("query output actions: %w", err)
	}
	return actions, nil
}

func (r *repo) DispatchPending(
	ctx context.Context,
	processID uuid.UUID,
	result json.RawMessage,
) ([]OutputAction, error) {
	actions, err := r.ListByProcess(ctx, processID)
	if err != nil {
		return nil, err
	}

	dispatched := make([]OutputAction, 0, len(actions))
	for _, a := range actions {
		if a.Status != ActionPending && a.Status != ActionRetrying {
			dispatched = append(dispatched, a)
			continue
		}

		updated, err := r.dispatch(ctx, a, result)
		if err != nil {
			return nil, err
		}
		dispatched = append(dispatched, *updated)
	}

	return dispatched, nil
}

func (r *repo) dispatch(
	ctx context.Context,
	a OutputAction,
	result json.RawMessage,
) (*OutputAction, error) {
	executing, err := r.mark(ctx, a.ID, ActionExecuting, 0, nil)
	if err != nil {
		return nil, err
	}

	if sendErr := r.senders.Send(ctx, *executing, result); sendErr != nil {
		detail := sendErr.Error()

		status := ActionRetrying
		if executing.RetryCount+1 >= executing.MaxRetries {
			status = ActionFailed
		}

		r.logger.Warn(
			"output action delivery failed",
			"id", a.ID,
			"type", a.Type,
			"status", status,
			"error", sendErr,
		)
		return r.mark(ctx, a.ID, status, 1, &detail)
	}

	r.logger.Info("output action delivered", "id", a.ID, "type", a.Type)
	return r.mark(ctx, a.ID, ActionCompleted, 0, nil)
}

func (r *repo) mark(
	ctx context.Context,
	id uuid.UUID,
	status ActionStatus,
	retryDelta int,
	lastError *string,
) (*OutputAction, error) {
	q := fmt.Sprintf(`
		UPDATE output_actions
		SET status = $1,
			retry_count = retry_count + $2,
			last_error = COALESCE($3, last_error),
			updated_at = now()
		WHERE id = $4
		RETURNING %s`, returning)

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (OutputAction, error) {
		return repository.QueryOne(ctx, tx, q, []any{status, retryDelta, lastError, id}, scanAction)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &a, nil
}

func scanAction(s repository.Scanner) (OutputAction, error) {
	var (
		a      OutputAction
		target []byte
	)

	err := s.Scan(
		&a.ID,
		&a.ProcessID,
		&a.Type,
		&target,
		&a.Status,
		&a.RetryCount,
		&a.MaxRetries,
		&a.LastError,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	a.Target = json.RawMessage(target)
	return a, nil
}
