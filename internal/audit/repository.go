package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/messaging"
	"github.com/steward-io/steward/pkg/repository"
)

type repo struct {
	db     *sql.DB
	bus    messaging.System
	logger *slog.Logger
}

// New creates an audit emitter implementing the System interface.
func New(
	db *sql.DB,
	bus messaging.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:     db,
		bus:    bus,
		logger: logger.With("system", "audit"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Emit(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if len(entry.Payload) == 0 {
		entry.Payload = []byte("{}")
	}
	if entry.Documents == nil {
		entry.Documents = []string{}
	}

	appended, err := r.append(ctx, entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	if err := r.bus.Publish(appended.Topic(), appended); err != nil {
		// The durable row committed; the bus is best effort on top of it.
		r.logger.Error(
			"audit publish failed",
			"process_id", appended.ProcessID,
			"topic", appended.Topic(),
			"error", err,
		)
	}

	return nil
}

func (r *repo) append(ctx context.Context, entry Entry) (*Entry, error) {
	q := `
		INSERT INTO audit_logs(
			timestamp, results, stage_type, plugin_name, process_id,
			documents, client_id, process_type_id, payload,
			tokens_input, tokens_output, model, error_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	args := []any{
		entry.Timestamp,
		entry.Results,
		entry.StageType,
		entry.PluginName,
		entry.ProcessID,
		encodeDocuments(entry.Documents),
		entry.ClientID,
		entry.ProcessTypeID,
		[]byte(entry.Payload),
		entry.TokenUsage.Input,
		entry.TokenUsage.Output,
		entry.TokenUsage.Model,
		entry.ErrorDetail,
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, q, args...).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, err
	}

	entry.ID = id
	return &entry, nil
}

func (r *repo) ListByProcess(ctx context.Context, processID uuid.UUID) ([]Entry, error) {
	q := `
		SELECT id, timestamp, results, stage_type, plugin_name, process_id,
			documents, client_id, process_type_id, payload,
			tokens_input, tokens_output, model, error_detail
		FROM audit_logs
		WHERE process_id = $1
		ORDER BY id`

	entries, err := repository.QueryMany(ctx, r.db, q, []any{processID}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}

	return entries, nil
}
