package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/messaging"
	"github.com/steward-io/steward/pkg/repository"
)

const returning = "id, process_id, client_id, type, severity, message, read, created_at"

type repo struct {
	db     *sql.DB
	bus    messaging.System
	logger *slog.Logger
}

// New creates a notification repository implementing the System interface.
func New(
	db *sql.DB,
	bus messaging.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:     db,
		bus:    bus,
		logger: logger.With("system", "notifications"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Notify(ctx context.Context, cmd NotifyCommand) (*Notification, error) {
	q := fmt.Sprintf(`
		INSERT INTO notifications(process_id, client_id, type, severity, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, returning)

	args := []any{cmd.ProcessID, cmd.ClientID, cmd.Type, cmd.Severity, cmd.Message}

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Notification, error) {
		return repository.QueryOne(ctx, tx, q, args, scanNotification)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	topic := messaging.Topic("notification", string(n.Type))
	if err := r.bus.Publish(topic, n); err != nil {
		r.logger.Error("notification publish failed", "id", n.ID, "topic", topic, "error", err)
	}

	r.logger.Info(
		"notification created",
		"id", n.ID,
		"process_id", n.ProcessID,
		"type", n.Type,
		"severity", n.Severity,
	)
	return &n, nil
}

func (r *repo) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
	unreadOnly bool,
) ([]Notification, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE client_id = $1 AND ($2 = false OR read = false)
		ORDER BY created_at DESC`, returning)

	items, err := repository.QueryMany(ctx, r.db, q, []any{clientID, unreadOnly}, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	return items, nil
}

func (r *repo) MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error) {
	q := fmt.Sprintf(`
		UPDATE notifications SET read = true
		WHERE id = $1
		RETURNING %s`, returning)

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Notification, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanNotification)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	return &n, nil
}

func scanNotification(s repository.Scanner) (Notification, error) {
	var n Notification
	err := s.Scan(
		&n.ID,
		&n.ProcessID,
		&n.ClientID,
		&n.Type,
		&n.Severity,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
	)
	return n, err
}
