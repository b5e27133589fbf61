package notifications

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for notification operations.
type System interface {
	Handler() *Handler

	// Notify persists the notification and publishes it on the event bus
	// under the notification.<type> topic.
	Notify(ctx context.Context, cmd NotifyCommand) (*Notification, error)

	ListByClient(ctx context.Context, clientID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error)
}
