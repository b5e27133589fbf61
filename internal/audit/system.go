package audit

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for audit operations.
//
// Emit is the write path: it durably appends the entry and then publishes
// it on the event bus. The append commits before publication; a publish
// failure is logged and does not fail the emit (the durable row is the
// source of truth, the bus is at-least-once best effort on top of it).
// If the append itself fails, Emit returns ErrWriteFailed and the caller
// must treat its state transition as not committed.
type System interface {
	Handler() *Handler

	Emit(ctx context.Context, entry Entry) error

	// ListByProcess returns all entries for a process in commit order.
	// Timestamps are non-decreasing within the returned slice.
	ListByProcess(ctx context.Context, processID uuid.UUID) ([]Entry, error)
}
