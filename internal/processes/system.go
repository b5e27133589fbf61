package processes

import (
	"context"

	"github.com/google/uuid"

	"github.com/steward-io/steward/pkg/pagination"
)

// System defines process domain operations. Status transitions go through
// Transition, which enforces the state machine and an optimistic guard on
// the expected current state.
type System interface {
	Handler() *Handler
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Process], error)
	Find(ctx context.Context, id uuid.UUID) (*Process, error)
	Create(ctx context.Context, cmd CreateCommand) (*Process, error)
	HITLQueue(ctx context.Context, page pagination.PageRequest, tenantID *uuid.UUID) (*pagination.PageResult[Process], error)
	FindDocuments(ctx context.Context, processID uuid.UUID) ([]Document, error)
	UpdateDocument(ctx context.Context, id uuid.UUID, mut DocumentMutation) (*Document, error)
	Transition(ctx context.Context, id uuid.UUID, from []Status, to Status, mut Mutation) (*Process, error)
}

// DocumentMutation carries optional per-document field updates.
// Nil fields are left unchanged.
type DocumentMutation struct {
	Status        *DocumentStatus
	OCRText       *string
	OCRConfidence *float64
	FraudScore    *float64
	FraudFlags    []string
}
