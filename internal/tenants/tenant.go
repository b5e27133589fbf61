// Package tenants implements the tenant domain for Steward.
// It provides types, data access, and HTTP handlers for the isolated
// organizations that own processes, configurations, and documents.
package tenants

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated organization. The identifier is immutable;
// the token balance is mutated only by billing operations outside this system.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Status       Status    `json:"status"`
	Tier         string    `json:"tier"`
	TokenBalance int64     `json:"token_balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new tenant.
type CreateCommand struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}
