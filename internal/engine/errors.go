package engine

import (
	"errors"
	"net/http"

	"github.com/steward-io/steward/internal/processes"
)

// Domain errors for engine operations.
var (
	// ErrExecutor wraps a stage executor fault. The attempt is recorded
	// as FAILED in the audit trail; the state machine never retries it.
	ErrExecutor = errors.New("stage executor failed")

	// ErrInvalidState rejects an operator action against a process that
	// is not in the state the action requires, including a second approve
	// on an already-resolved review.
	ErrInvalidState = errors.New("operation not valid in current process state")

	ErrValidationRejected = errors.New("validation rejected payload")
)

// MapHTTPStatus maps engine errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidState) {
		return http.StatusConflict
	}
	if errors.Is(err, processes.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, processes.ErrStaleTransition) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
