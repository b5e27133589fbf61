package processes

import (
	"errors"
	"net/http"
)

// Domain errors for process operations.
var (
	ErrNotFound      = errors.New("process not found")
	ErrInvalidStatus = errors.New("unknown process status")
	ErrNoDocuments   = errors.New("process requires at least one document")

	// ErrStaleTransition indicates the process was not in the expected state
	// when a guarded transition ran. A concurrent writer already advanced
	// the process; callers should re-read the current state, not retry the
	// stale transition.
	ErrStaleTransition = errors.New("process state already advanced")

	// ErrInvalidTransition indicates a transition the state machine does
	// not permit from the current state.
	ErrInvalidTransition = errors.New("transition not permitted from current state")
)

// MapHTTPStatus maps process domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNoDocuments) || errors.Is(err, ErrInvalidStatus) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrStaleTransition) || errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
