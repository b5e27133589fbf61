package audit

import (
	"errors"
	"net/http"
)

// Domain errors for audit operations.
var (
	// ErrWriteFailed indicates the durable append did not commit. A stage
	// transition guarded by this emitter must not be considered committed
	// when Emit returns this error.
	ErrWriteFailed = errors.New("audit write failed")
	ErrNotFound    = errors.New("audit entry not found")
)

// MapHTTPStatus maps audit domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
