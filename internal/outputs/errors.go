package outputs

import (
	"errors"
	"net/http"
)

// Domain errors for output action operations.
var (
	ErrNotFound    = errors.New("output action not found")
	ErrUnknownType = errors.New("unknown output action type")
	ErrNotPending  = errors.New("output action is not dispatchable")
	ErrNoSender    = errors.New("no sender registered for action type")
)

// MapHTTPStatus maps output domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnknownType) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotPending) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
