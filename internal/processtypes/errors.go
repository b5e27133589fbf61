package processtypes

import (
	"errors"
	"net/http"
)

// Domain errors for process type operations.
var (
	ErrNotFound  = errors.New("process type not found")
	ErrDuplicate = errors.New("process type already exists")
	ErrInvalidID = errors.New("process type id must be a non-empty slug")
	ErrInactive  = errors.New("process type is not active")
)

// MapHTTPStatus maps process type domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInactive) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
