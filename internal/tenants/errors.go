package tenants

import (
	"errors"
	"net/http"
)

// Domain errors for tenant operations.
var (
	ErrNotFound      = errors.New("tenant not found")
	ErrDuplicate     = errors.New("tenant name already exists")
	ErrInvalidStatus = errors.New("status must be active, suspended, or inactive")
	ErrNotActive     = errors.New("tenant is not active")
)

// MapHTTPStatus maps tenant domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotActive) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
