package notifications

import (
	"errors"
	"net/http"
)

// Domain errors for notification operations.
var ErrNotFound = errors.New("notification not found")

// MapHTTPStatus maps notification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
