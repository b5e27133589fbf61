package configurations

import (
	"errors"
	"net/http"
)

// Domain errors for configuration operations.
var (
	ErrNotFound      = errors.New("no active configuration found")
	ErrDuplicate     = errors.New("configuration version already exists")
	ErrMissingPlugin = errors.New("plugin_name required")
	ErrBadThreshold  = errors.New("confidence_threshold must be between 0 and 1")
)

// MapHTTPStatus maps configuration domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingPlugin) || errors.Is(err, ErrBadThreshold) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
