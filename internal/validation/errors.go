package validation

import "errors"

// Domain errors for validation operations.
var (
	ErrPluginNotFound = errors.New("validator plugin not registered")
	ErrInvalidRules   = errors.New("validation rules are malformed")
)
