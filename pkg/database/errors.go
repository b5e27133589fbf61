package database

import "errors"

// ErrNotReady indicates the connection pool has not been established yet;
// callers reaching the store before the lifecycle startup hook completes
// receive this instead of a nil pool dereference.
var ErrNotReady = errors.New("database not ready")
