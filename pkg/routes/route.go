// Package routes declares HTTP routes as data. Each domain handler
// exposes a Group, and the server registers them all on one mux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. Pattern is
// relative to the enclosing group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
