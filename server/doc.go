// Package server provides the HTTP service produced by bootstrap: a Gin
// router exposing the greeting, message, and static-file routes, with a
// construct → bind → serve lifecycle driven by the host.
//
// New only assembles the router; no socket is touched until the host calls
// Bind, which binds the listener and starts serving in the background.
// Request-scoped failures (a message read, a static file) are mapped to 500
// responses at the request boundary and never abort the service.
package server
