// Package middleware provides the HTTP middleware chain for the Veritas
// server.
//
// The chain, outermost first: Recovery, Logging, RequestID, CORS, Timeout.
// Recovery sits outside everything so a panic anywhere still produces a
// well-formed JSON error. RequestID runs before logging-dependent handlers
// so every log line and audit record shares the same correlation ID.
package middleware
