// Package types defines the wire types for the Veritas HTTP API: the
// analyze request/response bodies and the JSON error envelope shared by
// handlers and middleware.
package types
