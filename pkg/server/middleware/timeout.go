package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the handling of a single request with context.WithTimeout.
// Handlers observe cancellation through the request context; analysis is
// pure computation, so in practice the deadline only fires on pathological
// inputs or a stalled audit backend.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
