package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"edusignal-hq/veritas/pkg/server/types"
)

// Recovery recovers from panics in HTTP handlers and returns a 500 response
// in the service's JSON error format. The panic and stack trace are logged;
// internal details never reach the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := GetRequestID(r.Context())
					stack := debug.Stack()

					logger.ErrorContext(r.Context(), "panic in handler",
						"error", err,
						"request_id", requestID,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(stack),
					)

					errResp := types.NewServerError(
						"An internal error occurred. Please try again later.",
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(errResp)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
