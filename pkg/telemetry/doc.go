// Package telemetry provides observability for the Veritas service.
//
// # Components
//
//   - logging: Structured logging (log/slog) with PII redaction
//   - metrics: Prometheus metrics for analyses, profile reloads, and the audit trail
//   - tracing: OpenTelemetry distributed tracing over OTLP
//   - health: Liveness and readiness probes
//
// Each component is configured independently through config.TelemetryConfig
// and constructed during service startup. Analysis is pure computation, so
// the overriding design constraint is that telemetry must never leak the
// submitted text: log fields are redacted, metrics carry only closed label
// sets, and span attributes record dimensions rather than content.
package telemetry
