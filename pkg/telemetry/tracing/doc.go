// Package tracing provides OpenTelemetry distributed tracing for the
// Veritas service.
//
// Tracing is disabled by default. When enabled, spans are exported over
// OTLP gRPC to the configured collector endpoint, with W3C Trace Context
// propagation and parent-based sampling (always, never, or trace ID
// ratio).
//
// Spans cover the analyze request path. Attributes carry the verdict,
// confidence, scoring strategy, profile name, and text dimensions but
// never the submitted text.
//
// Usage:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "detector.analyze")
//	defer span.End()
package tracing
