// Package logging provides structured logging with redaction of submitted
// text and personal data.
//
// # Overview
//
// The logging package builds on Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Automatic redaction of student passages and personal data
//   - Context-aware request ID propagation
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    RedactPII: true,
//	})
//
//	// Log structured data
//	logger.Info("analysis completed",
//	    "request_id", "req-123",
//	    "text", submission,  // Automatically redacted
//	    "duration_ms", 12,
//	)
//
// # Redaction
//
// The service analyzes student writing. With RedactPII enabled, attributes
// keyed as submitted content ("text", "passage", "submission", ...) are
// replaced wholesale, and string values are scrubbed of:
//
//   - Emails: user@example.com → ***@***
//   - SSN: 123-45-6789 → ***-**-****
//   - Phone numbers: (555) 123-4567 → ***-***-****
//   - IP addresses: 192.168.1.100 → *.*.*.*
//   - Bearer tokens: Bearer abc123 → Bearer ***
//
// Redaction runs inside a slog.Handler wrapper, so it applies regardless of
// which logger derived from the root writes the record.
package logging
