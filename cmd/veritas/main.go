// Veritas is a heuristic scoring service for AI-generated text detection.
//
// It exposes an HTTP API that analyzes submitted passages with a set of
// stylometric metrics, combines them under a configurable scoring profile,
// and returns a verdict with per-metric detail:
//   - Statistical text metrics (repetition, entropy, diversity, readability)
//   - Hot-reloadable scoring profiles from file or Git
//   - Audit trail of verdicts with retention pruning
//   - Prometheus metrics, health probes, and OTLP tracing
//
// Usage:
//
//	# Start server with default configuration
//	veritas run
//
//	# Start with custom configuration file
//	veritas run --config /path/to/config.yaml
//
//	# Analyze files from the command line
//	veritas analyze essay.txt
//
//	# Validate configuration and scoring profile
//	veritas validate
//
//	# Query the audit trail
//	veritas audit query --time-range "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z"
//
// For complete documentation, see: https://github.com/edusignal-hq/veritas
package main

func main() {
	Execute()
}
