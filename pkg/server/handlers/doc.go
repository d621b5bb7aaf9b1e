// Package handlers implements the HTTP handlers for the Veritas API.
//
// Routes:
//
//	POST /v1/analyze  - run the detection pipeline on a passage
//	GET  /            - embedded HTML page for manual analysis
//	GET  /health      - liveness probe (pkg/telemetry/health)
//	GET  /ready       - readiness probe (pkg/telemetry/health)
//	GET  /version     - build information (pkg/telemetry/health)
//	GET  /metrics     - Prometheus exposition (pkg/telemetry/metrics)
//
// All error responses use the JSON envelope from pkg/server/types.
package handlers
