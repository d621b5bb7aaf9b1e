// Package server provides the HTTP server for the Veritas analysis API.
//
// # Overview
//
// The server wires the detection pipeline, telemetry, and audit trail into
// a single net/http server with a middleware chain (recovery, logging,
// request ID, CORS, per-request timeout) and graceful shutdown.
//
// # Routes
//
//	POST /v1/analyze  - analyze a passage
//	GET  /            - embedded analysis page
//	GET  /health      - liveness probe
//	GET  /ready       - readiness probe
//	GET  /version     - build information
//	GET  /metrics     - Prometheus exposition
//
// Probe and metrics paths are configurable; the defaults are shown.
//
// # Lifecycle
//
//	srv := server.NewServer(cfg, server.Dependencies{
//		Detector: det,
//		Logger:   logger,
//	})
//
//	// Blocks until ctx is cancelled or Stop is called
//	if err := srv.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Shutdown drains in-flight requests for up to ShutdownTimeout. TLS
// (minimum version 1.3 by default) is enabled through the security
// configuration.
package server
