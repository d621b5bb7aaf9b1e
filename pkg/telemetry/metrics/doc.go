// Package metrics provides Prometheus metrics collection for the Veritas
// service.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring text
// analysis throughput, verdict distribution, scoring profile reloads, and the
// audit trail. All metrics live in a private registry so tests and embedded
// uses never collide with the global default registry.
//
// # Metrics Categories
//
//   - Analysis Metrics: Analysis count, duration, confidence, text length
//   - Profile Metrics: Scoring profile reload attempts by source
//   - Audit Metrics: Audit record writes and retention pruning
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, nil)
//
//	// Record analysis metrics
//	collector.RecordAnalysis(
//		"ai",              // verdict
//		"success",         // status
//		0.72,              // confidence
//		1850,              // text length
//		3*time.Millisecond,// duration
//	)
//
//	// Record profile reloads
//	collector.RecordProfileReload("file", "success")
//
// # Prometheus Endpoint
//
// All metrics are exposed on the /metrics endpoint in standard Prometheus format:
//
//	# HELP veritas_detector_analyses_total Total number of text analyses performed
//	# TYPE veritas_detector_analyses_total counter
//	veritas_detector_analyses_total{verdict="ai",status="success"} 1234
//
// # Label Discipline
//
// Label values are drawn from small closed sets (verdict, status, source,
// reason), so metric cardinality stays bounded without a limiter.
package metrics
