package metrics

import (
	"time"

	"edusignal-hq/veritas/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in the
// Veritas service. It manages metric registration and provides a unified
// interface for recording metrics across all components.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Analysis metrics
	analysisMetrics *AnalysisMetrics

	// Profile metrics
	profileMetrics *ProfileMetrics

	// Audit metrics
	auditMetrics *AuditMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a private registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "veritas",
//		Subsystem: "detector",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "veritas"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "detector"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Analysis is pure computation; latencies sit well under a second.
		cfg.DurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0}
	}
	if len(cfg.TextLengthBuckets) == 0 {
		cfg.TextLengthBuckets = []float64{100, 250, 500, 1000, 2500, 5000, 10000, 50000}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.analysisMetrics = NewAnalysisMetrics(cfg, registry)
	c.profileMetrics = NewProfileMetrics(cfg, registry)
	c.auditMetrics = NewAuditMetrics(cfg, registry)

	return c
}

// RecordAnalysis records metrics for a completed analysis.
//
// Parameters:
//   - verdict: "ai" or "human"
//   - status: Request status ("success", "error", "rejected")
//   - confidence: Combined score in [0, 1]
//   - textLength: Length of the analyzed text in characters
//   - duration: Analysis duration
func (c *Collector) RecordAnalysis(verdict, status string, confidence float64, textLength int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.analysisMetrics.RecordAnalysis(verdict, status, confidence, textLength, duration)
}

// RecordRejected records a request rejected before analysis (too short,
// malformed body).
func (c *Collector) RecordRejected(reason string) {
	if !c.config.Enabled {
		return
	}

	c.analysisMetrics.RecordRejected(reason)
}

// RecordProfileReload records a scoring profile reload attempt.
//
// Parameters:
//   - source: Profile source ("file", "git", "builtin")
//   - status: "success" or "error"
func (c *Collector) RecordProfileReload(source, status string) {
	if !c.config.Enabled {
		return
	}

	c.profileMetrics.RecordReload(source, status)
}

// RecordAuditWrite records an audit record write.
//
// Parameters:
//   - status: "success", "error", or "dropped"
func (c *Collector) RecordAuditWrite(status string) {
	if !c.config.Enabled {
		return
	}

	c.auditMetrics.RecordWrite(status)
}

// RecordAuditPrune records the outcome of a retention pruning run.
func (c *Collector) RecordAuditPrune(deleted int64) {
	if !c.config.Enabled {
		return
	}

	c.auditMetrics.RecordPrune(deleted)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
