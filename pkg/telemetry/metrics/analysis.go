package metrics

import (
	"time"

	"edusignal-hq/veritas/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisMetrics tracks metrics related to text analysis.
//
// Metrics:
//   - veritas_detector_analyses_total: Total analysis count by verdict, status
//   - veritas_detector_analysis_duration_seconds: Analysis duration histogram
//   - veritas_detector_analysis_confidence: Confidence score histogram
//   - veritas_detector_analysis_text_length_chars: Analyzed text length histogram
//   - veritas_detector_rejected_total: Requests rejected before analysis
type AnalysisMetrics struct {
	// Total analysis count
	analysesTotal *prometheus.CounterVec

	// Analysis duration histogram
	analysisDuration prometheus.Histogram

	// Confidence score histogram
	confidence prometheus.Histogram

	// Analyzed text length histogram
	textLength prometheus.Histogram

	// Requests rejected before analysis
	rejectedTotal *prometheus.CounterVec
}

// NewAnalysisMetrics creates and registers analysis metrics with the provided registry.
func NewAnalysisMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AnalysisMetrics {
	am := &AnalysisMetrics{
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analyses_total",
				Help:      "Total number of text analyses performed",
			},
			[]string{"verdict", "status"},
		),

		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_duration_seconds",
				Help:      "Duration of text analyses in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		confidence: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_confidence",
				Help:      "Distribution of analysis confidence scores",
				Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
			},
		),

		textLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "analysis_text_length_chars",
				Help:      "Length of analyzed passages in characters",
				Buckets:   cfg.TextLengthBuckets,
			},
		),

		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rejected_total",
				Help:      "Total number of requests rejected before analysis",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		am.analysesTotal,
		am.analysisDuration,
		am.confidence,
		am.textLength,
		am.rejectedTotal,
	)

	return am
}

// RecordAnalysis records metrics for a completed analysis.
func (am *AnalysisMetrics) RecordAnalysis(verdict, status string, confidenceScore float64, textLength int, duration time.Duration) {
	am.analysesTotal.WithLabelValues(verdict, status).Inc()
	am.analysisDuration.Observe(duration.Seconds())
	am.confidence.Observe(confidenceScore)
	am.textLength.Observe(float64(textLength))
}

// RecordRejected records a request rejected before analysis.
func (am *AnalysisMetrics) RecordRejected(reason string) {
	am.rejectedTotal.WithLabelValues(reason).Inc()
}

// ProfileMetrics tracks metrics related to scoring profile loading.
//
// Metrics:
//   - veritas_detector_profile_reloads_total: Reload attempts by source, status
type ProfileMetrics struct {
	reloadsTotal *prometheus.CounterVec
}

// NewProfileMetrics creates and registers profile metrics with the provided registry.
func NewProfileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProfileMetrics {
	pm := &ProfileMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "profile_reloads_total",
				Help:      "Total number of scoring profile reload attempts",
			},
			[]string{"source", "status"},
		),
	}

	registry.MustRegister(pm.reloadsTotal)

	return pm
}

// RecordReload records a profile reload attempt.
func (pm *ProfileMetrics) RecordReload(source, status string) {
	pm.reloadsTotal.WithLabelValues(source, status).Inc()
}

// AuditMetrics tracks metrics related to the audit trail.
//
// Metrics:
//   - veritas_detector_audit_writes_total: Audit record writes by status
//   - veritas_detector_audit_pruned_total: Records removed by retention pruning
type AuditMetrics struct {
	writesTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewAuditMetrics creates and registers audit metrics with the provided registry.
func NewAuditMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AuditMetrics {
	am := &AuditMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_writes_total",
				Help:      "Total number of audit record writes",
			},
			[]string{"status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_pruned_total",
				Help:      "Total number of audit records removed by retention pruning",
			},
		),
	}

	registry.MustRegister(am.writesTotal, am.prunedTotal)

	return am
}

// RecordWrite records an audit record write.
func (am *AuditMetrics) RecordWrite(status string) {
	am.writesTotal.WithLabelValues(status).Inc()
}

// RecordPrune records the outcome of a retention pruning run.
func (am *AuditMetrics) RecordPrune(deleted int64) {
	if deleted > 0 {
		am.prunedTotal.Add(float64(deleted))
	}
}
