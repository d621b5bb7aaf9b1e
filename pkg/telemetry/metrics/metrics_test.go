package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edusignal-hq/veritas/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestCollector() *Collector {
	cfg := &config.MetricsConfig{Enabled: true}
	return NewCollector(cfg, prometheus.NewRegistry())
}

func TestRecordAnalysis(t *testing.T) {
	c := newTestCollector()

	c.RecordAnalysis("ai", "success", 0.72, 1850, 3*time.Millisecond)
	c.RecordAnalysis("human", "success", 0.31, 600, 2*time.Millisecond)
	c.RecordAnalysis("ai", "success", 0.80, 900, 1*time.Millisecond)

	if got := testutil.ToFloat64(c.analysisMetrics.analysesTotal.WithLabelValues("ai", "success")); got != 2 {
		t.Errorf("analyses_total{ai,success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.analysisMetrics.analysesTotal.WithLabelValues("human", "success")); got != 1 {
		t.Errorf("analyses_total{human,success} = %v, want 1", got)
	}
}

func TestRecordAnalysisDisabled(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: false}
	c := NewCollector(cfg, prometheus.NewRegistry())

	c.RecordAnalysis("ai", "success", 0.72, 1850, time.Millisecond)

	if got := testutil.ToFloat64(c.analysisMetrics.analysesTotal.WithLabelValues("ai", "success")); got != 0 {
		t.Errorf("disabled collector recorded metrics: %v", got)
	}
}

func TestRecordRejected(t *testing.T) {
	c := newTestCollector()

	c.RecordRejected("too_short")
	c.RecordRejected("too_short")

	if got := testutil.ToFloat64(c.analysisMetrics.rejectedTotal.WithLabelValues("too_short")); got != 2 {
		t.Errorf("rejected_total{too_short} = %v, want 2", got)
	}
}

func TestRecordProfileReload(t *testing.T) {
	c := newTestCollector()

	c.RecordProfileReload("file", "success")
	c.RecordProfileReload("file", "error")

	if got := testutil.ToFloat64(c.profileMetrics.reloadsTotal.WithLabelValues("file", "success")); got != 1 {
		t.Errorf("profile_reloads_total{file,success} = %v, want 1", got)
	}
}

func TestRecordAuditMetrics(t *testing.T) {
	c := newTestCollector()

	c.RecordAuditWrite("success")
	c.RecordAuditWrite("dropped")
	c.RecordAuditPrune(17)
	c.RecordAuditPrune(0)

	if got := testutil.ToFloat64(c.auditMetrics.writesTotal.WithLabelValues("dropped")); got != 1 {
		t.Errorf("audit_writes_total{dropped} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.auditMetrics.prunedTotal); got != 17 {
		t.Errorf("audit_pruned_total = %v, want 17", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := newTestCollector()
	c.RecordAnalysis("ai", "success", 0.72, 1850, 3*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("metrics endpoint status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "veritas_detector_analyses_total") {
		t.Errorf("exposition missing analyses_total:\n%s", body)
	}
	if !strings.Contains(body, "veritas_detector_analysis_duration_seconds") {
		t.Errorf("exposition missing duration histogram")
	}
}
