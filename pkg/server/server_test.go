package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
	"edusignal-hq/veritas/pkg/telemetry/health"
	"edusignal-hq/veritas/pkg/telemetry/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := detector.NewRegistry(feature.NewTagger())
	store := profile.NewStore(profile.Default())
	det := detector.New(registry, store, logger)

	checker := health.New(time.Second)
	checker.RegisterCheck("profile", health.ReadyCheck(store))

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	return NewServer(cfg, Dependencies{
		Detector:  det,
		Collector: collector,
		Checker:   checker,
		Logger:    logger,
		Version:   "test",
	})
}

func TestServerRoutes(t *testing.T) {
	handler := newTestServer(t).Handler()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/v1/analyze", `{"text": ""}`, http.StatusBadRequest},
		{http.MethodGet, "/no/such/route", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
	}
}

func TestServerAnalyzeEndToEnd(t *testing.T) {
	handler := newTestServer(t).Handler()

	passage := strings.Repeat("The students finished their essays before the bell rang. ", 6)
	body, _ := json.Marshal(map[string]string{"text": passage})

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp["is_ai_generated"]; !ok {
		t.Errorf("response missing verdict: %v", resp)
	}
}

func TestServerStartStop(t *testing.T) {
	srv := newTestServer(t)
	srv.config.Server.ListenAddress = "127.0.0.1:0"

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(t.Context())
	}()

	deadline := time.After(2 * time.Second)
	for !srv.IsRunning() {
		select {
		case err := <-errChan:
			t.Fatalf("server exited early: %v", err)
		case <-deadline:
			t.Fatal("server never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	srv.Stop()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	if srv.IsRunning() {
		t.Error("server still reports running after stop")
	}
}
