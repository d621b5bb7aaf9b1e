package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
	"edusignal-hq/veritas/pkg/server/types"
)

func newTestHandler(t *testing.T, minLength int, maxBody int64) *AnalyzeHandler {
	t.Helper()

	registry := detector.NewRegistry(feature.NewTagger())
	store := profile.NewStore(profile.Default())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	det := detector.New(registry, store, logger)

	cfg := &config.DetectorConfig{MinTextLength: minLength}

	return NewAnalyzeHandler(det, cfg, maxBody, logger, nil, nil, nil)
}

func postAnalyze(t *testing.T, h *AnalyzeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

const samplePassage = `The library was quieter than usual that Thursday afternoon.
Rain pressed against the tall windows while a handful of students worked
through their assignments. Marta reviewed her essay draft twice, crossed
out a paragraph, and started the conclusion over from scratch because the
argument had drifted away from her thesis.`

func TestAnalyzeReturnsResult(t *testing.T) {
	h := newTestHandler(t, 100, 0)

	body, _ := json.Marshal(types.AnalyzeRequest{Text: samplePassage})
	rec := postAnalyze(t, h, string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp types.AnalyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Confidence < 0 || resp.Confidence > 1 {
		t.Errorf("confidence = %v, want [0,1]", resp.Confidence)
	}
	if resp.Explanation == "" {
		t.Error("explanation is empty")
	}
	if resp.Profile != "classroom-default" {
		t.Errorf("profile = %q", resp.Profile)
	}
	if len(resp.Metrics) == 0 {
		t.Error("metrics map is empty")
	}
	if resp.WordCount == 0 {
		t.Error("word count is zero")
	}
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, 0, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/analyze", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	h := newTestHandler(t, 0, 0)

	rec := postAnalyze(t, h, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp types.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error.Code != types.CodeInvalidJSON {
		t.Errorf("error code = %q, want %q", resp.Error.Code, types.CodeInvalidJSON)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	h := newTestHandler(t, 0, 0)

	rec := postAnalyze(t, h, `{"text": "   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp types.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error.Code != types.CodeMissingField {
		t.Errorf("error code = %q, want %q", resp.Error.Code, types.CodeMissingField)
	}
	if resp.Error.Param != "text" {
		t.Errorf("error param = %q, want text", resp.Error.Param)
	}
}

func TestAnalyzeTextTooShort(t *testing.T) {
	h := newTestHandler(t, 100, 0)

	rec := postAnalyze(t, h, `{"text": "Too short to score."}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp types.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error.Code != types.CodeTextTooShort {
		t.Errorf("error code = %q, want %q", resp.Error.Code, types.CodeTextTooShort)
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	h := newTestHandler(t, 0, 64)

	big := `{"text": "` + strings.Repeat("word ", 100) + `"}`
	rec := postAnalyze(t, h, big)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestAnalyzeNoProfileLoaded(t *testing.T) {
	registry := detector.NewRegistry(feature.NewTagger())
	store := profile.NewStore(nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	det := detector.New(registry, store, logger)

	h := NewAnalyzeHandler(det, &config.DetectorConfig{}, 0, logger, nil, nil, nil)

	body, _ := json.Marshal(types.AnalyzeRequest{Text: samplePassage})
	rec := postAnalyze(t, h, string(body))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp types.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Error.Code != types.CodeProfileNotLoaded {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestIndexHandler(t *testing.T) {
	h := IndexHandler()

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/v1/analyze") {
		t.Error("index page does not reference the analyze endpoint")
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}
