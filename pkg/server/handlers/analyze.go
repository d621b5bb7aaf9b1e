package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"edusignal-hq/veritas/pkg/audit/recorder"
	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/profile"
	"edusignal-hq/veritas/pkg/server/middleware"
	"edusignal-hq/veritas/pkg/server/types"
	"edusignal-hq/veritas/pkg/telemetry/metrics"
	"edusignal-hq/veritas/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/trace"
)

// AnalyzeHandler serves POST /v1/analyze. It validates the submission,
// runs the detection pipeline, and returns the verdict as JSON. Completed
// analyses are recorded to the audit trail and the metrics collector when
// those are configured.
type AnalyzeHandler struct {
	detector  *detector.Detector
	config    *config.DetectorConfig
	maxBody   int64
	logger    *slog.Logger
	collector *metrics.Collector
	auditor   *recorder.Recorder
	tracer    *tracing.Tracer
}

// NewAnalyzeHandler creates the analyze handler. The collector, auditor,
// and tracer may be nil.
func NewAnalyzeHandler(det *detector.Detector, cfg *config.DetectorConfig, maxBody int64, logger *slog.Logger, collector *metrics.Collector, auditor *recorder.Recorder, tracer *tracing.Tracer) *AnalyzeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalyzeHandler{
		detector:  det,
		config:    cfg,
		maxBody:   maxBody,
		logger:    logger.With("component", "server.analyze"),
		collector: collector,
		auditor:   auditor,
		tracer:    tracer,
	}
}

// ServeHTTP handles the analyze request.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed,
			types.NewInvalidRequestError("Method not allowed. Use POST.", "", ""))
		return
	}

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.reject(w, http.StatusRequestEntityTooLarge, "too_large",
				types.NewInvalidRequestError("Request body too large.", "text", types.CodeRequestTooLarge))
			return
		}
		h.reject(w, http.StatusBadRequest, "invalid_json",
			types.NewInvalidRequestError("Request body is not valid JSON.", "", types.CodeInvalidJSON))
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		h.reject(w, http.StatusBadRequest, "empty_text",
			types.NewInvalidRequestError("Field 'text' is required and must not be empty.", "text", types.CodeMissingField))
		return
	}

	if h.config.MinTextLength > 0 && len(text) < h.config.MinTextLength {
		h.reject(w, http.StatusBadRequest, "too_short",
			types.NewInvalidRequestError(
				"Text is too short for reliable analysis. Provide a longer passage.",
				"text", types.CodeTextTooShort))
		return
	}

	start := time.Now()

	ctx := r.Context()
	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.Start(ctx, "detector.analyze")
		defer span.End()
	}

	result, err := h.detector.Detect(ctx, text)
	if span != nil {
		tracing.SetStatus(span, err)
	}
	if err != nil {
		if errors.Is(err, profile.ErrNotLoaded) {
			h.reject(w, http.StatusServiceUnavailable, "no_profile",
				types.NewServiceUnavailableError("No scoring profile is loaded yet. Try again shortly.", types.CodeProfileNotLoaded))
			return
		}

		h.logger.ErrorContext(r.Context(), "analysis failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError,
			types.NewServerError("Analysis failed. Please try again later."))
		return
	}

	requestID := middleware.GetRequestID(r.Context())

	verdict := "human"
	if result.AIGenerated {
		verdict = "ai"
	}

	if span != nil {
		tracing.RecordAnalysis(span, verdict, result.Confidence, result.Strategy,
			result.Profile, len(text), result.WordCount, result.SentenceCount)
	}

	if h.collector != nil {
		h.collector.RecordAnalysis(verdict, "success", result.Confidence, len(text), time.Since(start))
	}

	if h.auditor != nil {
		record := recorder.NewRecord(text, requestID, result)
		// Best effort: a full audit buffer must not fail the analysis
		_ = h.auditor.Record(r.Context(), record)
	}

	resp := types.AnalyzeResponse{
		IsAIGenerated:  result.AIGenerated,
		Confidence:     result.Confidence,
		Metrics:        result.Metrics,
		Explanation:    result.Explanation,
		Profile:        result.Profile,
		ProfileVersion: result.ProfileVersion,
		Strategy:       result.Strategy,
		WordCount:      result.WordCount,
		SentenceCount:  result.SentenceCount,
		RequestID:      requestID,
	}

	writeJSON(w, http.StatusOK, resp)
}

// reject writes a client error and counts the rejection.
func (h *AnalyzeHandler) reject(w http.ResponseWriter, status int, reason string, resp *types.ErrorResponse) {
	if h.collector != nil {
		h.collector.RecordRejected(reason)
	}
	writeError(w, status, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response with the given status code.
func writeError(w http.ResponseWriter, status int, resp *types.ErrorResponse) {
	writeJSON(w, status, resp)
}
