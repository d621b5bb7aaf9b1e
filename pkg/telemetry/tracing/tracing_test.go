package tracing

import (
	"context"
	"testing"

	"edusignal-hq/veritas/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewDisabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tracer.Enabled() {
		t.Error("tracer reports enabled with tracing off")
	}

	ctx, span := tracer.Start(context.Background(), "detector.analyze")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("noop tracer produced a valid span context")
	}
	if err := tracer.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewNilConfig(t *testing.T) {
	if _, err := New(nil, "test"); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0.1, false},
		{SamplerRatio, 1.5, true},
		{SamplerRatio, -0.1, true},
		{"adaptive", 0, true},
	}

	for _, tt := range tests {
		_, err := newSampler(tt.strategy, tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("newSampler(%q, %v) error = %v, wantErr %v", tt.strategy, tt.ratio, err, tt.wantErr)
		}
	}
}

func TestAnalysisAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	defer provider.Shutdown(context.Background())

	_, span := provider.Tracer("test").Start(context.Background(), "detector.analyze")
	RecordAnalysis(span, "ai", 0.72, "weighted_sum", "classroom-default", 1850, 310, 18)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}

	attrs := make(map[string]any)
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	if attrs[AttrVerdict] != "ai" {
		t.Errorf("verdict attribute = %v", attrs[AttrVerdict])
	}
	if attrs[AttrConfidence] != 0.72 {
		t.Errorf("confidence attribute = %v", attrs[AttrConfidence])
	}
	if attrs[AttrProfile] != "classroom-default" {
		t.Errorf("profile attribute = %v", attrs[AttrProfile])
	}
	if attrs[AttrTextLength] != int64(1850) {
		t.Errorf("text length attribute = %v", attrs[AttrTextLength])
	}
}

func TestTraceIDEmptyWithoutSpan(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("TraceID on empty context = %q, want empty", got)
	}
}
