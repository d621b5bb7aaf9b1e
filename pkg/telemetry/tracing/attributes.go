package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for the analysis path. Attribute values never
// include the submitted text itself.
const (
	AttrVerdict       = "veritas.verdict"
	AttrConfidence    = "veritas.confidence"
	AttrStrategy      = "veritas.strategy"
	AttrProfile       = "veritas.profile"
	AttrTextLength    = "veritas.text_length"
	AttrWordCount     = "veritas.word_count"
	AttrSentenceCount = "veritas.sentence_count"
)

// AnalysisAttributes builds the span attributes for a completed analysis.
func AnalysisAttributes(verdict string, confidence float64, strategy, profile string, textLength, wordCount, sentenceCount int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrVerdict, verdict),
		attribute.Float64(AttrConfidence, confidence),
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrProfile, profile),
		attribute.Int(AttrTextLength, textLength),
		attribute.Int(AttrWordCount, wordCount),
		attribute.Int(AttrSentenceCount, sentenceCount),
	}
}

// RecordAnalysis attaches analysis attributes to a span.
func RecordAnalysis(span trace.Span, verdict string, confidence float64, strategy, profile string, textLength, wordCount, sentenceCount int) {
	span.SetAttributes(AnalysisAttributes(verdict, confidence, strategy, profile, textLength, wordCount, sentenceCount)...)
}
