// Package detector implements the text analysis pipeline: it extracts
// stylometric metrics from a passage, combines them under a scoring profile
// and renders a human-readable explanation of the verdict.
//
// The pipeline is pure and stateless per call. Metric extraction runs through
// a named registry so profiles can select any subset of the known metrics,
// and capability-gated metrics (such as the part-of-speech distribution) drop
// out of scoring cleanly when their extractor is unavailable.
package detector
