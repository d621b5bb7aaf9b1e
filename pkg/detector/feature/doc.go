// Package feature computes scalar stylometric signals from raw text.
//
// Each extractor is an independent pure function over a parsed Document.
// Extractors never fail: empty or degenerate input yields a defined neutral
// value (typically 0) so the detection pipeline stays total. Metrics that
// require external language resources (part-of-speech tagging) are modeled
// as capability plugins and are only registered when their resources are
// available.
//
// The core signal set:
//   - repetition: adjacent bigram repetition rate
//   - entropy: Shannon entropy over the word frequency distribution
//   - complexity: blended average sentence length and word length
//   - vocabulary diversity: type-token ratio
//   - sentence variation: coefficient of variation of sentence lengths
//
// Optional signals:
//   - transition patterns: density of discourse transition words
//   - pos distribution: normalized entropy of part-of-speech tags
//   - readability: Flesch reading ease, rescaled to [0, 1]
package feature
