package feature

import (
	"math"
)

// Repetition scores adjacent bigram repetition. For every bigram that occurs
// more than once, each occurrence beyond the first counts as repeated; the
// score is the repeated count divided by the total bigram count.
//
// Returns 0 when the document has fewer than two words.
func Repetition(doc *Document) float64 {
	if len(doc.Words) < 2 {
		return 0
	}

	freq := make(map[[2]string]int, len(doc.Words)-1)
	for i := 0; i+1 < len(doc.Words); i++ {
		freq[[2]string{doc.Words[i], doc.Words[i+1]}]++
	}

	total := len(doc.Words) - 1
	repeated := 0
	for _, n := range freq {
		if n > 1 {
			repeated += n - 1
		}
	}

	return float64(repeated) / float64(total)
}

// Entropy computes the Shannon entropy of the word frequency distribution
// in bits. A document made of a single repeated token has entropy 0.
//
// Returns 0 on empty input.
func Entropy(doc *Document) float64 {
	if doc.Empty() {
		return 0
	}

	freq := make(map[string]int, len(doc.Words))
	for _, w := range doc.Words {
		freq[w]++
	}

	total := float64(len(doc.Words))
	entropy := 0.0
	for _, n := range freq {
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}

// Complexity blends average sentence length (words per sentence) and average
// word length (characters per word) with equal weight.
//
// Returns 0 when the document has no sentences.
func Complexity(doc *Document) float64 {
	if doc.SentenceCount() == 0 || doc.Empty() {
		return 0
	}

	avgSentenceLen := float64(len(doc.Words)) / float64(len(doc.Sentences))

	chars := 0
	for _, w := range doc.Words {
		chars += len(w)
	}
	avgWordLen := float64(chars) / float64(len(doc.Words))

	return avgSentenceLen*0.5 + avgWordLen*0.5
}

// Diversity computes the type-token ratio: distinct word count divided by
// total word count. Text with no repeated words scores 1.0.
//
// Returns 0 on empty input.
func Diversity(doc *Document) float64 {
	if doc.Empty() {
		return 0
	}

	seen := make(map[string]struct{}, len(doc.Words))
	for _, w := range doc.Words {
		seen[w] = struct{}{}
	}

	return float64(len(seen)) / float64(len(doc.Words))
}

// Variation computes the coefficient of variation (population standard
// deviation over mean) of per-sentence word counts, clamped to at most 1.0.
//
// Returns 0 when fewer than two sentences exist.
func Variation(doc *Document) float64 {
	if doc.SentenceCount() < 2 {
		return 0
	}

	lengths := make([]float64, len(doc.Sentences))
	for i, s := range doc.Sentences {
		lengths[i] = float64(len(s))
	}

	mean, sd := meanStd(lengths)
	if mean == 0 {
		return 0
	}

	return math.Min(sd/mean, 1.0)
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}
