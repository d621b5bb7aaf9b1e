package detector

import (
	"fmt"
	"sort"

	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
)

// ExtractorFunc computes a single raw metric value from a parsed document.
// Extractors must be pure and total: defined neutral values on empty input,
// never a panic.
type ExtractorFunc func(doc *feature.Document) float64

// Registry maps metric names to extractor functions. Scoring consults the
// registry for the metrics a profile configures; a configured metric with no
// registered extractor is excluded from scoring rather than substituted with
// a constant.
type Registry struct {
	extractors map[string]ExtractorFunc
}

// NewRegistry builds a registry with every built-in extractor. The
// part-of-speech metric registers only when the tagger is available.
func NewRegistry(tagger *feature.Tagger) *Registry {
	r := &Registry{extractors: make(map[string]ExtractorFunc, 8)}

	r.extractors[profile.MetricRepetition] = feature.Repetition
	r.extractors[profile.MetricEntropy] = feature.Entropy
	r.extractors[profile.MetricComplexity] = feature.Complexity
	r.extractors[profile.MetricDiversity] = feature.Diversity
	r.extractors[profile.MetricVariation] = feature.Variation
	r.extractors[profile.MetricTransition] = feature.TransitionFrequency
	r.extractors[profile.MetricReadabilty] = feature.Readability

	if tagger.Available() {
		r.extractors[profile.MetricPOS] = tagger.DistributionEntropy
	}

	return r
}

// Register adds or replaces an extractor under the given name.
func (r *Registry) Register(name string, fn ExtractorFunc) error {
	if name == "" {
		return fmt.Errorf("extractor name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("extractor %q: function cannot be nil", name)
	}
	r.extractors[name] = fn
	return nil
}

// Has reports whether an extractor is registered under the given name.
func (r *Registry) Has(name string) bool {
	_, ok := r.extractors[name]
	return ok
}

// Names returns the registered metric names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extract computes every registered metric for the document.
func (r *Registry) Extract(doc *feature.Document) map[string]float64 {
	values := make(map[string]float64, len(r.extractors))
	for name, fn := range r.extractors {
		values[name] = fn(doc)
	}
	return values
}
