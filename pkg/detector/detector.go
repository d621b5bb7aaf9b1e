package detector

import (
	"context"
	"log/slog"
	"time"

	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
)

// Result is the immutable outcome of a single analysis. Nothing in it feeds
// back into later analyses.
type Result struct {
	// AIGenerated is the boolean verdict.
	AIGenerated bool `json:"is_ai_generated"`

	// Confidence is the combined score in [0, 1]. Higher means more AI-like.
	Confidence float64 `json:"confidence"`

	// Metrics holds the raw (pre-normalization) value of every extracted
	// metric, including metrics the active profile does not score.
	Metrics map[string]float64 `json:"metrics"`

	// Explanation is the human-readable report of the verdict.
	Explanation string `json:"explanation"`

	// Profile and ProfileVersion identify the scoring configuration that
	// produced this verdict.
	Profile        string `json:"profile"`
	ProfileVersion string `json:"profile_version,omitempty"`

	// Strategy is the combination model used.
	Strategy string `json:"strategy"`

	// WordCount and SentenceCount describe the analyzed document.
	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`

	// Duration is the analysis wall time.
	Duration time.Duration `json:"-"`
}

// Detector runs the full analysis pipeline: parse, extract, score, explain.
// It is safe for concurrent use; each call reads the profile store once and
// scores against that snapshot.
type Detector struct {
	registry *Registry
	store    *profile.Store
	logger   *slog.Logger
}

// New creates a detector over the given extractor registry and profile store.
func New(registry *Registry, store *profile.Store, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		registry: registry,
		store:    store,
		logger:   logger.With("component", "detector"),
	}
}

// Detect analyzes the text and returns the verdict, confidence, raw metric
// values and explanation.
//
// Empty or whitespace-only input yields a neutral result (verdict false,
// confidence 0) rather than an error. The only error condition is an empty
// profile store.
func (d *Detector) Detect(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	p, err := d.store.Active()
	if err != nil {
		return nil, err
	}

	doc := feature.Parse(text)
	if doc.Empty() {
		return d.neutral(p, start), nil
	}

	values := d.registry.Extract(doc)
	confidence, aiGenerated := score(values, p)

	result := &Result{
		AIGenerated:    aiGenerated,
		Confidence:     confidence,
		Metrics:        values,
		Explanation:    Explain(values, p, confidence, aiGenerated),
		Profile:        p.Name,
		ProfileVersion: p.Version,
		Strategy:       string(p.Strategy),
		WordCount:      doc.WordCount(),
		SentenceCount:  doc.SentenceCount(),
		Duration:       time.Since(start),
	}

	d.logger.Debug("analysis completed",
		"ai_generated", result.AIGenerated,
		"confidence", result.Confidence,
		"word_count", result.WordCount,
		"profile", result.Profile,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// neutral is the defined result for empty input.
func (d *Detector) neutral(p *profile.Profile, start time.Time) *Result {
	return &Result{
		AIGenerated:    false,
		Confidence:     0,
		Metrics:        map[string]float64{},
		Explanation:    "Not enough text to analyze. Provide a longer passage.",
		Profile:        p.Name,
		ProfileVersion: p.Version,
		Strategy:       string(p.Strategy),
		Duration:       time.Since(start),
	}
}
