package profile

import (
	"fmt"
	"math"
	"strings"
)

// Metric names shared by profiles, extractors and results.
const (
	MetricRepetition = "repetition_score"
	MetricEntropy    = "entropy_score"
	MetricComplexity = "complexity_score"
	MetricDiversity  = "vocabulary_diversity"
	MetricVariation  = "sentence_variation"
	MetricTransition = "transition_patterns"
	MetricPOS        = "pos_distribution"
	MetricReadabilty = "readability"
)

// Strategy selects how normalized metrics combine into a verdict.
type Strategy string

const (
	// StrategyWeightedSum sums direction-normalized metric values scaled by
	// per-metric weights and compares the total against the cutoff.
	StrategyWeightedSum Strategy = "weighted_sum"

	// StrategyMajorityVote turns each metric into a boolean indicator and
	// requires at least Quorum indicators to fire.
	StrategyMajorityVote Strategy = "majority_vote"
)

// Direction states which side of the threshold looks AI-like for a metric.
type Direction string

const (
	// DirectionDirect: higher raw values look more AI-like.
	// Normalized value is min(value/threshold, 1).
	DirectionDirect Direction = "direct"

	// DirectionInverse: lower raw values look more AI-like.
	// Normalized value is clamp01(1 - value/threshold).
	DirectionInverse Direction = "inverse"
)

// Metric is the per-metric scoring configuration.
type Metric struct {
	// Weight is the share of this metric in the weighted sum.
	// Weights of all configured metrics must sum to 1.0.
	Weight float64 `yaml:"weight"`

	// Threshold is the raw-value pivot used for normalization and for the
	// majority-vote indicator.
	Threshold float64 `yaml:"threshold"`

	// Direction states which side of the threshold is AI-like.
	Direction Direction `yaml:"direction"`
}

// Profile is the versioned scoring configuration record.
type Profile struct {
	// Name identifies the profile (e.g. "classroom-default").
	Name string `yaml:"name"`

	// Version is a free-form revision marker surfaced in results and audit
	// records so a verdict can always be traced to its configuration.
	Version string `yaml:"version"`

	// Strategy selects the combination model.
	// Default: weighted_sum.
	Strategy Strategy `yaml:"strategy"`

	// Cutoff is the weighted-sum verdict boundary in (0, 1).
	// Default: 0.6.
	Cutoff float64 `yaml:"cutoff"`

	// Quorum is the number of indicators required by majority_vote.
	// Default: 3.
	Quorum int `yaml:"quorum"`

	// Metrics maps metric name to its scoring configuration. Only metrics
	// present here participate in scoring.
	Metrics map[string]Metric `yaml:"metrics"`
}

// knownMetrics lists every metric name a profile may configure.
var knownMetrics = map[string]struct{}{
	MetricRepetition: {},
	MetricEntropy:    {},
	MetricComplexity: {},
	MetricDiversity:  {},
	MetricVariation:  {},
	MetricTransition: {},
	MetricPOS:        {},
	MetricReadabilty: {},
}

// weightTolerance bounds floating-point drift when checking the sum-to-one
// weight invariant.
const weightTolerance = 1e-9

// Default returns the built-in scoring profile. The constants reproduce the
// reference configuration: six metrics, weighted sum, cutoff 0.6.
func Default() *Profile {
	return &Profile{
		Name:     "classroom-default",
		Version:  "1",
		Strategy: StrategyWeightedSum,
		Cutoff:   0.6,
		Quorum:   3,
		Metrics: map[string]Metric{
			MetricRepetition: {Weight: 0.15, Threshold: 0.25, Direction: DirectionDirect},
			MetricEntropy:    {Weight: 0.20, Threshold: 4.3, Direction: DirectionDirect},
			MetricComplexity: {Weight: 0.15, Threshold: 3.5, Direction: DirectionDirect},
			MetricDiversity:  {Weight: 0.20, Threshold: 0.45, Direction: DirectionInverse},
			MetricVariation:  {Weight: 0.15, Threshold: 0.30, Direction: DirectionInverse},
			MetricReadabilty: {Weight: 0.15, Threshold: 0.60, Direction: DirectionDirect},
		},
	}
}

// FieldError reports a validation failure for a single profile field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates all validation failures in a profile.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("profile validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("profile validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// ApplyDefaults fills unset optional fields.
func ApplyDefaults(p *Profile) {
	if p.Strategy == "" {
		p.Strategy = StrategyWeightedSum
	}
	if p.Cutoff == 0 {
		p.Cutoff = 0.6
	}
	if p.Quorum == 0 {
		p.Quorum = 3
	}
	for name, m := range p.Metrics {
		if m.Direction == "" {
			m.Direction = DirectionDirect
			p.Metrics[name] = m
		}
	}
}

// Validate checks the profile invariants. Validation failures are collected
// and returned together as a ValidationError.
func Validate(p *Profile) error {
	var errs []FieldError

	if p.Name == "" {
		errs = append(errs, FieldError{"name", "must not be empty"})
	}

	switch p.Strategy {
	case StrategyWeightedSum, StrategyMajorityVote:
	default:
		errs = append(errs, FieldError{"strategy",
			fmt.Sprintf("unknown strategy %q (want weighted_sum or majority_vote)", p.Strategy)})
	}

	if p.Cutoff <= 0 || p.Cutoff >= 1 {
		errs = append(errs, FieldError{"cutoff",
			fmt.Sprintf("must lie in (0, 1), got %v", p.Cutoff)})
	}

	if len(p.Metrics) == 0 {
		errs = append(errs, FieldError{"metrics", "at least one metric must be configured"})
	}

	weightSum := 0.0
	for name, m := range p.Metrics {
		field := "metrics." + name

		if _, ok := knownMetrics[name]; !ok {
			errs = append(errs, FieldError{field, "unknown metric name"})
		}
		if m.Weight < 0 {
			errs = append(errs, FieldError{field + ".weight", "must not be negative"})
		}
		if m.Threshold <= 0 {
			errs = append(errs, FieldError{field + ".threshold", "must be positive"})
		}
		if m.Direction != DirectionDirect && m.Direction != DirectionInverse {
			errs = append(errs, FieldError{field + ".direction",
				fmt.Sprintf("unknown direction %q (want direct or inverse)", m.Direction)})
		}
		weightSum += m.Weight
	}

	if p.Strategy == StrategyWeightedSum && len(p.Metrics) > 0 {
		if math.Abs(weightSum-1.0) > weightTolerance {
			errs = append(errs, FieldError{"metrics",
				fmt.Sprintf("weights must sum to 1.0, got %v", weightSum)})
		}
	}

	if p.Strategy == StrategyMajorityVote {
		if p.Quorum < 1 {
			errs = append(errs, FieldError{"quorum", "must be at least 1"})
		} else if p.Quorum > len(p.Metrics) {
			errs = append(errs, FieldError{"quorum",
				fmt.Sprintf("quorum %d exceeds configured metric count %d", p.Quorum, len(p.Metrics))})
		}
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	out := *p
	out.Metrics = make(map[string]Metric, len(p.Metrics))
	for name, m := range p.Metrics {
		out.Metrics[name] = m
	}
	return &out
}
