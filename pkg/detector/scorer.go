package detector

import (
	"edusignal-hq/veritas/pkg/detector/profile"
)

// Normalize maps a raw metric value into [0, 1] where higher always means
// more AI-like, regardless of which side of the threshold the metric treats
// as suspicious.
//
// Direct metrics (higher raw value is AI-like) normalize to
// min(value/threshold, 1). Inverse metrics (lower raw value is AI-like)
// normalize to clamp01(1 - value/threshold).
func Normalize(value float64, m profile.Metric) float64 {
	switch m.Direction {
	case profile.DirectionInverse:
		n := 1 - value/m.Threshold
		if n < 0 {
			return 0
		}
		if n > 1 {
			return 1
		}
		return n
	default:
		n := value / m.Threshold
		if n > 1 {
			return 1
		}
		if n < 0 {
			return 0
		}
		return n
	}
}

// indicates reports whether a raw metric value sits on the AI-like side of
// its threshold. Used by the majority-vote strategy.
func indicates(value float64, m profile.Metric) bool {
	if m.Direction == profile.DirectionInverse {
		return value < m.Threshold
	}
	return value >= m.Threshold
}

// score combines raw metric values under the profile's strategy and returns
// the confidence in [0, 1] together with the boolean verdict.
//
// Only metrics present in values participate; a configured metric whose
// extractor was unavailable simply drops out. For the weighted sum the
// remaining weights renormalize so a missing capability metric cannot drag
// every confidence toward zero.
func score(values map[string]float64, p *profile.Profile) (float64, bool) {
	switch p.Strategy {
	case profile.StrategyMajorityVote:
		return scoreMajorityVote(values, p)
	default:
		return scoreWeightedSum(values, p)
	}
}

func scoreWeightedSum(values map[string]float64, p *profile.Profile) (float64, bool) {
	sum := 0.0
	weight := 0.0
	for name, m := range p.Metrics {
		value, ok := values[name]
		if !ok {
			continue
		}
		sum += m.Weight * Normalize(value, m)
		weight += m.Weight
	}

	if weight == 0 {
		return 0, false
	}

	confidence := sum / weight
	return confidence, confidence > p.Cutoff
}

func scoreMajorityVote(values map[string]float64, p *profile.Profile) (float64, bool) {
	votes := 0
	participating := 0
	for name, m := range p.Metrics {
		value, ok := values[name]
		if !ok {
			continue
		}
		participating++
		if indicates(value, m) {
			votes++
		}
	}

	if participating == 0 {
		return 0, false
	}

	confidence := float64(votes) / float64(participating)
	return confidence, votes >= p.Quorum
}
