package detector

import (
	"fmt"
	"sort"
	"strings"

	"edusignal-hq/veritas/pkg/detector/profile"
)

// indicatorPhrases holds the explanation line for each known metric, for the
// AI-like and human-like side of its threshold respectively.
var indicatorPhrases = map[string][2]string{
	profile.MetricRepetition: {
		"Repeated phrasing beyond what is typical of human writing",
		"Little repeated phrasing",
	},
	profile.MetricEntropy: {
		"Highly uniform word distribution",
		"Natural word distribution patterns",
	},
	profile.MetricComplexity: {
		"Unusually complex sentence structures",
		"Natural sentence complexity",
	},
	profile.MetricDiversity: {
		"Lower vocabulary diversity than typical human writing",
		"Natural vocabulary diversity typical of human writing",
	},
	profile.MetricVariation: {
		"Unusually consistent sentence lengths",
		"Natural variation in sentence structure",
	},
	profile.MetricTransition: {
		"Heavy use of stock transition words",
		"Sparing use of transition words",
	},
	profile.MetricPOS: {
		"Unusually even grammatical structure",
		"Natural grammatical variety",
	},
	profile.MetricReadabilty: {
		"Unusually smooth and uniform readability",
		"Readability typical of human writing",
	},
}

// Explain renders the verdict, confidence and metric values into a
// human-readable report. Output is deterministic for identical inputs:
// indicator and metric lines are ordered by metric name.
func Explain(values map[string]float64, p *profile.Profile, confidence float64, aiGenerated bool) string {
	var sb strings.Builder

	if aiGenerated {
		fmt.Fprintf(&sb, "This text shows characteristics of AI-generated content (Confidence: %.1f%%).\n", confidence*100)
	} else {
		fmt.Fprintf(&sb, "This text appears to be human-written (Confidence: %.1f%%).\n", (1-confidence)*100)
	}

	sb.WriteString("\nKey indicators:\n")
	for _, name := range sortedConfigured(values, p) {
		m := p.Metrics[name]
		phrases, ok := indicatorPhrases[name]
		if !ok {
			if indicates(values[name], m) {
				phrases = [2]string{
					fmt.Sprintf("%s outside its typical human range", metricTitle(name)),
					"",
				}
			} else {
				phrases = [2]string{
					"",
					fmt.Sprintf("%s within its typical human range", metricTitle(name)),
				}
			}
		}
		if indicates(values[name], m) {
			fmt.Fprintf(&sb, "- %s\n", phrases[0])
		} else {
			fmt.Fprintf(&sb, "- %s\n", phrases[1])
		}
	}

	sb.WriteString("\nDetailed metrics:\n")
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: %.3f\n", metricTitle(name), values[name])
	}

	return strings.TrimRight(sb.String(), "\n")
}

// sortedConfigured returns the profile's metric names that have extracted
// values, sorted for deterministic output.
func sortedConfigured(values map[string]float64, p *profile.Profile) []string {
	names := make([]string, 0, len(p.Metrics))
	for name := range p.Metrics {
		if _, ok := values[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// metricTitle turns a snake_case metric name into a title-cased label.
func metricTitle(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if part == "pos" {
			parts[i] = "POS"
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
