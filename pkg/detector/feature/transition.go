package feature

// transitionWords is the closed set of discourse transition words tracked by
// the transition-pattern signal. Generated prose leans on these connectives
// more evenly than most human writing does.
var transitionWords = map[string]struct{}{
	"however":       {},
	"therefore":     {},
	"furthermore":   {},
	"moreover":      {},
	"consequently":  {},
	"additionally":  {},
	"nevertheless":  {},
	"nonetheless":   {},
	"accordingly":   {},
	"subsequently":  {},
	"thus":          {},
	"hence":         {},
	"meanwhile":     {},
	"similarly":     {},
	"conversely":    {},
	"specifically":  {},
	"ultimately":    {},
	"overall":       {},
	"notably":       {},
	"significantly": {},
}

// TransitionFrequency computes the fraction of word tokens that belong to the
// closed discourse-transition set. The value lies in [0, 1].
//
// Returns 0 on empty input.
func TransitionFrequency(doc *Document) float64 {
	if doc.Empty() {
		return 0
	}

	hits := 0
	for _, w := range doc.Words {
		if _, ok := transitionWords[w]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(doc.Words))
}
