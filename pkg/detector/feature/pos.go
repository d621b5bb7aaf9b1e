package feature

import (
	"math"
	"strings"
)

// maxTagEntropy normalizes the part-of-speech entropy. With ten coarse tag
// classes the theoretical maximum is log2(10) ≈ 3.32; the higher constant
// keeps normalized values comfortably inside [0, 1] for natural text.
const maxTagEntropy = 4.5

// Tag is a coarse grammatical category assigned by the Tagger.
type Tag string

// Coarse tag classes used by the built-in tagger.
const (
	TagNoun        Tag = "noun"
	TagVerb        Tag = "verb"
	TagAdjective   Tag = "adj"
	TagAdverb      Tag = "adv"
	TagPronoun     Tag = "pron"
	TagDeterminer  Tag = "det"
	TagPreposition Tag = "prep"
	TagConjunction Tag = "conj"
	TagNumber      Tag = "num"
	TagOther       Tag = "other"
)

// Tagger assigns coarse part-of-speech tags using a closed-class lexicon and
// suffix heuristics. It is a capability plugin: a nil Tagger means the
// pos_distribution signal is unavailable and must be excluded from scoring,
// never substituted with a constant.
type Tagger struct {
	lexicon map[string]Tag
}

// NewTagger builds a tagger from the built-in closed-class lexicon.
func NewTagger() *Tagger {
	return &Tagger{lexicon: closedClassLexicon}
}

// Available reports whether the tagger can tag input.
func (t *Tagger) Available() bool {
	return t != nil && len(t.lexicon) > 0
}

// TagWord assigns a coarse tag to a single lowercased word token.
func (t *Tagger) TagWord(word string) Tag {
	if tag, ok := t.lexicon[word]; ok {
		return tag
	}
	if word != "" && word[0] >= '0' && word[0] <= '9' {
		return TagNumber
	}

	switch {
	case strings.HasSuffix(word, "ly"):
		return TagAdverb
	case strings.HasSuffix(word, "ing"), strings.HasSuffix(word, "ed"),
		strings.HasSuffix(word, "ize"), strings.HasSuffix(word, "ise"):
		return TagVerb
	case strings.HasSuffix(word, "ous"), strings.HasSuffix(word, "ful"),
		strings.HasSuffix(word, "able"), strings.HasSuffix(word, "ible"),
		strings.HasSuffix(word, "ive"), strings.HasSuffix(word, "al"):
		return TagAdjective
	case strings.HasSuffix(word, "tion"), strings.HasSuffix(word, "ment"),
		strings.HasSuffix(word, "ness"), strings.HasSuffix(word, "ity"),
		strings.HasSuffix(word, "er"), strings.HasSuffix(word, "ism"):
		return TagNoun
	}

	// Unknown open-class words are most often nouns.
	return TagNoun
}

// DistributionEntropy computes the Shannon entropy of the tag distribution,
// normalized by maxTagEntropy and clamped to [0, 1].
//
// Returns 0 on empty input or when the tagger is unavailable.
func (t *Tagger) DistributionEntropy(doc *Document) float64 {
	if !t.Available() || doc.Empty() {
		return 0
	}

	freq := make(map[Tag]int, 10)
	for _, w := range doc.Words {
		freq[t.TagWord(w)]++
	}

	total := float64(len(doc.Words))
	entropy := 0.0
	for _, n := range freq {
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}

	normalized := entropy / maxTagEntropy
	if normalized > 1 {
		normalized = 1
	}
	return normalized
}

// closedClassLexicon covers the closed-class words that suffix rules cannot
// classify. Open-class coverage comes from the suffix heuristics in TagWord.
var closedClassLexicon = map[string]Tag{
	// Determiners
	"the": TagDeterminer, "a": TagDeterminer, "an": TagDeterminer,
	"this": TagDeterminer, "that": TagDeterminer, "these": TagDeterminer,
	"those": TagDeterminer, "each": TagDeterminer, "every": TagDeterminer,
	"some": TagDeterminer, "any": TagDeterminer, "no": TagDeterminer,

	// Pronouns
	"i": TagPronoun, "you": TagPronoun, "he": TagPronoun, "she": TagPronoun,
	"it": TagPronoun, "we": TagPronoun, "they": TagPronoun, "me": TagPronoun,
	"him": TagPronoun, "her": TagPronoun, "us": TagPronoun, "them": TagPronoun,
	"my": TagPronoun, "your": TagPronoun, "his": TagPronoun, "its": TagPronoun,
	"our": TagPronoun, "their": TagPronoun, "who": TagPronoun, "what": TagPronoun,
	"which": TagPronoun, "someone": TagPronoun, "nobody": TagPronoun,

	// Prepositions
	"of": TagPreposition, "in": TagPreposition, "on": TagPreposition,
	"at": TagPreposition, "to": TagPreposition, "from": TagPreposition,
	"with": TagPreposition, "by": TagPreposition, "for": TagPreposition,
	"about": TagPreposition, "into": TagPreposition, "over": TagPreposition,
	"under": TagPreposition, "between": TagPreposition, "through": TagPreposition,

	// Conjunctions
	"and": TagConjunction, "or": TagConjunction, "but": TagConjunction,
	"nor": TagConjunction, "so": TagConjunction, "yet": TagConjunction,
	"because": TagConjunction, "although": TagConjunction, "while": TagConjunction,
	"if": TagConjunction, "unless": TagConjunction, "since": TagConjunction,

	// Common verbs the suffix rules miss
	"is": TagVerb, "are": TagVerb, "was": TagVerb, "were": TagVerb,
	"be": TagVerb, "been": TagVerb, "being": TagVerb, "am": TagVerb,
	"do": TagVerb, "does": TagVerb, "did": TagVerb, "have": TagVerb,
	"has": TagVerb, "had": TagVerb, "can": TagVerb, "could": TagVerb,
	"will": TagVerb, "would": TagVerb, "shall": TagVerb, "should": TagVerb,
	"may": TagVerb, "might": TagVerb, "must": TagVerb, "go": TagVerb,
	"goes": TagVerb, "went": TagVerb, "know": TagVerb, "knows": TagVerb,
	"say": TagVerb, "says": TagVerb, "said": TagVerb, "stay": TagVerb,

	// Common adverbs without -ly
	"not": TagAdverb, "very": TagAdverb, "too": TagAdverb, "also": TagAdverb,
	"now": TagAdverb, "then": TagAdverb, "here": TagAdverb, "there": TagAdverb,
	"always": TagAdverb, "never": TagAdverb, "often": TagAdverb,
	"again": TagAdverb, "still": TagAdverb, "just": TagAdverb,
	"why": TagAdverb, "how": TagAdverb, "when": TagAdverb, "where": TagAdverb,
}
