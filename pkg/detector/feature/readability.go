package feature

import "strings"

// NeutralReadability is the documented fallback when the readability
// computation cannot produce a meaningful value.
const NeutralReadability = 0.5

// Readability computes the Flesch reading ease score
//
//	206.835 - 1.015*(words/sentences) - 84.6*(syllables/words)
//
// clamped to [0, 100] and rescaled to [0, 1].
//
// Returns the neutral value 0.5 when the document has no words or sentences.
func Readability(doc *Document) float64 {
	if doc.Empty() || doc.SentenceCount() == 0 {
		return NeutralReadability
	}

	words := float64(len(doc.Words))
	sentences := float64(len(doc.Sentences))

	syllables := 0
	for _, w := range doc.Words {
		syllables += countSyllables(w)
	}

	score := 206.835 - 1.015*(words/sentences) - 84.6*(float64(syllables)/words)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score / 100.0
}

// countSyllables estimates syllables as vowel-group runs with a trailing-"e"
// adjustment. Every word counts as at least one syllable.
func countSyllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing "e" does not usually add a syllable.
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
