package feature

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`[a-z0-9']+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// Document is the parsed form of an input text. It is computed once per
// detection call so every extractor works from the same tokenization.
type Document struct {
	// Raw is the original input text, unmodified.
	Raw string

	// Words contains lowercased word tokens. Punctuation is ignored;
	// a token matches [a-z0-9']+.
	Words []string

	// Sentences contains the word tokens of each sentence. Sentences are
	// split on runs of '.', '!' and '?'; empty sentences are dropped.
	Sentences [][]string
}

// Parse tokenizes text into a Document.
// Whitespace-only input produces a Document with no words and no sentences.
func Parse(text string) *Document {
	doc := &Document{Raw: text}

	lower := strings.ToLower(text)
	doc.Words = wordPattern.FindAllString(lower, -1)

	for _, raw := range sentencePattern.Split(lower, -1) {
		words := wordPattern.FindAllString(raw, -1)
		if len(words) == 0 {
			continue
		}
		doc.Sentences = append(doc.Sentences, words)
	}

	return doc
}

// WordCount returns the number of word tokens in the document.
func (d *Document) WordCount() int {
	return len(d.Words)
}

// SentenceCount returns the number of non-empty sentences in the document.
func (d *Document) SentenceCount() int {
	return len(d.Sentences)
}

// Empty reports whether the document contains no word tokens.
func (d *Document) Empty() bool {
	return len(d.Words) == 0
}
