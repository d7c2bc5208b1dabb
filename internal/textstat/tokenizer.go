// Package textstat holds the lexical statistics used to analyze short
// free-text answers: tokenization, TF-IDF vectors, cosine similarity,
// greedy seed clustering and n-gram extraction.
package textstat

import (
	"strings"
	"unicode"
)

// MinTermLength is the shortest token kept by the tokenizer.
const MinTermLength = 3

// defaultStopWords are common English function words dropped from every
// token stream.
var defaultStopWords = []string{
	"a", "an", "the", "is", "it", "in", "on", "of", "and", "or", "to", "for", "are", "was",
	"be", "has", "had", "by", "at", "this", "that", "with", "from", "as", "its", "not",
	"but", "also", "which", "who", "they", "we", "he", "she", "i", "you", "me", "my", "our",
	"their", "what", "when", "where", "how", "so", "if", "then", "than", "do", "does",
	"did", "have", "been", "can", "could", "will", "would", "should", "may", "might",
	"each", "some", "any", "no", "one", "two", "three", "all", "both", "more", "very",
}

// DefaultStopWords returns a copy of the built-in stop-word list.
func DefaultStopWords() []string {
	out := make([]string, len(defaultStopWords))
	copy(out, defaultStopWords)
	return out
}

// Tokenizer normalizes raw text into terms.
type Tokenizer struct {
	stop map[string]struct{}
}

// NewTokenizer builds a tokenizer with the given stop words. A nil slice
// selects the built-in list; an empty non-nil slice disables stop-word
// filtering.
func NewTokenizer(stopWords []string) *Tokenizer {
	if stopWords == nil {
		stopWords = defaultStopWords
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stop: stop}
}

// DefaultTokenizer returns a tokenizer using the built-in stop words.
func DefaultTokenizer() *Tokenizer {
	return NewTokenizer(nil)
}

// Tokenize lower-cases text, blanks out everything except ASCII letters,
// digits and whitespace, and returns the whitespace-separated tokens that
// are at least MinTermLength long and not stop words.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	out := fields[:0]
	for _, f := range fields {
		if len(f) < MinTermLength {
			continue
		}
		if _, ok := t.stop[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

// IsStopWord reports whether w is filtered by this tokenizer.
func (t *Tokenizer) IsStopWord(w string) bool {
	_, ok := t.stop[strings.ToLower(w)]
	return ok
}
