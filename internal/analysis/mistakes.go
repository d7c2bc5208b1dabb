package analysis

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/answerlens/internal/textstat"
)

const (
	minPhraseSupport  = 2
	supportFraction   = 0.25
	maxConfidence     = 99
	maxExamples       = 2
	exampleMaxRunes   = 120
	truncationMarker  = "…"
	mistakeNGramSmall = 2
	mistakeNGramLarge = 3
)

// IsWrong reports whether s belongs to the mistake-mining population: it
// has no score, or its score is below cutoff.
func IsWrong(s Submission, cutoff float64) bool {
	return s.Score == nil || *s.Score < cutoff
}

// MineMistakes finds bigrams and trigrams that recur across the wrong
// answers to question qi. A phrase is counted once per occurrence, so a
// phrase repeated within one answer counts twice. Phrases need
// max(2, round(0.25 * wrong)) occurrences; the top maxPatterns by count are
// returned, ties kept in order of first appearance.
func MineMistakes(tok *textstat.Tokenizer, subs []Submission, qi int, cutoff float64, maxPatterns int) []MistakePattern {
	var wrong []string
	for _, s := range subs {
		if s.QuestionIndex == qi && IsWrong(s, cutoff) {
			wrong = append(wrong, s.AnswerText)
		}
	}
	if len(wrong) == 0 {
		return []MistakePattern{}
	}

	var order []string
	freq := make(map[string]int)
	for _, ans := range wrong {
		tokens := tok.Tokenize(ans)
		phrases := append(textstat.NGrams(tokens, mistakeNGramSmall), textstat.NGrams(tokens, mistakeNGramLarge)...)
		for _, p := range phrases {
			if freq[p] == 0 {
				order = append(order, p)
			}
			freq[p]++
		}
	}

	minCount := max(minPhraseSupport, roundHalfUp(float64(len(wrong))*supportFraction))
	var kept []string
	for _, p := range order {
		if freq[p] >= minCount {
			kept = append(kept, p)
		}
	}
	slices.SortStableFunc(kept, func(a, b string) int {
		return cmp.Compare(freq[b], freq[a])
	})
	if maxPatterns >= 0 && len(kept) > maxPatterns {
		kept = kept[:maxPatterns]
	}

	lowered := make([]string, len(wrong))
	for i, ans := range wrong {
		lowered[i] = strings.ToLower(ans)
	}

	out := make([]MistakePattern, 0, len(kept))
	for _, p := range kept {
		count := freq[p]
		out = append(out, MistakePattern{
			Phrase:           p,
			Count:            count,
			Confidence:       min(roundHalfUp(float64(count)/float64(len(wrong))*100), maxConfidence),
			AffectedStudents: len(wrong),
			Examples:         examplesFor(p, wrong, lowered),
		})
	}
	return out
}

// examplesFor picks up to maxExamples answers containing phrase as a plain
// case-insensitive substring.
func examplesFor(phrase string, answers, lowered []string) []string {
	examples := []string{}
	for i, ans := range answers {
		if len(examples) == maxExamples {
			break
		}
		if strings.Contains(lowered[i], phrase) {
			examples = append(examples, truncate(ans, exampleMaxRunes))
		}
	}
	return examples
}

// truncate shortens s to n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + truncationMarker
}
