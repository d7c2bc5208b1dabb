package analysis

import (
	"math"
	"strings"

	"github.com/abhisek/answerlens/internal/textstat"
)

const (
	keywordWeight   = 60.0
	flatKeywordCred = 30.0
	lengthWeight    = 40.0
	fullLengthWords = 20.0
)

// ScoreHeuristic estimates a 0..100 score for an answer that was not graded.
// Keyword coverage contributes up to 60 points (a flat 30 when no keywords
// are given) and answer length up to 40 points, reaching the maximum at 20
// words.
func ScoreHeuristic(tok *textstat.Tokenizer, answer string, modelKeywords []string) int {
	if strings.TrimSpace(answer) == "" {
		return 0
	}

	terms := make(map[string]struct{})
	for _, t := range tok.Tokenize(answer) {
		terms[t] = struct{}{}
	}

	keywordScore := flatKeywordCred
	if len(modelKeywords) > 0 {
		hits := 0
		for _, kw := range modelKeywords {
			if _, ok := terms[strings.ToLower(strings.TrimSpace(kw))]; ok {
				hits++
			}
		}
		keywordScore = float64(hits) / float64(len(modelKeywords)) * keywordWeight
	}

	words := float64(len(strings.Fields(answer)))
	lengthScore := math.Min(words/fullLengthWords, 1) * lengthWeight

	return roundHalfUp(keywordScore + lengthScore)
}

// FillMissingScores returns a copy of subs where every submission without a
// score carries the heuristic score against the assignment's model keywords
// for its question. The input slice is not modified.
func FillMissingScores(tok *textstat.Tokenizer, a *Assignment, subs []Submission) []Submission {
	out := make([]Submission, len(subs))
	for i, s := range subs {
		if s.Score == nil {
			s.Score = Score(float64(ScoreHeuristic(tok, s.AnswerText, a.KeywordsFor(s.QuestionIndex))))
		}
		out[i] = s
	}
	return out
}
