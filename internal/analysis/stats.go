package analysis

import (
	"cmp"
	"slices"

	"github.com/abhisek/answerlens/internal/textstat"
)

// BandFor maps a mean score to its performance band.
func BandFor(avg float64) PerformanceBand {
	switch {
	case avg >= 80:
		return BandHigh
	case avg >= 50:
		return BandAverage
	default:
		return BandStruggling
	}
}

// DifficultyFor maps a question's mean score to a difficulty label.
func DifficultyFor(avg float64) Difficulty {
	switch {
	case avg < 50:
		return DifficultyHard
	case avg < 75:
		return DifficultyModerate
	default:
		return DifficultyEasy
	}
}

// Classify groups submissions by student and bands each student by the
// mean of their scores, missing scores counting as defaultScore. Students
// appear in the order of their first submission.
func Classify(subs []Submission, defaultScore float64) PerformanceBands {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range subs {
		if counts[s.StudentID] == 0 {
			order = append(order, s.StudentID)
		}
		sums[s.StudentID] += s.ScoreOr(defaultScore)
		counts[s.StudentID]++
	}

	bands := PerformanceBands{
		High:       []StudentAverage{},
		Average:    []StudentAverage{},
		Struggling: []StudentAverage{},
	}
	for _, id := range order {
		avg := sums[id] / float64(counts[id])
		sa := StudentAverage{StudentID: id, Avg: roundHalfUp(avg)}
		switch BandFor(avg) {
		case BandHigh:
			bands.High = append(bands.High, sa)
		case BandAverage:
			bands.Average = append(bands.Average, sa)
		default:
			bands.Struggling = append(bands.Struggling, sa)
		}
	}
	return bands
}

// QuestionStatistics computes average, minimum and maximum score per
// question. A question without submissions reports zeros and no
// difficulty.
func QuestionStatistics(subs []Submission, questions []string, defaultScore float64) []QuestionStat {
	out := make([]QuestionStat, len(questions))
	for qi, q := range questions {
		out[qi] = questionStat(q, ForQuestion(subs, qi), defaultScore)
	}
	return out
}

func questionStat(question string, subs []Submission, defaultScore float64) QuestionStat {
	if len(subs) == 0 {
		return QuestionStat{Question: question}
	}
	var sum float64
	low := subs[0].ScoreOr(defaultScore)
	high := low
	for _, s := range subs {
		v := s.ScoreOr(defaultScore)
		sum += v
		low = min(low, v)
		high = max(high, v)
	}
	avg := sum / float64(len(subs))
	return QuestionStat{
		Question:   question,
		Avg:        roundHalfUp(avg),
		Low:        low,
		High:       high,
		Count:      len(subs),
		Difficulty: DifficultyFor(avg),
	}
}

// TopKeywords ranks the terms of question qi's answers by their TF-IDF
// weight summed over all answers and returns the best topN, scores rounded
// to four decimal places.
func TopKeywords(tok *textstat.Tokenizer, subs []Submission, qi, topN int) []Keyword {
	answers := answersOf(ForQuestion(subs, qi))
	if len(answers) == 0 {
		return []Keyword{}
	}

	terms, totals := textstat.Vectorize(tok, answers).TermTotals()
	ranked := make([]int, len(terms))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		return cmp.Compare(totals[b], totals[a])
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]Keyword, len(ranked))
	for i, idx := range ranked {
		out[i] = Keyword{Word: terms[idx], Score: roundTo(totals[idx], 4)}
	}
	return out
}

// ForQuestion returns the submissions for question qi, in input order.
func ForQuestion(subs []Submission, qi int) []Submission {
	var out []Submission
	for _, s := range subs {
		if s.QuestionIndex == qi {
			out = append(out, s)
		}
	}
	return out
}

func answersOf(subs []Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.AnswerText
	}
	return out
}
