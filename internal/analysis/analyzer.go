// Package analysis turns a batch of short-answer submissions into an
// AnalysisReport: per-question statistics, performance bands, mistake
// patterns, keywords and answer clusters.
package analysis

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/answerlens/internal/textstat"
)

// Analyzer produces reports. It holds no per-call state and is safe for
// concurrent use.
type Analyzer struct {
	opts     Options
	tok      *textstat.Tokenizer
	cutoff   float64
	defScore float64
}

// New creates an Analyzer. Zero-valued counts and threshold, and nil
// score options, fall back to the defaults.
func New(opts Options) *Analyzer {
	def := DefaultOptions()
	if opts.ClusterThreshold <= 0 {
		opts.ClusterThreshold = def.ClusterThreshold
	}
	if opts.MaxClusterGroups <= 0 {
		opts.MaxClusterGroups = def.MaxClusterGroups
	}
	if opts.TopKeywords <= 0 {
		opts.TopKeywords = def.TopKeywords
	}
	if opts.MaxMistakes <= 0 {
		opts.MaxMistakes = def.MaxMistakes
	}
	if opts.WrongScoreCutoff == nil {
		opts.WrongScoreCutoff = def.WrongScoreCutoff
	}
	if opts.DefaultScore == nil {
		opts.DefaultScore = def.DefaultScore
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Analyzer{
		opts:     opts,
		tok:      textstat.NewTokenizer(opts.StopWords),
		cutoff:   *opts.WrongScoreCutoff,
		defScore: *opts.DefaultScore,
	}
}

// Tokenizer returns the tokenizer the analyzer uses.
func (a *Analyzer) Tokenizer() *textstat.Tokenizer {
	return a.tok
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze builds the report for assignment from subs. Submissions whose
// question index is outside the assignment's questions count toward class
// totals and bands but not toward any question.
func (a *Analyzer) Analyze(assignment *Assignment, subs []Submission) *AnalysisReport {
	questions := assignment.Questions
	n := len(questions)

	report := &AnalysisReport{
		SchemaVersion:      SchemaVersion,
		AssignmentID:       assignment.ID,
		TotalSubmissions:   len(subs),
		PerformanceBands:   Classify(subs, a.defScore),
		QuestionStats:      make([]QuestionStat, n),
		MistakesByQuestion: make([]QuestionMistakes, n),
		KeywordsByQuestion: make([]QuestionKeywords, n),
		ClustersByQuestion: make([]QuestionClusters, n),
	}

	byQuestion := make([][]Submission, n)
	for _, s := range subs {
		if s.QuestionIndex >= 0 && s.QuestionIndex < n {
			byQuestion[s.QuestionIndex] = append(byQuestion[s.QuestionIndex], s)
		}
	}

	perQuestion := func(qi int) {
		q := questions[qi]
		qs := byQuestion[qi]
		report.QuestionStats[qi] = questionStat(q, qs, a.defScore)
		report.MistakesByQuestion[qi] = QuestionMistakes{
			Question:      q,
			QuestionIndex: qi,
			Mistakes:      MineMistakes(a.tok, qs, qi, a.cutoff, a.opts.MaxMistakes),
		}
		report.KeywordsByQuestion[qi] = QuestionKeywords{
			Question:      q,
			QuestionIndex: qi,
			Keywords:      TopKeywords(a.tok, qs, qi, a.opts.TopKeywords),
		}
		report.ClustersByQuestion[qi] = QuestionClusters{
			Question:      q,
			QuestionIndex: qi,
			Groups:        a.clusterGroups(qs),
		}
	}

	if a.opts.Parallel {
		var g errgroup.Group
		for qi := range n {
			g.Go(func() error {
				perQuestion(qi)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for qi := range n {
			perQuestion(qi)
		}
	}

	var sum float64
	students := make(map[string]struct{})
	for _, s := range subs {
		sum += s.ScoreOr(a.defScore)
		students[s.StudentID] = struct{}{}
	}
	report.ClassAvg = roundHalfUp(sum / float64(max(1, len(subs))))
	report.TotalStudents = len(students)
	report.GeneratedAt = a.opts.Now()

	return report
}

// clusterGroups clusters one question's answers and keeps the largest
// groups, ties in emission order.
func (a *Analyzer) clusterGroups(subs []Submission) []ClusterGroup {
	answers := answersOf(subs)
	clusters := textstat.ClusterDocuments(a.tok, answers, a.opts.ClusterThreshold)

	groups := make([]ClusterGroup, len(clusters))
	for i, c := range clusters {
		ids := make([]string, len(c.Members))
		for k, m := range c.Members {
			ids[k] = subs[m].StudentID
		}
		groups[i] = ClusterGroup{
			Size:           c.Size(),
			Representative: answers[c.Seed()],
			StudentIDs:     ids,
		}
	}
	slices.SortStableFunc(groups, func(x, y ClusterGroup) int {
		return cmp.Compare(y.Size, x.Size)
	})
	if len(groups) > a.opts.MaxClusterGroups {
		groups = groups[:a.opts.MaxClusterGroups]
	}
	return groups
}

// Analyze runs a default Analyzer.
func Analyze(assignment *Assignment, subs []Submission) *AnalysisReport {
	return New(DefaultOptions()).Analyze(assignment, subs)
}
