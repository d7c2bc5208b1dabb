package feedback

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/answerlens/internal/analysis"
)

const (
	// MissingScore stands in for submissions without a score.
	MissingScore = 50
	// WeakScore is the score below which a student's answer is flagged
	// as an area to focus on.
	WeakScore = 60
)

type classSummaryData struct {
	Title         string
	ClassAvg      int
	TotalStudents int
	High          int
	Average       int
	Struggling    int
	Highlights    []string
}

// ClassSummary drafts the class-level summary of a report.
func ClassSummary(a *analysis.Assignment, r *analysis.AnalysisReport) (string, error) {
	data := classSummaryData{
		Title:         a.Title,
		ClassAvg:      r.ClassAvg,
		TotalStudents: r.TotalStudents,
		High:          len(r.PerformanceBands.High),
		Average:       len(r.PerformanceBands.Average),
		Struggling:    len(r.PerformanceBands.Struggling),
	}

	hardest, easiest := extremes(r.QuestionStats)
	if hardest >= 0 {
		q := r.QuestionStats[hardest]
		data.Highlights = append(data.Highlights,
			fmt.Sprintf("Most challenging question: %q (avg %d%%)", q.Question, q.Avg))
	}
	if easiest >= 0 && easiest != hardest {
		q := r.QuestionStats[easiest]
		data.Highlights = append(data.Highlights,
			fmt.Sprintf("Best performed question: %q (avg %d%%)", q.Question, q.Avg))
	}

	text, err := execute(classSummaryTemplate, data)
	if err != nil {
		return "", fmt.Errorf("render class summary: %w", err)
	}
	return text, nil
}

// extremes returns the indices of the lowest and highest average among
// answered questions, earliest first on ties, or -1 when none were
// answered.
func extremes(stats []analysis.QuestionStat) (lowest, highest int) {
	var answered []int
	for i, s := range stats {
		if s.Count > 0 {
			answered = append(answered, i)
		}
	}
	if len(answered) == 0 {
		return -1, -1
	}
	asc := slices.Clone(answered)
	slices.SortStableFunc(asc, func(a, b int) int {
		return cmp.Compare(stats[a].Avg, stats[b].Avg)
	})
	desc := slices.Clone(answered)
	slices.SortStableFunc(desc, func(a, b int) int {
		return cmp.Compare(stats[b].Avg, stats[a].Avg)
	})
	return asc[0], desc[0]
}

type questionData struct {
	analysis.QuestionStat
	Mistakes []analysis.MistakePattern
}

// QuestionFeedback drafts improvement suggestions for one question.
func QuestionFeedback(stat analysis.QuestionStat, mistakes []analysis.MistakePattern) (string, error) {
	text, err := execute(questionTemplate, questionData{QuestionStat: stat, Mistakes: mistakes})
	if err != nil {
		return "", fmt.Errorf("render question feedback: %w", err)
	}
	return text, nil
}

type studentData struct {
	StudentID     string
	Avg           int
	Band          string
	WeakQuestions string
}

// StudentFeedback drafts feedback for one student from their submissions.
// It returns an empty string when the student has no submissions.
func StudentFeedback(studentID string, subs []analysis.Submission) (string, error) {
	var (
		sum  float64
		n    int
		weak []string
	)
	for _, s := range subs {
		if s.StudentID != studentID {
			continue
		}
		v := s.ScoreOr(MissingScore)
		sum += v
		n++
		if v < WeakScore {
			weak = append(weak, "Question "+strconv.Itoa(s.QuestionIndex+1))
		}
	}
	if n == 0 {
		return "", nil
	}

	avg := int(math.Floor(sum/float64(n) + 0.5))
	text, err := execute(studentTemplate, studentData{
		StudentID:     studentID,
		Avg:           avg,
		Band:          bandLabel(avg),
		WeakQuestions: strings.Join(weak, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("render student feedback: %w", err)
	}
	return text, nil
}

func bandLabel(avg int) string {
	switch {
	case avg >= 80:
		return "High Performer"
	case avg >= 50:
		return "Average Performer"
	default:
		return "Needs Support"
	}
}

// GenerateAll drafts the full feedback package for an assignment. Every
// draft starts pending. Students appear in order of their first
// submission.
func GenerateAll(a *analysis.Assignment, subs []analysis.Submission, r *analysis.AnalysisReport) (*Package, error) {
	summary, err := ClassSummary(a, r)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		AssignmentID:   a.ID,
		Summary:        summary,
		SummaryStatus:  StatusPending,
		QuestionDrafts: make([]QuestionDraft, 0, len(r.QuestionStats)),
		StudentDrafts:  []StudentDraft{},
		GeneratedAt:    time.Now(),
	}

	for qi, stat := range r.QuestionStats {
		var mistakes []analysis.MistakePattern
		for _, qm := range r.MistakesByQuestion {
			if qm.QuestionIndex == qi {
				mistakes = qm.Mistakes
				break
			}
		}
		draft, err := QuestionFeedback(stat, mistakes)
		if err != nil {
			return nil, err
		}
		pkg.QuestionDrafts = append(pkg.QuestionDrafts, QuestionDraft{
			QuestionIndex: qi,
			Question:      stat.Question,
			Draft:         draft,
			Status:        StatusPending,
		})
	}

	seen := make(map[string]bool)
	for _, s := range subs {
		if seen[s.StudentID] {
			continue
		}
		seen[s.StudentID] = true
		draft, err := StudentFeedback(s.StudentID, subs)
		if err != nil {
			return nil, err
		}
		pkg.StudentDrafts = append(pkg.StudentDrafts, StudentDraft{
			StudentID: s.StudentID,
			Draft:     draft,
			Status:    StatusPending,
		})
	}

	return pkg, nil
}
