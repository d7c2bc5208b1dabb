package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/answerlens/internal/analysis"
)

func testAssignment() *analysis.Assignment {
	return &analysis.Assignment{
		ID:        "a1",
		Title:     "Data Structures Quiz",
		Questions: []string{"What is a stack?", "What is a queue?", "What is a heap?"},
	}
}

func testSubmissions() []analysis.Submission {
	return []analysis.Submission{
		{StudentID: "S01", QuestionIndex: 0, Score: analysis.Score(90)},
		{StudentID: "S02", QuestionIndex: 0, Score: analysis.Score(40)},
		{StudentID: "S01", QuestionIndex: 1, Score: analysis.Score(85)},
		{StudentID: "S02", QuestionIndex: 1},
		{StudentID: "S03", QuestionIndex: 0, Score: analysis.Score(70)},
	}
}

func testReport() *analysis.AnalysisReport {
	return &analysis.AnalysisReport{
		AssignmentID:  "a1",
		ClassAvg:      67,
		TotalStudents: 3,
		QuestionStats: []analysis.QuestionStat{
			{Question: "What is a stack?", Avg: 67, Low: 40, High: 90, Count: 3, Difficulty: analysis.DifficultyModerate},
			{Question: "What is a queue?", Avg: 68, Low: 50, High: 85, Count: 2, Difficulty: analysis.DifficultyModerate},
			{Question: "What is a heap?"},
		},
		PerformanceBands: analysis.PerformanceBands{
			High:       []analysis.StudentAverage{{StudentID: "S01", Avg: 88}},
			Average:    []analysis.StudentAverage{{StudentID: "S03", Avg: 70}},
			Struggling: []analysis.StudentAverage{{StudentID: "S02", Avg: 45}},
		},
		MistakesByQuestion: []analysis.QuestionMistakes{{
			Question:      "What is a stack?",
			QuestionIndex: 0,
			Mistakes: []analysis.MistakePattern{
				{Phrase: "first in", Count: 2, Confidence: 99, AffectedStudents: 2, Examples: []string{"first in first out"}},
			},
		}},
	}
}

func TestClassSummary(t *testing.T) {
	text, err := ClassSummary(testAssignment(), testReport())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Class Performance Summary: Data Structures Quiz"))
	assert.Contains(t, text, "Overall class average: 67%")
	assert.Contains(t, text, "Total students assessed: 3")
	assert.Contains(t, text, "• High performers (≥80%): 1 student(s)")
	assert.Contains(t, text, "• Struggling students (<50%): 1 student(s)")
	assert.Contains(t, text, `Most challenging question: "What is a stack?" (avg 67%)`)
	assert.Contains(t, text, `Best performed question: "What is a queue?" (avg 68%)`)
	assert.Contains(t, text, "1 student(s) need immediate intervention")
	assert.True(t, strings.HasSuffix(text, "[Edit this summary before sharing with students or department heads]"))
	assert.NotContains(t, text, "\n\n\n")
}

func TestClassSummaryNoStrugglers(t *testing.T) {
	r := testReport()
	r.PerformanceBands.Struggling = nil
	r.QuestionStats = r.QuestionStats[:1]

	text, err := ClassSummary(testAssignment(), r)
	require.NoError(t, err)
	assert.Contains(t, text, "The class overall demonstrated a solid understanding")
	assert.Contains(t, text, "Most challenging question")
	// A single answered question is both hardest and easiest.
	assert.NotContains(t, text, "Best performed question")
}

func TestClassSummaryNoAnsweredQuestions(t *testing.T) {
	r := testReport()
	r.QuestionStats = []analysis.QuestionStat{{Question: "What is a heap?"}}

	text, err := ClassSummary(testAssignment(), r)
	require.NoError(t, err)
	assert.NotContains(t, text, "Most challenging question")
	assert.NotContains(t, text, "\n\n\n")
}

func TestQuestionFeedbackWording(t *testing.T) {
	tests := []struct {
		avg  int
		want string
	}{
		{95, "Students performed well on this question"},
		{80, "Students performed well on this question"},
		{79, "Moderate performance"},
		{60, "Moderate performance"},
		{59, "This question had low performance"},
		{0, "This question had low performance"},
	}
	for _, tt := range tests {
		text, err := QuestionFeedback(analysis.QuestionStat{Question: "Q", Avg: tt.avg, Count: 1}, nil)
		require.NoError(t, err)
		assert.Contains(t, text, tt.want, "avg %d", tt.avg)
		assert.Contains(t, text, "No significant repeated mistakes detected for this question.")
	}
}

func TestQuestionFeedbackMistakes(t *testing.T) {
	r := testReport()
	text, err := QuestionFeedback(r.QuestionStats[0], r.MistakesByQuestion[0].Mistakes)
	require.NoError(t, err)

	want := `Question: "What is a stack?"
Average Score: 67% | Difficulty: Moderate | Responses: 3

⚡ Moderate performance. While many students grasped the basics, there are gaps that need addressing.

Common Mistakes Detected:
  1. Pattern: "first in" appeared in 2 responses (Confidence: 99%)
     Example: "first in first out"

Improvement Suggestion: Focus revision on the specific misconceptions listed above. Provide worked examples that directly contrast the correct concept with these common incorrect statements.`
	assert.Equal(t, want, text)
}

func TestQuestionFeedbackUnanswered(t *testing.T) {
	text, err := QuestionFeedback(analysis.QuestionStat{Question: "What is a heap?"}, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Difficulty: n/a | Responses: 0")
}

func TestStudentFeedback(t *testing.T) {
	subs := testSubmissions()

	text, err := StudentFeedback("S01", subs)
	require.NoError(t, err)
	assert.Contains(t, text, "Overall Average: 88% (High Performer)")
	assert.Contains(t, text, "Excellent work!")
	assert.NotContains(t, text, "Areas to focus on")

	// 40 and a missing score counted as 50.
	text, err = StudentFeedback("S02", subs)
	require.NoError(t, err)
	assert.Contains(t, text, "Overall Average: 45% (Needs Support)")
	assert.Contains(t, text, "Areas to focus on: Question 1, Question 2")

	text, err = StudentFeedback("S03", subs)
	require.NoError(t, err)
	assert.Contains(t, text, "Overall Average: 70% (Average Performer)")
	assert.Contains(t, text, "Good effort.")

	text, err = StudentFeedback("nobody", subs)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerateAll(t *testing.T) {
	pkg, err := GenerateAll(testAssignment(), testSubmissions(), testReport())
	require.NoError(t, err)

	assert.Equal(t, "a1", pkg.AssignmentID)
	assert.Equal(t, StatusPending, pkg.SummaryStatus)
	require.Len(t, pkg.QuestionDrafts, 3)
	for i, d := range pkg.QuestionDrafts {
		assert.Equal(t, i, d.QuestionIndex)
		assert.Equal(t, StatusPending, d.Status)
	}
	assert.Contains(t, pkg.QuestionDrafts[0].Draft, "Common Mistakes Detected")
	assert.Contains(t, pkg.QuestionDrafts[1].Draft, "No significant repeated mistakes")

	ids := make([]string, len(pkg.StudentDrafts))
	for i, d := range pkg.StudentDrafts {
		ids[i] = d.StudentID
		assert.Equal(t, StatusPending, d.Status)
	}
	assert.Equal(t, []string{"S01", "S02", "S03"}, ids)
	assert.False(t, pkg.GeneratedAt.IsZero())
}
