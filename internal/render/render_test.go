package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
	"github.com/abhisek/answerlens/internal/insight"
	"github.com/abhisek/answerlens/internal/review"
	"github.com/abhisek/answerlens/internal/store"
)

func testReport() (*analysis.Assignment, *analysis.AnalysisReport) {
	a := &analysis.Assignment{
		ID:        "a1",
		Title:     "Photosynthesis Quiz",
		Subject:   "Biology",
		Questions: []string{"What does chlorophyll do?", "Name the gas released."},
	}
	r := &analysis.AnalysisReport{
		SchemaVersion:    analysis.SchemaVersion,
		AssignmentID:     "a1",
		ClassAvg:         64,
		TotalStudents:    3,
		TotalSubmissions: 3,
		QuestionStats: []analysis.QuestionStat{
			{Question: "What does chlorophyll do?", Avg: 64, Low: 30, High: 95, Count: 3, Difficulty: analysis.DifficultyModerate},
			{Question: "Name the gas released."},
		},
		PerformanceBands: analysis.PerformanceBands{
			High:       []analysis.StudentAverage{{StudentID: "S01", Avg: 95}},
			Average:    []analysis.StudentAverage{{StudentID: "S02", Avg: 67}},
			Struggling: []analysis.StudentAverage{{StudentID: "S03", Avg: 30}},
		},
		MistakesByQuestion: []analysis.QuestionMistakes{
			{QuestionIndex: 0, Mistakes: []analysis.MistakePattern{{
				Phrase: "makes plant", Count: 2, Confidence: 99, AffectedStudents: 2,
				Examples: []string{"It makes plant green"},
			}}},
			{QuestionIndex: 1, Mistakes: []analysis.MistakePattern{}},
		},
		KeywordsByQuestion: []analysis.QuestionKeywords{
			{QuestionIndex: 0, Keywords: []analysis.Keyword{{Word: "light", Score: 1.2}, {Word: "energy", Score: 0.8}}},
		},
		ClustersByQuestion: []analysis.QuestionClusters{
			{QuestionIndex: 0, Groups: []analysis.ClusterGroup{
				{Size: 2, Representative: "Absorbs light energy", StudentIDs: []string{"S01", "S02"}},
				{Size: 1, Representative: "It makes plant green", StudentIDs: []string{"S03"}},
			}},
		},
		GeneratedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	return a, r
}

func TestReport(t *testing.T) {
	a, r := testReport()
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, a, r))

	out := buf.String()
	for _, want := range []string{
		"Photosynthesis Quiz",
		"Biology",
		"Class average",
		"Performance bands",
		"S01 95%",
		"S03 30%",
		"Q1. What does chlorophyll do?",
		"Moderate",
		"light, energy",
		`"makes plant"`,
		"2× in 2 wrong answers · 99% confidence",
		"It makes plant green",
		"Absorbs light energy",
		"S01, S02",
		"Q2. Name the gas released.",
		"No answers yet.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestQuestionFiltersClusters(t *testing.T) {
	_, r := testReport()
	only := func(id string) bool { return id == "S03" }

	out := Question(r, 0, only)
	assert.Contains(t, out, "It makes plant green")
	assert.NotContains(t, out, "Absorbs light energy")

	assert.Empty(t, Question(r, 5, nil))
}

func TestBandsFilter(t *testing.T) {
	_, r := testReport()
	out := Bands(r.PerformanceBands, func(id string) bool { return id == "S02" })
	assert.Contains(t, out, "S02 67%")
	assert.NotContains(t, out, "S01")
	assert.Contains(t, out, "none")
}

func TestFeedback(t *testing.T) {
	pkg := &feedback.Package{
		AssignmentID:  "a1",
		Summary:       "Class did well.",
		SummaryStatus: feedback.StatusApproved,
		QuestionDrafts: []feedback.QuestionDraft{
			{QuestionIndex: 0, Question: "Q", Draft: "Review chlorophyll.", Status: feedback.StatusPending},
		},
		StudentDrafts: []feedback.StudentDraft{
			{StudentID: "S01", Draft: "Great work.", Status: feedback.StatusRejected},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Feedback(&buf, pkg))

	out := buf.String()
	assert.Contains(t, out, "1 pending · 1 approved · 1 rejected")
	assert.Contains(t, out, "[approved]")
	assert.Contains(t, out, "Class did well.")
	assert.Contains(t, out, "question:0")
	assert.Contains(t, out, "Review chlorophyll.")
	assert.Contains(t, out, "student:S01")
	assert.Contains(t, out, "[rejected]")
}

func TestAssignmentsAndStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Assignments(&buf, nil))
	assert.Contains(t, buf.String(), "No assignments yet")

	buf.Reset()
	a, _ := testReport()
	require.NoError(t, Assignments(&buf, []*analysis.Assignment{a}))
	assert.Contains(t, buf.String(), "Photosynthesis Quiz")
	assert.Contains(t, buf.String(), "a1")

	buf.Reset()
	require.NoError(t, Stats(&buf, &review.ReportStats{Assignments: 2, Submissions: 48, MistakePatterns: 7, FeedbackDrafts: 1}))
	assert.Contains(t, buf.String(), "48")
	assert.Contains(t, buf.String(), "Mistake patterns")
}

func TestActivity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Activity(&buf, []store.Activity{
		{Message: "Analyzed quiz", Kind: store.ActivitySuccess, Timestamp: time.Now()},
		{Message: "Deleted quiz", Kind: store.ActivityWarning, Timestamp: time.Now()},
	}))
	assert.Contains(t, buf.String(), "✓ Analyzed quiz")
	assert.Contains(t, buf.String(), "! Deleted quiz")
}

func TestExplanations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Explanations(&buf, "What is a linked list?", []review.MistakeExplanation{{
		Pattern:     analysis.MistakePattern{Phrase: "data arrays", Count: 2, Confidence: 67},
		Explanation: &insight.Explanation{Gap: "Confuses arrays with lists.", Suggestion: "Draw both."},
	}}))
	out := buf.String()
	assert.Contains(t, out, `"data arrays"`)
	assert.Contains(t, out, "Gap: Confuses arrays with lists.")
	assert.Contains(t, out, "Suggestion: Draw both.")
}

func TestLLMEvents(t *testing.T) {
	events := []store.LLMRequestEvent{{
		ID:        7,
		Timestamp: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "anthropic", Model: "claude-haiku", Purpose: "explain-mistake",
			InputTokens: 120, OutputTokens: 40, LatencyMs: 850, Success: false,
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, LLMEvents(&buf, events))
	out := buf.String()
	assert.Contains(t, out, "explain-mistake")
	assert.Contains(t, out, "claude-haiku")
	assert.Contains(t, out, "✗")
}

func TestLLMEventShowsMissingBodies(t *testing.T) {
	e := &store.LLMRequestEvent{
		ID: 3,
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "openai", Model: "gpt-mini", RequestBody: `{"prompt":"hi"}`,
			ErrorMessage: "rate limited",
		},
	}
	var buf bytes.Buffer
	require.NoError(t, LLMEvent(&buf, e))
	out := buf.String()
	assert.Contains(t, out, `{"prompt":"hi"}`)
	assert.Contains(t, out, "rate limited")
	assert.Contains(t, out, "(not captured)")
}

func TestLLMUsage(t *testing.T) {
	byPurpose := []store.LLMUsage{
		{Purpose: "explain-mistake", Calls: 2, InputTokens: 1000, OutputTokens: 200},
		{Purpose: "class-feedback", Calls: 1, InputTokens: 500, OutputTokens: 300},
	}
	byModel := []store.LLMUsage{
		{Model: "not-a-real-model", Calls: 3, InputTokens: 1500, OutputTokens: 500},
	}
	var buf bytes.Buffer
	require.NoError(t, LLMUsage(&buf, byPurpose, byModel))
	out := buf.String()
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "2000")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: not-a-real-model")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", FormatCost(0.0042))
	assert.Equal(t, "$1.50", FormatCost(1.5))
}
