package insight

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/llm"
)

func testPattern() analysis.MistakePattern {
	return analysis.MistakePattern{
		Phrase:           "data arrays",
		Count:            2,
		Confidence:       50,
		AffectedStudents: 4,
		Examples:         []string{"Linked list stores data in arrays", "It stores data in arrays and uses index to access"},
	}
}

func testReport() (*analysis.Assignment, *analysis.AnalysisReport) {
	a := &analysis.Assignment{ID: "a1", Title: "Data Structures Midterm", Subject: "Computer Science"}
	r := &analysis.AnalysisReport{
		AssignmentID:  "a1",
		ClassAvg:      64,
		TotalStudents: 8,
		QuestionStats: []analysis.QuestionStat{
			{Question: "What is a linked list?", Avg: 66, Count: 8, Difficulty: analysis.DifficultyModerate},
		},
		PerformanceBands: analysis.PerformanceBands{
			High:       []analysis.StudentAverage{{StudentID: "S01", Avg: 93}},
			Struggling: []analysis.StudentAverage{{StudentID: "S02", Avg: 30}},
		},
		MistakesByQuestion: []analysis.QuestionMistakes{
			{QuestionIndex: 0, Mistakes: []analysis.MistakePattern{testPattern()}},
		},
		KeywordsByQuestion: []analysis.QuestionKeywords{
			{QuestionIndex: 0, Keywords: []analysis.Keyword{{Word: "pointers", Score: 0.9}}},
		},
	}
	return a, r
}

func TestExplainMistake(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"gap":"Students conflate contiguous arrays with node chains.","suggestion":"Contrast the two memory layouts on the board."}`),
	})
	e := NewExplainer(mock, DefaultConfig())

	got, err := e.ExplainMistake(context.Background(), "What is a linked list?", testPattern())
	require.NoError(t, err)
	assert.Equal(t, "Students conflate contiguous arrays with node chains.", got.Gap)
	assert.Equal(t, "Contrast the two memory layouts on the board.", got.Suggestion)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Same(t, ExplanationSchema, req.Schema)
	assert.Equal(t, 512, req.MaxTokens)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "Question: What is a linked list?")
	assert.Contains(t, prompt, `Mistake pattern: "data arrays"`)
	assert.Contains(t, prompt, "Found in 2 of 4 wrong answers (confidence 50%)")
	assert.Contains(t, prompt, `"Linked list stores data in arrays"`)
}

func TestExplainMistakeInvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"gap":"only this"}`)})
	e := NewExplainer(mock, DefaultConfig())

	_, err := e.ExplainMistake(context.Background(), "Q", testPattern())
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %v", err)
}

func TestDraftClassFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"Solid grasp of pointers overall.","advice":["Revisit memory layout","Practice tracing"]}`),
	})
	e := NewExplainer(mock, Config{})
	a, r := testReport()

	got, err := e.DraftClassFeedback(context.Background(), a, r)
	require.NoError(t, err)
	assert.Equal(t, "Solid grasp of pointers overall.", got.Summary)
	assert.Equal(t, []string{"Revisit memory layout", "Practice tracing"}, got.Advice)
	assert.Equal(t, "Solid grasp of pointers overall.\n\nActionable Advice:\n• Revisit memory layout\n• Practice tracing", got.Text())

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Assignment: Data Structures Midterm")
	assert.Contains(t, prompt, "Subject: Computer Science")
	assert.Contains(t, prompt, "Class average: 64%")
	assert.Contains(t, prompt, `"commonMistakes":["data arrays"]`)
	assert.Contains(t, prompt, `"keywords":["pointers"]`)
	assert.Contains(t, prompt, `"struggling":1`)
	assert.Equal(t, DefaultConfig().MaxTokens, mock.Calls[0].MaxTokens)
}

func TestExplainerWithoutProvider(t *testing.T) {
	e := NewExplainer(nil, DefaultConfig())
	a, r := testReport()

	_, err := e.ExplainMistake(context.Background(), "Q", testPattern())
	assert.ErrorIs(t, err, ErrNoProvider)
	_, err = e.DraftClassFeedback(context.Background(), a, r)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestExplainerPurposeLabels(t *testing.T) {
	var purposes []string
	p := &purposeRecorder{MockProvider: llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"gap":"g","suggestion":"s"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"summary":"s","advice":[]}`)},
	), seen: &purposes}
	e := NewExplainer(p, DefaultConfig())
	a, r := testReport()

	_, err := e.ExplainMistake(context.Background(), "Q", testPattern())
	require.NoError(t, err)
	_, err = e.DraftClassFeedback(context.Background(), a, r)
	require.NoError(t, err)

	assert.Equal(t, []string{llm.PurposeExplainMistake, llm.PurposeClassFeedback}, purposes)
}

type purposeRecorder struct {
	*llm.MockProvider
	seen *[]string
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	*p.seen = append(*p.seen, llm.PurposeFrom(ctx))
	return p.MockProvider.Generate(ctx, req)
}
