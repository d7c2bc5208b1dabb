package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

func TestAnalyzeEmpty(t *testing.T) {
	a := fixtureAssignment()
	r := New(fixedOptions()).Analyze(a, nil)

	assert.Equal(t, 0, r.ClassAvg)
	assert.Equal(t, 0, r.TotalStudents)
	assert.Equal(t, 0, r.TotalSubmissions)
	assert.Equal(t, SchemaVersion, r.SchemaVersion)
	assert.Equal(t, fixedNow, r.GeneratedAt)

	require.Len(t, r.QuestionStats, 3)
	for qi := range a.Questions {
		assert.Zero(t, r.QuestionStats[qi].Count)
		assert.Empty(t, r.QuestionStats[qi].Difficulty)
		assert.Empty(t, r.MistakesByQuestion[qi].Mistakes)
		assert.Empty(t, r.KeywordsByQuestion[qi].Keywords)
		assert.Empty(t, r.ClustersByQuestion[qi].Groups)
		assert.Equal(t, qi, r.ClustersByQuestion[qi].QuestionIndex)
	}
	assert.Empty(t, r.PerformanceBands.High)
	assert.Empty(t, r.PerformanceBands.Average)
	assert.Empty(t, r.PerformanceBands.Struggling)
}

func TestAnalyzeNoQuestions(t *testing.T) {
	r := Analyze(&Assignment{ID: "x"}, nil)
	assert.Empty(t, r.QuestionStats)
	assert.Empty(t, r.ClustersByQuestion)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"questionStats":[]`)
	assert.Contains(t, string(b), `"high":[]`)
}

func TestAnalyzeFixture(t *testing.T) {
	a := fixtureAssignment()
	subs := fixtureSubmissions()
	r := New(fixedOptions()).Analyze(a, subs)

	assert.Equal(t, "demo-001", r.AssignmentID)
	assert.Equal(t, 16, r.TotalSubmissions)
	assert.Equal(t, 8, r.TotalStudents)
	// (525 + 494) / 16 = 63.6875
	assert.Equal(t, 64, r.ClassAvg)

	assert.Equal(t, 66, r.QuestionStats[0].Avg)
	assert.Equal(t, DifficultyModerate, r.QuestionStats[0].Difficulty)
	assert.Equal(t, 62, r.QuestionStats[1].Avg)
	assert.Zero(t, r.QuestionStats[2].Count)

	for qi, qc := range r.ClustersByQuestion {
		assert.LessOrEqual(t, len(qc.Groups), 4)
		for k := 1; k < len(qc.Groups); k++ {
			assert.GreaterOrEqual(t, qc.Groups[k-1].Size, qc.Groups[k].Size)
		}
		for _, g := range qc.Groups {
			assert.Len(t, g.StudentIDs, g.Size)
			assert.NotEmpty(t, g.Representative, "question %d", qi)
		}
	}

	// Two of the four wrong answers to question 1 share "log because".
	assert.NotEmpty(t, r.MistakesByQuestion[1].Mistakes)
	for _, m := range r.MistakesByQuestion[1].Mistakes {
		assert.Equal(t, 4, m.AffectedStudents)
		assert.LessOrEqual(t, len(m.Examples), 2)
	}

	bandTotal := len(r.PerformanceBands.High) + len(r.PerformanceBands.Average) + len(r.PerformanceBands.Struggling)
	assert.Equal(t, 8, bandTotal)
}

func TestAnalyzeClusterStudentsPartition(t *testing.T) {
	a := fixtureAssignment()
	opts := fixedOptions()
	opts.MaxClusterGroups = 100
	r := New(opts).Analyze(a, fixtureSubmissions())

	seen := map[string]int{}
	for _, g := range r.ClustersByQuestion[0].Groups {
		for _, id := range g.StudentIDs {
			seen[id]++
		}
	}
	assert.Len(t, seen, 8)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := fixtureAssignment()
	subs := fixtureSubmissions()

	seq := New(fixedOptions())
	parOpts := fixedOptions()
	parOpts.Parallel = true
	par := New(parOpts)

	first, err := json.Marshal(seq.Analyze(a, subs))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(seq.Analyze(a, subs))
		require.NoError(t, err)
		assert.JSONEq(t, string(first), string(again))

		parallel, err := json.Marshal(par.Analyze(a, subs))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(parallel))
	}
}

func TestAnalyzeOutOfRangeQuestion(t *testing.T) {
	a := &Assignment{ID: "a", Questions: []string{"only"}}
	subs := []Submission{
		{StudentID: "s1", QuestionIndex: 0, AnswerText: "fine answer", Score: Score(90)},
		{StudentID: "s2", QuestionIndex: 5, AnswerText: "stray", Score: Score(10)},
		{StudentID: "s2", QuestionIndex: -1, AnswerText: "stray", Score: Score(10)},
	}
	r := Analyze(a, subs)
	assert.Equal(t, 1, r.QuestionStats[0].Count)
	assert.Equal(t, 90.0, r.QuestionStats[0].High)
	assert.Equal(t, 3, r.TotalSubmissions)
	assert.Equal(t, 2, r.TotalStudents)
}

func TestNewFillsDefaults(t *testing.T) {
	a := New(Options{})
	opts := a.Options()
	assert.Equal(t, 0.25, opts.ClusterThreshold)
	assert.Equal(t, 4, opts.MaxClusterGroups)
	assert.Equal(t, 8, opts.TopKeywords)
	assert.Equal(t, 5, opts.MaxMistakes)
	assert.Equal(t, 65.0, *opts.WrongScoreCutoff)
	assert.Equal(t, 50.0, *opts.DefaultScore)
	assert.NotNil(t, opts.Now)
	assert.True(t, a.Tokenizer().IsStopWord("the"))
}

func TestMistakeCount(t *testing.T) {
	r := &AnalysisReport{MistakesByQuestion: []QuestionMistakes{
		{Mistakes: make([]MistakePattern, 2)},
		{Mistakes: make([]MistakePattern, 3)},
	}}
	assert.Equal(t, 5, r.MistakeCount())
}

func TestExplicitZeroScoreOptions(t *testing.T) {
	a := &Assignment{ID: "a1", Questions: []string{"What is a pointer?"}}
	subs := []Submission{
		{StudentID: "s1", QuestionIndex: 0, AnswerText: "stores data arrays"},
		{StudentID: "s2", QuestionIndex: 0, AnswerText: "stores data arrays", Score: Score(40)},
		{StudentID: "s3", QuestionIndex: 0, AnswerText: "stores data arrays", Score: Score(20)},
	}

	defaults := New(Options{}).Analyze(a, subs)
	assert.Equal(t, 37, defaults.ClassAvg)
	assert.NotEmpty(t, defaults.MistakesByQuestion[0].Mistakes)

	zeros := New(Options{DefaultScore: Score(0), WrongScoreCutoff: Score(0)})
	assert.Equal(t, 0.0, *zeros.Options().DefaultScore)
	assert.Equal(t, 0.0, *zeros.Options().WrongScoreCutoff)

	r := zeros.Analyze(a, subs)
	assert.Equal(t, 20, r.ClassAvg)
	assert.Empty(t, r.MistakesByQuestion[0].Mistakes)
}
