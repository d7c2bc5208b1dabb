package analysis

import "time"

// SchemaVersion identifies the shape of AnalysisReport. Stored reports with
// a different major version are regenerated rather than decoded.
const SchemaVersion = "v1.0.0"

// Assignment is a set of short-answer questions given to a class.
type Assignment struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Subject string `json:"subject" yaml:"subject"`

	// Questions are prompt texts. A submission refers to a question by its
	// zero-based position in this slice.
	Questions []string `json:"questions" yaml:"questions"`

	// ModelKeywords optionally lists, per question, the terms a complete
	// answer is expected to use. Only consulted by the scoring heuristic.
	ModelKeywords [][]string `json:"modelKeywords,omitempty" yaml:"model_keywords,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at,omitempty"`
}

// KeywordsFor returns the model keywords for question qi, or nil.
func (a *Assignment) KeywordsFor(qi int) []string {
	if qi < 0 || qi >= len(a.ModelKeywords) {
		return nil
	}
	return a.ModelKeywords[qi]
}

// Submission is one student's answer to one question.
type Submission struct {
	ID            string   `json:"id" yaml:"id"`
	AssignmentID  string   `json:"assignmentId" yaml:"assignment_id"`
	StudentID     string   `json:"studentId" yaml:"student_id"`
	QuestionIndex int      `json:"questionIndex" yaml:"question_index"`
	AnswerText    string   `json:"answerText" yaml:"answer_text"`
	Score         *float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// ScoreOr returns the submission's score, or def when it has none.
func (s Submission) ScoreOr(def float64) float64 {
	if s.Score == nil {
		return def
	}
	return *s.Score
}

// Score is a convenience for building optional scores.
func Score(v float64) *float64 {
	return &v
}

// Difficulty labels a question by its average score.
type Difficulty string

const (
	DifficultyHard     Difficulty = "Hard"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyEasy     Difficulty = "Easy"
)

// PerformanceBand groups students by their average score.
type PerformanceBand string

const (
	BandHigh       PerformanceBand = "High"
	BandAverage    PerformanceBand = "Average"
	BandStruggling PerformanceBand = "Struggling"
)

// QuestionStat summarizes the scores for one question. Difficulty is empty
// when the question has no submissions.
type QuestionStat struct {
	Question   string     `json:"question"`
	Avg        int        `json:"avg"`
	Low        float64    `json:"low"`
	High       float64    `json:"high"`
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// StudentAverage is one student's rounded mean score.
type StudentAverage struct {
	StudentID string `json:"studentId"`
	Avg       int    `json:"avg"`
}

// PerformanceBands partitions students into High, Average and Struggling.
type PerformanceBands struct {
	High       []StudentAverage `json:"high"`
	Average    []StudentAverage `json:"average"`
	Struggling []StudentAverage `json:"struggling"`
}

// Band returns the students in band b.
func (p PerformanceBands) Band(b PerformanceBand) []StudentAverage {
	switch b {
	case BandHigh:
		return p.High
	case BandAverage:
		return p.Average
	default:
		return p.Struggling
	}
}

// MistakePattern is a phrase recurring across wrong answers.
type MistakePattern struct {
	Phrase     string `json:"phrase"`
	Count      int    `json:"count"`
	Confidence int    `json:"confidence"`
	// AffectedStudents is the size of the wrong-answer pool the phrase was
	// mined from, not the number of answers containing it.
	AffectedStudents int      `json:"affectedStudents"`
	Examples         []string `json:"examples"`
}

type QuestionMistakes struct {
	Question      string           `json:"question"`
	QuestionIndex int              `json:"questionIndex"`
	Mistakes      []MistakePattern `json:"mistakes"`
}

// Keyword is a term ranked by its summed TF-IDF weight.
type Keyword struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

type QuestionKeywords struct {
	Question      string    `json:"question"`
	QuestionIndex int       `json:"questionIndex"`
	Keywords      []Keyword `json:"keywords"`
}

// ClusterGroup is one group of similar answers.
type ClusterGroup struct {
	Size           int      `json:"size"`
	Representative string   `json:"representative"`
	StudentIDs     []string `json:"studentIds"`
}

type QuestionClusters struct {
	Question      string         `json:"question"`
	QuestionIndex int            `json:"questionIndex"`
	Groups        []ClusterGroup `json:"groups"`
}

// AnalysisReport is the full analytics for one assignment and one
// submissions snapshot. It is never updated in place; a new snapshot
// produces a new report.
type AnalysisReport struct {
	SchemaVersion      string             `json:"schemaVersion"`
	AssignmentID       string             `json:"assignmentId"`
	ClassAvg           int                `json:"classAvg"`
	TotalStudents      int                `json:"totalStudents"`
	TotalSubmissions   int                `json:"totalSubmissions"`
	QuestionStats      []QuestionStat     `json:"questionStats"`
	PerformanceBands   PerformanceBands   `json:"performanceBands"`
	MistakesByQuestion []QuestionMistakes `json:"mistakesByQuestion"`
	KeywordsByQuestion []QuestionKeywords `json:"keywordsByQuestion"`
	ClustersByQuestion []QuestionClusters `json:"clustersByQuestion"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}

// MistakeCount is the total number of mistake patterns across questions.
func (r *AnalysisReport) MistakeCount() int {
	n := 0
	for _, qm := range r.MistakesByQuestion {
		n += len(qm.Mistakes)
	}
	return n
}
