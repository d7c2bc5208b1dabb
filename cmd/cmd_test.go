package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/answerlens/internal/review"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"ANSWERLENS_CONFIG", "ANSWERLENS_DB", "ANSWERLENS_DB_DRIVER",
		"ANSWERLENS_SLACK_TOKEN", "ANSWERLENS_SLACK_CHANNEL", "ANSWERLENS_AUTO_SCORE",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return filepath.Join(dir, "data", "answerlens.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedReportFeedbackFlow(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, "--db", db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded demo assignment "+review.DemoAssignmentID)

	out, err = execute(t, "--db", db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "demo data not loaded")

	out, err = execute(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Data Structures")

	out, err = execute(t, "--db", db, "report", review.DemoAssignmentID)
	require.NoError(t, err)
	assert.Contains(t, out, "Data Structures: Midterm Q&A")

	out, err = execute(t, "--db", db, "feedback", review.DemoAssignmentID)
	require.NoError(t, err)
	assert.Contains(t, out, "Class summary")
	assert.Contains(t, out, "[pending]")

	out, err = execute(t, "--db", db, "approve", review.DemoAssignmentID, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "summary: approved")

	out, err = execute(t, "--db", db, "activity", "--limit", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked summary approved")
	assert.Contains(t, out, "Demo data seeded")
	activityCmd.Flags().Set("limit", "10")
}

func TestAnalyzeJSON(t *testing.T) {
	db := setupEnv(t)
	t.Cleanup(func() { analyzeCmd.Flags().Set("json", "false") })

	_, err := execute(t, "--db", db, "seed")
	require.NoError(t, err)

	out, err := execute(t, "--db", db, "analyze", review.DemoAssignmentID, "--json")
	require.NoError(t, err)

	var report struct {
		AssignmentID     string `json:"assignmentId"`
		TotalSubmissions int    `json:"totalSubmissions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, review.DemoAssignmentID, report.AssignmentID)
	assert.Equal(t, 24, report.TotalSubmissions)
}

func TestImportYAML(t *testing.T) {
	db := setupEnv(t)
	batch := `assignment:
  id: quiz-1
  title: Cell Biology
  subject: Biology
  questions:
    - What does the mitochondria do?
submissions:
  - student_id: s1
    question_index: 0
    answer_text: It produces energy for the cell
    score: 90
  - student_id: s2
    question_index: 0
    answer_text: It stores water
    score: 30
`
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o644))

	out, err := execute(t, "--db", db, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 submissions into quiz-1")

	out, err = execute(t, "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Assignments")
}

func TestUnknownAssignment(t *testing.T) {
	db := setupEnv(t)
	_, err := execute(t, "--db", db, "report", "nope")
	assert.ErrorIs(t, err, review.ErrAssignmentNotFound)
}

func TestPublishRequiresToken(t *testing.T) {
	db := setupEnv(t)
	_, err := execute(t, "--db", db, "seed")
	require.NoError(t, err)

	_, err = execute(t, "--db", db, "publish", review.DemoAssignmentID, "--channel", "#class")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack token")
	publishCmd.Flags().Set("channel", "")
}

func TestExplainRejectsBadQuestionNumber(t *testing.T) {
	db := setupEnv(t)
	_, err := execute(t, "--db", db, "explain", review.DemoAssignmentID, "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid question number")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "answerlens")
}
