package browser

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/answerlens/internal/analysis"
)

func testModel() Model {
	a := &analysis.Assignment{ID: "a1", Title: "Data Structures", Questions: []string{"Linked list?", "Binary search?"}}
	r := &analysis.AnalysisReport{
		AssignmentID: "a1",
		ClassAvg:     61,
		QuestionStats: []analysis.QuestionStat{
			{Question: "Linked list?", Avg: 70, Low: 30, High: 90, Count: 3, Difficulty: analysis.DifficultyModerate},
			{Question: "Binary search?", Avg: 52, Low: 20, High: 95, Count: 3, Difficulty: analysis.DifficultyModerate},
		},
		PerformanceBands: analysis.PerformanceBands{
			High:       []analysis.StudentAverage{{StudentID: "S01", Avg: 92}},
			Struggling: []analysis.StudentAverage{{StudentID: "T02", Avg: 25}},
		},
		ClustersByQuestion: []analysis.QuestionClusters{
			{QuestionIndex: 0, Groups: []analysis.ClusterGroup{
				{Size: 1, Representative: "nodes and pointers", StudentIDs: []string{"S01"}},
				{Size: 1, Representative: "stored in arrays", StudentIDs: []string{"T02"}},
			}},
		},
	}
	return New(a, r)
}

func press(m Model, keys ...tea.KeyPressMsg) Model {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func char(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestQuestionNavigation(t *testing.T) {
	m := testModel()
	assert.Equal(t, 0, m.Question())

	m = press(m, tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 0, m.Question(), "stays on first question")

	m = press(m, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 1, m.Question())

	m = press(m, char('l'))
	assert.Equal(t, 1, m.Question(), "stays on last question")

	m = press(m, char('h'))
	assert.Equal(t, 0, m.Question())
}

func TestFilterFlow(t *testing.T) {
	m := press(testModel(), char('/'))
	require.True(t, m.Filtering())

	m = press(m, char('t'), char('0'))
	assert.Equal(t, "t0", m.Filter())

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, m.Filtering())
	assert.Equal(t, "t0", m.Filter())

	body := m.body()
	assert.Contains(t, body, "T02 25%")
	assert.NotContains(t, body, "S01")
	assert.Contains(t, body, "stored in arrays")
	assert.NotContains(t, body, "nodes and pointers")

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Empty(t, m.Filter())
	assert.Contains(t, m.body(), "S01 92%")
}

func TestFilterEscapeWhileEditing(t *testing.T) {
	m := press(testModel(), char('/'), char('s'), tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, m.Filtering())
	assert.Empty(t, m.Filter())
}

func TestQuit(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(char('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFrame(t *testing.T) {
	updated, _ := testModel().Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := updated.(Model)

	frame := m.frame()
	assert.Contains(t, frame, "answerlens")
	assert.Contains(t, frame, "Data Structures")
	assert.Contains(t, frame, "Q1/2")
	assert.Contains(t, frame, "Linked list?")
	assert.Contains(t, frame, "Performance bands")
}

func TestVisibleScroll(t *testing.T) {
	m := testModel()
	lines := strings.Split(m.body(), "\n")
	require.Greater(t, len(lines), 4)

	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, strings.Join(lines[1:4], "\n"), m.visible(3))

	m = press(m, tea.KeyPressMsg{Code: tea.KeyUp}, tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, strings.Join(lines[0:3], "\n"), m.visible(3))

	m.scroll = 1000
	assert.Equal(t, strings.Join(lines[len(lines)-3:], "\n"), m.visible(3))
}
