package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestScoreBarWidth(t *testing.T) {
	tests := []struct {
		name  string
		bar   ScoreBar
		width int
	}{
		{"with label and score", NewScoreBar("Q1", 50, true, 40), 40},
		{"bare", NewScoreBar("", 100, false, 20), 20},
		{"minimum bar", NewScoreBar("A long label", 10, true, 5), lipgloss.Width("A long label") + 2 + 4 + 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, lipgloss.Width(tt.bar.View()))
		})
	}
}

func TestScoreBarLabelPadding(t *testing.T) {
	a := ScoreBar{Label: "Q1", LabelWidth: 6, Score: 30, Width: 40}
	b := ScoreBar{Label: "Q10", LabelWidth: 6, Score: 30, Width: 40}
	assert.Equal(t, lipgloss.Width(a.View()), lipgloss.Width(b.View()))
}

func TestFilterInput(t *testing.T) {
	f := NewFilterInput("student id", 16)
	assert.False(t, f.Focused())
	assert.True(t, f.Match("S01"), "empty filter matches everything")

	// Keys are ignored until focused.
	f, _ = f.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Empty(t, f.Value())

	f.Focus()
	for _, r := range "s0" {
		f, _ = f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "s0", f.Value())
	assert.True(t, f.Match("S01"))
	assert.False(t, f.Match("T11"))

	f.Blur()
	assert.False(t, f.Focused())
	assert.Contains(t, f.View(), "filter: s0")

	f.Clear()
	assert.Empty(t, f.Value())
	assert.Empty(t, f.View())
}
