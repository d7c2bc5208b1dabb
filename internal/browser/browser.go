// Package browser is an interactive terminal view of one analysis report.
package browser

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/render"
	"github.com/abhisek/answerlens/internal/ui/components"
	"github.com/abhisek/answerlens/internal/ui/layout"
	"github.com/abhisek/answerlens/internal/ui/theme"
)

// Model is the root Bubble Tea model: one question at a time, with the
// class performance bands alongside and a student-id filter over both.
type Model struct {
	assignment *analysis.Assignment
	report     *analysis.AnalysisReport

	question int
	scroll   int
	filter   components.FilterInput

	width  int
	height int
}

// New creates a browser positioned on the first question.
func New(a *analysis.Assignment, r *analysis.AnalysisReport) Model {
	return Model{
		assignment: a,
		report:     r,
		filter:     components.NewFilterInput("student id", 32),
	}
}

// Question returns the zero-based index of the displayed question.
func (m Model) Question() int { return m.question }

// Filter returns the active student filter.
func (m Model) Filter() string { return m.filter.Value() }

// Filtering reports whether the filter is being edited.
func (m Model) Filtering() bool { return m.filter.Focused() }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			if m.question > 0 {
				m.question--
				m.scroll = 0
			}
		case "right", "l":
			if m.question < len(m.report.QuestionStats)-1 {
				m.question++
				m.scroll = 0
			}
		case "up", "k":
			m.scroll = max(m.scroll-1, 0)
		case "down", "j":
			m.scroll++
		case "/":
			return m, m.filter.Focus()
		case "esc":
			m.filter.Clear()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.filter.Blur()
			m.scroll = 0
			return m, nil
		case "esc":
			m.filter.Clear()
			m.scroll = 0
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}
	v.SetContent(m.frame())
	return v
}

func (m Model) frame() string {
	status := fmt.Sprintf("class avg %d%%", m.report.ClassAvg)
	if n := len(m.report.QuestionStats); n > 0 {
		status = fmt.Sprintf("Q%d/%d · %s", m.question+1, n, status)
	}
	header := layout.RenderHeader(m.assignment.Title, status, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.visible(contentHeight), footer, m.width, m.height)
}

func (m Model) keyHints() []layout.KeyHint {
	if m.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "/", Description: "Filter students"},
	}
	if m.filter.Value() != "" {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Clear filter"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// visible returns the scrolled window of the body.
func (m Model) visible(height int) string {
	lines := strings.Split(m.body(), "\n")
	start := min(m.scroll, max(len(lines)-height, 0))
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

// body renders the unscrolled content.
func (m Model) body() string {
	var match func(string) bool
	if m.filter.Value() != "" {
		match = m.filter.Match
	}

	var b strings.Builder
	if fv := m.filter.View(); fv != "" {
		b.WriteString(" " + fv + "\n")
	}

	if len(m.report.QuestionStats) == 0 {
		b.WriteString(theme.Hint.Render(" This assignment has no questions.") + "\n")
		b.WriteString(render.Bands(m.report.PerformanceBands, match))
		return b.String()
	}

	bands := render.Bands(m.report.PerformanceBands, match)
	question := render.Question(m.report, m.question, match)
	if layout.IsCompactWidth(m.width) {
		b.WriteString(question + bands)
		return b.String()
	}

	left := lipgloss.NewStyle().Width(m.width * 2 / 3).Render(question)
	right := lipgloss.NewStyle().Width(m.width - m.width*2/3).Render(bands)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	return b.String()
}

// Run starts the browser and blocks until the user quits.
func Run(a *analysis.Assignment, r *analysis.AnalysisReport) error {
	p := tea.NewProgram(New(a, r))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
