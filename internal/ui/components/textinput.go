package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/answerlens/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput as a case-insensitive substring
// filter.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, maxWidth int) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return FilterInput{Model: ti}
}

// Focus starts editing.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops editing and keeps the current value.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Clear stops editing and empties the filter.
func (f *FilterInput) Clear() {
	f.Model.Reset()
	f.Model.Blur()
}

// Focused reports whether the input is being edited.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input while editing, or the active filter otherwise.
func (f FilterInput) View() string {
	if f.Model.Focused() {
		return f.Model.View()
	}
	if v := f.Value(); v != "" {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("filter: " + v)
	}
	return ""
}

// Value returns the trimmed filter text.
func (f FilterInput) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// Match reports whether s passes the filter. An empty filter matches
// everything.
func (f FilterInput) Match(s string) bool {
	v := f.Value()
	return v == "" || strings.Contains(strings.ToLower(s), strings.ToLower(v))
}
