package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
)

// Color palette, muted for long reading sessions.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginTop(1)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Quote = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true).
		PaddingLeft(4)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	TableBorder = lipgloss.NewStyle().
			Foreground(Border)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// BandColor returns the color for a performance band.
func BandColor(b analysis.PerformanceBand) color.Color {
	switch b {
	case analysis.BandHigh:
		return Success
	case analysis.BandAverage:
		return Accent
	default:
		return Error
	}
}

// DifficultyColor returns the color for a question difficulty label.
func DifficultyColor(d analysis.Difficulty) color.Color {
	switch d {
	case analysis.DifficultyEasy:
		return Success
	case analysis.DifficultyModerate:
		return Accent
	case analysis.DifficultyHard:
		return Error
	default:
		return TextDim
	}
}

// ScoreColor colors an average score on the 80/50 band scale.
func ScoreColor(avg int) color.Color {
	return BandColor(analysis.BandFor(float64(avg)))
}

// StatusBadge renders a draft status.
func StatusBadge(s feedback.Status) string {
	c := TextDim
	switch s {
	case feedback.StatusApproved:
		c = Success
	case feedback.StatusRejected:
		c = Error
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render("[" + string(s) + "]")
}
