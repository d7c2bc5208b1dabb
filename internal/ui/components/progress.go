package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/answerlens/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a horizontal bar.
type ScoreBar struct {
	Label      string
	LabelWidth int // pads the label so bars line up
	Score      int
	ShowScore  bool
	Width      int
	Fill       color.Color // defaults to theme.Secondary
}

// NewScoreBar creates a score bar.
func NewScoreBar(label string, score int, showScore bool, width int) ScoreBar {
	return ScoreBar{
		Label:     label,
		Score:     score,
		ShowScore: showScore,
		Width:     width,
	}
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	scoreWidth := 0
	if p.ShowScore {
		scoreWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-scoreWidth, 4)
	filled := min(max(barWidth*p.Score/100, 0), barWidth)
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowScore {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", p.Score))
	}

	return result
}
