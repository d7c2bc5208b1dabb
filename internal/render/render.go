// Package render prints reports, feedback drafts and dashboards to a
// terminal with lipgloss styling. Colors are downsampled to what the
// writer supports, so piping to a file yields plain text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
	"github.com/abhisek/answerlens/internal/review"
	"github.com/abhisek/answerlens/internal/store"
	"github.com/abhisek/answerlens/internal/ui/theme"
)

// Width is the rendering width for bars and wrapped text.
const Width = 80

func flush(w io.Writer, b *strings.Builder) error {
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
}

func wrap(s string, indent int) string {
	return lipgloss.NewStyle().
		Width(Width).
		PaddingLeft(indent).
		Render(s)
}

// Assignments prints the stored assignments.
func Assignments(w io.Writer, list []*analysis.Assignment) error {
	var b strings.Builder
	if len(list) == 0 {
		b.WriteString(theme.Hint.Render("No assignments yet. Import a batch or run `answerlens seed`.") + "\n")
		return flush(w, &b)
	}
	t := newTable("ID", "Title", "Subject", "Questions", "Created")
	for _, a := range list {
		t.Row(a.ID, a.Title, a.Subject, strconv.Itoa(len(a.Questions)), a.CreatedAt.Local().Format("2006-01-02"))
	}
	b.WriteString(t.Render() + "\n")
	return flush(w, &b)
}

// Stats prints the dashboard counters.
func Stats(w io.Writer, st *review.ReportStats) error {
	var b strings.Builder
	cards := []string{
		statCard("Assignments", st.Assignments),
		statCard("Answers", st.Submissions),
		statCard("Mistake patterns", st.MistakePatterns),
		statCard("Feedback drafts", st.FeedbackDrafts),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	return flush(w, &b)
}

func statCard(label string, n int) string {
	body := theme.Title.Render(strconv.Itoa(n)) + "\n" + theme.Subtitle.Render(label)
	return theme.Card.Width(20).Render(body)
}

// Activity prints activity log entries.
func Activity(w io.Writer, entries []store.Activity) error {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(theme.Hint.Render("No activity yet.") + "\n")
		return flush(w, &b)
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s %s\n",
			theme.Subtitle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			activityIcon(e.Kind),
			e.Message)
	}
	return flush(w, &b)
}

func activityIcon(k store.ActivityKind) string {
	switch k {
	case store.ActivitySuccess:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case store.ActivityWarning:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("!")
	case store.ActivityError:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	default:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("•")
	}
}

// Explanations prints model explanations of mistake patterns.
func Explanations(w io.Writer, question string, exps []review.MistakeExplanation) error {
	var b strings.Builder
	b.WriteString(theme.Title.Render(question) + "\n")
	if len(exps) == 0 {
		b.WriteString(theme.Hint.Render("No mistake patterns found for this question.") + "\n")
		return flush(w, &b)
	}
	for _, e := range exps {
		b.WriteString(theme.Section.Render(fmt.Sprintf("%q  (%d×, %d%% confidence)",
			e.Pattern.Phrase, e.Pattern.Count, e.Pattern.Confidence)) + "\n")
		b.WriteString(wrap("Gap: "+e.Explanation.Gap, 2) + "\n")
		b.WriteString(wrap("Suggestion: "+e.Explanation.Suggestion, 2) + "\n")
	}
	return flush(w, &b)
}

// Feedback prints every draft with its review status.
func Feedback(w io.Writer, pkg *feedback.Package) error {
	var b strings.Builder

	counts := pkg.Counts()
	b.WriteString(theme.Title.Render("Feedback drafts") + "  " +
		theme.Subtitle.Render(fmt.Sprintf("%d pending · %d approved · %d rejected",
			counts[feedback.StatusPending], counts[feedback.StatusApproved], counts[feedback.StatusRejected])) + "\n")

	b.WriteString(theme.Section.Render("Class summary") + " " + theme.StatusBadge(pkg.SummaryStatus) + "\n")
	b.WriteString(wrap(pkg.Summary, 2) + "\n")

	if len(pkg.QuestionDrafts) > 0 {
		b.WriteString(theme.Section.Render("Questions") + "\n")
		for _, d := range pkg.QuestionDrafts {
			fmt.Fprintf(&b, "  %s %s  %s\n",
				theme.Selected.Render(fmt.Sprintf("Q%d", d.QuestionIndex+1)),
				theme.StatusBadge(d.Status),
				theme.Subtitle.Render(feedback.QuestionTarget(d.QuestionIndex)))
			b.WriteString(wrap(d.Draft, 4) + "\n")
		}
	}

	if len(pkg.StudentDrafts) > 0 {
		b.WriteString(theme.Section.Render("Students") + "\n")
		for _, d := range pkg.StudentDrafts {
			fmt.Fprintf(&b, "  %s %s  %s\n",
				theme.Selected.Render(d.StudentID),
				theme.StatusBadge(d.Status),
				theme.Subtitle.Render(feedback.StudentTarget(d.StudentID)))
			b.WriteString(wrap(d.Draft, 4) + "\n")
		}
	}
	return flush(w, &b)
}
