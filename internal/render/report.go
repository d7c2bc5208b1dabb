package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/ui/components"
	"github.com/abhisek/answerlens/internal/ui/theme"
)

// Report prints a full analysis report.
func Report(w io.Writer, a *analysis.Assignment, r *analysis.AnalysisReport) error {
	var b strings.Builder

	b.WriteString(theme.Title.Render(a.Title) + "\n")
	sub := fmt.Sprintf("generated %s", r.GeneratedAt.Local().Format("2006-01-02 15:04"))
	if a.Subject != "" {
		sub = a.Subject + " · " + sub
	}
	b.WriteString(theme.Subtitle.Render(sub) + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Class average", r.ClassAvg),
		statCard("Students", r.TotalStudents),
		statCard("Answers", r.TotalSubmissions),
		statCard("Mistake patterns", r.MistakeCount()),
	) + "\n")

	b.WriteString(Bands(r.PerformanceBands, nil))
	b.WriteString(questionTable(r.QuestionStats))

	for qi := range r.QuestionStats {
		b.WriteString(Question(r, qi, nil))
	}
	return flush(w, &b)
}

// Bands renders the performance bands, keeping only students accepted by
// match. A nil match keeps everyone.
func Bands(p analysis.PerformanceBands, match func(string) bool) string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Performance bands") + "\n")
	for _, band := range []analysis.PerformanceBand{analysis.BandHigh, analysis.BandAverage, analysis.BandStruggling} {
		var ids []string
		for _, s := range p.Band(band) {
			if match == nil || match(s.StudentID) {
				ids = append(ids, fmt.Sprintf("%s %d%%", s.StudentID, s.Avg))
			}
		}
		label := lipgloss.NewStyle().
			Foreground(theme.BandColor(band)).
			Bold(true).
			Width(12).
			Render(string(band))
		list := theme.Hint.Render("none")
		if len(ids) > 0 {
			list = strings.Join(ids, ", ")
		}
		fmt.Fprintf(&b, "  %s %s\n", label, list)
	}
	return b.String()
}

func questionTable(stats []analysis.QuestionStat) string {
	if len(stats) == 0 {
		return ""
	}
	t := newTable("#", "Question", "Avg", "Range", "Answers", "Difficulty")
	for i, s := range stats {
		avg, rng, diff := "-", "-", "n/a"
		if s.Count > 0 {
			avg = strconv.Itoa(s.Avg) + "%"
			rng = fmt.Sprintf("%g-%g", s.Low, s.High)
			diff = string(s.Difficulty)
		}
		t.Row(strconv.Itoa(i+1), truncate(s.Question, 40), avg, rng, strconv.Itoa(s.Count), diff)
	}
	return theme.Section.Render("Questions") + "\n" + t.Render() + "\n"
}

// Question renders the detail block for question qi: score bar, keywords,
// mistake patterns and answer clusters. Cluster members are limited to
// students accepted by match; a nil match keeps everyone.
func Question(r *analysis.AnalysisReport, qi int, match func(string) bool) string {
	if qi < 0 || qi >= len(r.QuestionStats) {
		return ""
	}
	stat := r.QuestionStats[qi]

	var b strings.Builder
	b.WriteString(theme.Section.Render(fmt.Sprintf("Q%d. %s", qi+1, stat.Question)) + "\n")

	if stat.Count == 0 {
		b.WriteString("  " + theme.Hint.Render("No answers yet.") + "\n")
		return b.String()
	}

	bar := components.NewScoreBar("Average", stat.Avg, true, Width-2)
	bar.Fill = theme.ScoreColor(stat.Avg)
	diff := lipgloss.NewStyle().Foreground(theme.DifficultyColor(stat.Difficulty)).Render(string(stat.Difficulty))
	fmt.Fprintf(&b, "  %s\n  %s · %d answers · range %g-%g\n", bar.View(), diff, stat.Count, stat.Low, stat.High)

	if kws := keywordsFor(r, qi); len(kws) > 0 {
		words := make([]string, len(kws))
		for i, k := range kws {
			words[i] = k.Word
		}
		fmt.Fprintf(&b, "  %s %s\n", theme.Subtitle.Render("Keywords:"), strings.Join(words, ", "))
	}

	if ms := mistakesFor(r, qi); len(ms) > 0 {
		b.WriteString("  " + theme.Subtitle.Render("Mistake patterns:") + "\n")
		for _, m := range ms {
			fmt.Fprintf(&b, "    %s  %d× in %d wrong answers · %d%% confidence\n",
				lipgloss.NewStyle().Foreground(theme.Error).Render(strconv.Quote(m.Phrase)),
				m.Count, m.AffectedStudents, m.Confidence)
			for _, ex := range m.Examples {
				b.WriteString(theme.Quote.Render("“"+ex+"”") + "\n")
			}
		}
	}

	if groups := clustersFor(r, qi); len(groups) > 0 {
		b.WriteString("  " + theme.Subtitle.Render("Answer groups:") + "\n")
		for _, g := range groups {
			var ids []string
			for _, id := range g.StudentIDs {
				if match == nil || match(id) {
					ids = append(ids, id)
				}
			}
			if match != nil && len(ids) == 0 {
				continue
			}
			fmt.Fprintf(&b, "    %s %s\n", theme.Selected.Render(fmt.Sprintf("[%d]", g.Size)), truncate(g.Representative, 60))
			b.WriteString(theme.Quote.Render(strings.Join(ids, ", ")) + "\n")
		}
	}
	return b.String()
}

func keywordsFor(r *analysis.AnalysisReport, qi int) []analysis.Keyword {
	for _, qk := range r.KeywordsByQuestion {
		if qk.QuestionIndex == qi {
			return qk.Keywords
		}
	}
	return nil
}

func mistakesFor(r *analysis.AnalysisReport, qi int) []analysis.MistakePattern {
	for _, qm := range r.MistakesByQuestion {
		if qm.QuestionIndex == qi {
			return qm.Mistakes
		}
	}
	return nil
}

func clustersFor(r *analysis.AnalysisReport, qi int) []analysis.ClusterGroup {
	for _, qc := range r.ClustersByQuestion {
		if qc.QuestionIndex == qi {
			return qc.Groups
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
