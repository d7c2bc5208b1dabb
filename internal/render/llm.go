package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/answerlens/internal/llm"
	"github.com/abhisek/answerlens/internal/store"
	"github.com/abhisek/answerlens/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04:05"

// LLMEvents prints a table of recorded model requests.
func LLMEvents(w io.Writer, events []store.LLMRequestEvent) error {
	t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	var b strings.Builder
	b.WriteString(t.Render() + "\n")
	return flush(w, &b)
}

// LLMEvent prints one request with its captured bodies.
func LLMEvent(w io.Writer, e *store.LLMRequestEvent) error {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", theme.Subtitle.Render(fmt.Sprintf("%-9s", label)), value)
	}
	field("ID", strconv.Itoa(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", strconv.FormatBool(e.Success))
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}

	body := func(title, s string) {
		b.WriteString(theme.Section.Render(title) + "\n")
		if s == "" {
			s = theme.Hint.Render("(not captured)")
		}
		b.WriteString(s + "\n")
	}
	body("REQUEST", e.RequestBody)
	body("RESPONSE", e.ResponseBody)
	return flush(w, &b)
}

// LLMUsage prints token usage by purpose and estimated cost by model.
func LLMUsage(w io.Writer, byPurpose, byModel []store.LLMUsage) error {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Usage by purpose") + "\n")
	pt := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var calls, in, out int
	for _, u := range byPurpose {
		pt.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	pt.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
	b.WriteString(pt.Render() + "\n")

	if len(byModel) == 0 {
		return flush(w, &b)
	}

	b.WriteString(theme.Section.Render("Estimated cost (USD)") + "\n")
	mt := newTable("Model", "Calls", "Input", "Output", "Cost")
	var (
		total   float64
		unknown []string
	)
	for _, u := range byModel {
		cost := "?"
		if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
			total += c
			cost = FormatCost(c)
		} else {
			unknown = append(unknown, u.Model)
		}
		mt.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
			strconv.Itoa(u.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	mt.Row(label, "", "", "", FormatCost(total))
	b.WriteString(mt.Render() + "\n")

	if len(unknown) > 0 {
		b.WriteString(theme.Hint.Render("Pricing unavailable for: "+strings.Join(unknown, ", ")) + "\n")
	}
	return flush(w, &b)
}

// FormatCost formats a USD amount, keeping sub-cent precision.
func FormatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
