// Package insight asks a language model to interpret analytics results:
// why a mistake pattern occurs, and how to word feedback for the class.
// Its output is advisory and never feeds back into the analytics.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/llm"
)

// ErrNoProvider is returned when the Explainer has no model configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// Config holds generation settings for the Explainer.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.4,
	}
}

// Explainer produces model-written explanations of analytics results.
type Explainer struct {
	provider llm.Provider
	cfg      Config
}

// NewExplainer creates an Explainer. A nil provider yields an Explainer
// whose methods return ErrNoProvider.
func NewExplainer(provider llm.Provider, cfg Config) *Explainer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Explainer{provider: provider, cfg: cfg}
}

// Explanation is the model's reading of one mistake pattern.
type Explanation struct {
	Gap        string `json:"gap"`
	Suggestion string `json:"suggestion"`
}

// ClassFeedback is model-drafted feedback for the whole class.
type ClassFeedback struct {
	Summary string   `json:"summary"`
	Advice  []string `json:"advice"`
}

// Text renders the feedback as plain text suitable for a draft.
func (c *ClassFeedback) Text() string {
	var b strings.Builder
	b.WriteString(c.Summary)
	if len(c.Advice) > 0 {
		b.WriteString("\n\nActionable Advice:\n")
		for _, a := range c.Advice {
			fmt.Fprintf(&b, "• %s\n", a)
		}
	}
	return strings.TrimSpace(b.String())
}

// ExplainMistake asks the model why students repeat a mistake pattern in
// their answers to question.
func (e *Explainer) ExplainMistake(ctx context.Context, question string, m analysis.MistakePattern) (*Explanation, error) {
	if e.provider == nil {
		return nil, ErrNoProvider
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplainMistake)

	examples, err := json.Marshal(m.Examples)
	if err != nil {
		return nil, fmt.Errorf("encode examples: %w", err)
	}
	userMsg, err := render(explainTemplate, explainData{
		Question:   question,
		Phrase:     m.Phrase,
		Count:      m.Count,
		Pool:       m.AffectedStudents,
		Confidence: m.Confidence,
		Examples:   string(examples),
	})
	if err != nil {
		return nil, fmt.Errorf("build explanation prompt: %w", err)
	}

	var out Explanation
	if err := e.generate(ctx, explainSystemPrompt, userMsg, ExplanationSchema, &out); err != nil {
		return nil, fmt.Errorf("explain mistake %q: %w", m.Phrase, err)
	}
	return &out, nil
}

// DraftClassFeedback asks the model for class-level feedback grounded in
// the report's statistics, mistakes and keywords.
func (e *Explainer) DraftClassFeedback(ctx context.Context, a *analysis.Assignment, r *analysis.AnalysisReport) (*ClassFeedback, error) {
	if e.provider == nil {
		return nil, ErrNoProvider
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeClassFeedback)

	insights, err := json.Marshal(summarize(r))
	if err != nil {
		return nil, fmt.Errorf("encode insights: %w", err)
	}
	userMsg, err := render(feedbackTemplate, feedbackData{
		Title:    a.Title,
		Subject:  a.Subject,
		ClassAvg: r.ClassAvg,
		Students: r.TotalStudents,
		Insights: string(insights),
	})
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	var out ClassFeedback
	if err := e.generate(ctx, feedbackSystemPrompt, userMsg, ClassFeedbackSchema, &out); err != nil {
		return nil, fmt.Errorf("draft class feedback: %w", err)
	}
	return &out, nil
}

func (e *Explainer) generate(ctx context.Context, system, user string, schema *llm.Schema, out any) error {
	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    llm.UserMessage(user),
		Schema:      schema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// questionInsight is the compact per-question digest sent to the model.
type questionInsight struct {
	Question   string   `json:"question"`
	Avg        int      `json:"avg"`
	Difficulty string   `json:"difficulty,omitempty"`
	Mistakes   []string `json:"commonMistakes,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

type reportInsight struct {
	Bands     map[string]int    `json:"performanceBands"`
	Questions []questionInsight `json:"questions"`
}

func summarize(r *analysis.AnalysisReport) reportInsight {
	out := reportInsight{
		Bands: map[string]int{
			"high":       len(r.PerformanceBands.High),
			"average":    len(r.PerformanceBands.Average),
			"struggling": len(r.PerformanceBands.Struggling),
		},
	}
	for qi, st := range r.QuestionStats {
		qs := questionInsight{Question: st.Question, Avg: st.Avg, Difficulty: string(st.Difficulty)}
		for _, qm := range r.MistakesByQuestion {
			if qm.QuestionIndex != qi {
				continue
			}
			for _, m := range qm.Mistakes {
				qs.Mistakes = append(qs.Mistakes, m.Phrase)
			}
		}
		for _, qk := range r.KeywordsByQuestion {
			if qk.QuestionIndex != qi {
				continue
			}
			for _, k := range qk.Keywords {
				qs.Keywords = append(qs.Keywords, k.Word)
			}
		}
		out.Questions = append(out.Questions, qs)
	}
	return out
}

const explainSystemPrompt = `You are an expert educator reviewing short written answers. A text-analysis engine found a phrase that recurs across wrong answers to one question. Explain the misunderstanding behind it.

Instructions:
- Describe the conceptual gap in 2-3 sentences, in plain language.
- Give one specific teaching suggestion in 1-2 sentences.
- Base your reasoning on the question and the example answers only.`

type explainData struct {
	Question   string
	Phrase     string
	Count      int
	Pool       int
	Confidence int
	Examples   string
}

var explainTemplate = template.Must(template.New("explain").Parse(`Question: {{.Question}}
Mistake pattern: "{{.Phrase}}"
Found in {{.Count}} of {{.Pool}} wrong answers (confidence {{.Confidence}}%)
Example answers containing it: {{.Examples}}
`))

const feedbackSystemPrompt = `You write feedback that an instructor shares with their class after an assessment. Be professional, specific and supportive. Never single out individual students.`

type feedbackData struct {
	Title    string
	Subject  string
	ClassAvg int
	Students int
	Insights string
}

var feedbackTemplate = template.Must(template.New("feedback").Parse(`Assignment: {{.Title}}
{{with .Subject}}Subject: {{.}}
{{end}}Class average: {{.ClassAvg}}%
Students assessed: {{.Students}}

Key insights:
{{.Insights}}

Write a class summary (overall performance and general themes) and a short list of actionable advice (what the class should focus on next).
`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
