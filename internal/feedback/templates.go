package feedback

import (
	"bytes"
	"strings"
	"text/template"
)

var classSummaryTemplate = template.Must(template.New("class-summary").Parse(`Class Performance Summary: {{.Title}}

Overall class average: {{.ClassAvg}}%
Total students assessed: {{.TotalStudents}}

Performance Distribution:
• High performers (≥80%): {{.High}} student(s)
• Average performers (50–79%): {{.Average}} student(s)
• Struggling students (<50%): {{.Struggling}} student(s)
{{- if .Highlights}}
{{range .Highlights}}
{{.}}
{{- end}}
{{- end}}

{{if gt .Struggling 0 -}}
⚠️ {{.Struggling}} student(s) need immediate intervention. Consider scheduling office hours or providing supplemental materials.
{{- else -}}
✅ The class overall demonstrated a solid understanding of the material.
{{- end}}

[Edit this summary before sharing with students or department heads]`))

var questionTemplate = template.Must(template.New("question").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`Question: "{{.Question}}"
Average Score: {{.Avg}}% | Difficulty: {{with .Difficulty}}{{.}}{{else}}n/a{{end}} | Responses: {{.Count}}

{{if ge .Avg 80 -}}
✅ Students performed well on this question. Most demonstrated a clear understanding of the core concept.
{{- else if ge .Avg 60 -}}
⚡ Moderate performance. While many students grasped the basics, there are gaps that need addressing.
{{- else -}}
❌ This question had low performance. This concept should be revisited in the next class session.
{{- end}}
{{if .Mistakes}}
Common Mistakes Detected:
{{- range $i, $m := .Mistakes}}
  {{inc $i}}. Pattern: "{{$m.Phrase}}" appeared in {{$m.Count}} responses (Confidence: {{$m.Confidence}}%)
{{- if $m.Examples}}
     Example: "{{index $m.Examples 0}}"
{{- end}}
{{- end}}

Improvement Suggestion: Focus revision on the specific misconceptions listed above. Provide worked examples that directly contrast the correct concept with these common incorrect statements.
{{- else}}
No significant repeated mistakes detected for this question.
{{- end}}`))

var studentTemplate = template.Must(template.New("student").Parse(`Feedback for Student {{.StudentID}}
Overall Average: {{.Avg}}% ({{.Band}})

{{if ge .Avg 80 -}}
Excellent work! You demonstrated strong understanding across most questions. Keep applying this analytical approach in upcoming assessments.
{{- else if ge .Avg 50 -}}
Good effort. You have a foundational understanding but there are areas for improvement. Review the class notes for concepts you found challenging.
{{- else -}}
This was a challenging assessment for you. Don't be discouraged, targeted revision will help. Please consider attending office hours to discuss the material.
{{- end}}
{{- if .WeakQuestions}}

Areas to focus on: {{.WeakQuestions}}
{{- end}}`))

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
