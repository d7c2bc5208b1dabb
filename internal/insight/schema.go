package insight

import "github.com/abhisek/answerlens/internal/llm"

// ExplanationSchema defines the JSON schema for mistake explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "mistake-explanation",
	Description: "Why students repeat a wrong phrase, and how to address it in class",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"gap": map[string]any{
				"type":        "string",
				"description": "The conceptual gap behind the mistake, 2-3 sentences",
			},
			"suggestion": map[string]any{
				"type":        "string",
				"description": "One specific teaching suggestion, 1-2 sentences",
			},
		},
		"required":             []any{"gap", "suggestion"},
		"additionalProperties": false,
	},
}

// ClassFeedbackSchema defines the JSON schema for enhanced class feedback.
var ClassFeedbackSchema = &llm.Schema{
	Name:        "class-feedback",
	Description: "Professional, encouraging feedback an instructor can share with the class",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "High-level overview of performance and general themes",
			},
			"advice": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "What the class should focus on next",
			},
		},
		"required":             []any{"summary", "advice"},
		"additionalProperties": false,
	},
}
