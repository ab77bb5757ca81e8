package assess

import "prepdeck/internal/llm"

// Schema defines the JSON schema for answer assessments.
var Schema = &llm.Schema{
	Name:        "answer-assessment",
	Description: "Graded assessment of one interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall answer quality",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short constructive paragraph addressed to the candidate",
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improvements": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"skill_updates": map[string]any{
				"type":        "object",
				"description": "Skill axis name to delta in 0-10",
				"additionalProperties": map[string]any{
					"type":    "number",
					"minimum": 0,
					"maximum": 10,
				},
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}
