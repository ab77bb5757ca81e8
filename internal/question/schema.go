package question

import "prepdeck/internal/llm"

// BatchSchema defines the JSON schema for LLM question generation responses.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of interview practice questions for one domain",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question asked of the candidate",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Free-form category label, e.g. behavioral, system_design, coding",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"expected_points": map[string]any{
							"type":        "string",
							"description": "Outline of what a strong answer covers",
						},
						"skill_impact": map[string]any{
							"type":        "object",
							"description": "Skill axis name to integer weight 1-10",
							"additionalProperties": map[string]any{
								"type":    "integer",
								"minimum": 1,
								"maximum": 10,
							},
						},
					},
					"required":             []any{"prompt", "category", "difficulty", "expected_points"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
