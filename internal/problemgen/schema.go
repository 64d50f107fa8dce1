package problemgen

import "github.com/pawsitive/mathcat/internal/llm"

// ProblemSchema defines the JSON schema for LLM problem generation responses.
var ProblemSchema = &llm.Schema{
	Name:        "math-problem",
	Description: "A single 7th grade math practice problem with answer, hint and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The problem shown to the student",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The canonical answer in simplest form",
			},
			"acceptable_answers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Other textual forms of the correct answer, e.g. with units or as a decimal",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short nudge toward the method, without giving the answer",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Worked solution, one or two sentences",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
		},
		"required":             []any{"question", "correct_answer", "acceptable_answers", "hint", "explanation", "difficulty"},
		"additionalProperties": false,
	},
}
