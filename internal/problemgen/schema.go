package problemgen

import "github.com/abhisek/eliteprep/internal/llm"

// questionDefinition is the shape of one multiple-choice question.
var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The question prompt in plain text, without $ or * characters",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    2,
			"description": "Four distinct answer options in plain text",
		},
		"answer": map[string]any{
			"type":        "string",
			"description": "The full text of the correct option, copied exactly from options",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "A concise worked solution in plain text",
		},
	},
	"required":             []any{"question", "options", "answer", "explanation"},
	"additionalProperties": false,
}

// QuestionSchema is a single multiple-choice question.
var QuestionSchema = &llm.Schema{
	Name:        "exam-question",
	Description: "A single A-Level multiple-choice question with answer and explanation",
	Definition:  questionDefinition,
}

// QuestionBatchSchema wraps one or more questions in an object so every
// provider's structured mode accepts it.
var QuestionBatchSchema = &llm.Schema{
	Name:        "exam-question-batch",
	Description: "A batch of A-Level multiple-choice questions for a timed exam",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"items":    questionDefinition,
				"minItems": 1,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var paperPartDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"label": map[string]any{"type": "string", "description": "Sub-part label such as (a)"},
		"text":  map[string]any{"type": "string"},
		"marks": map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"label", "text", "marks"},
	"additionalProperties": false,
}

// MockPaperSchema is a full written paper layout. Questions without
// sub-parts carry an empty parts array.
var MockPaperSchema = &llm.Schema{
	Name:        "mock-paper",
	Description: "A mock examination paper laid out as numbered questions with marks",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"number": map[string]any{"type": "integer", "minimum": 1},
						"text":   map[string]any{"type": "string"},
						"marks":  map[string]any{"type": "integer", "minimum": 0},
						"parts": map[string]any{
							"type":  "array",
							"items": paperPartDefinition,
						},
					},
					"required":             []any{"number", "text", "marks", "parts"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
