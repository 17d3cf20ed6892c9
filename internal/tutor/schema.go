package tutor

import "github.com/abhisek/eliteprep/internal/llm"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// ChapterBriefSchema defines the structured revision brief for a chapter.
var ChapterBriefSchema = &llm.Schema{
	Name:        "chapter-brief",
	Description: "A revision brief for one A-Level chapter",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"synopsis": map[string]any{
				"type":        "string",
				"description": "2-4 sentence overview of the chapter",
			},
			"knowledge_points": stringList,
			"examiner_tips":    stringList,
			"formula_vault":    stringList,
		},
		"required":             []any{"synopsis", "knowledge_points", "examiner_tips", "formula_vault"},
		"additionalProperties": false,
	},
}
