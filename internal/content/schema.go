package content

import (
	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/llm"
)

// EnvelopeSchema is the top-level shape of a generation response.
var EnvelopeSchema = &llm.Schema{
	Name:        "lesson-exercises",
	Description: "A generated lesson as a list of exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type":     "array",
				"minItems": 1,
			},
		},
		"required": []any{"exercises"},
	},
}

// ExerciseSchema checks one exercise. Items that fail it are dropped
// rather than failing the whole lesson.
var ExerciseSchema = &llm.Schema{
	Name:        "lesson-exercise",
	Description: "One generated exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string"},
			"type": map[string]any{
				"type": "string",
				"enum": lo.Map(catalog.ExerciseTypes(), func(t catalog.ExerciseType, _ int) any { return string(t) }),
			},
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswer": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string", "minLength": 1},
					map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
				},
			},
			"pairs": map[string]any{
				"anyOf": []any{
					map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"left":  map[string]any{"type": "string", "minLength": 1},
								"right": map[string]any{"type": "string", "minLength": 1},
							},
							"required": []any{"left", "right"},
						},
					},
					map[string]any{
						"type":                 "object",
						"minProperties":        1,
						"additionalProperties": map[string]any{"type": "string"},
					},
				},
			},
			"explanation": map[string]any{"type": "string"},
			"nativeText":  map[string]any{"type": "string"},
			"targetText":  map[string]any{"type": "string"},
			"words":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"type", "question"},
		"if": map[string]any{
			"properties": map[string]any{"type": map[string]any{"const": string(catalog.TypeMatchPairs)}},
		},
		"then": map[string]any{"required": []any{"pairs"}},
		"else": map[string]any{"required": []any{"correctAnswer"}},
	},
}
