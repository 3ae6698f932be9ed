package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/difficulty"
)

func systemPrompt(cfg Config) string {
	return fmt.Sprintf(`You are an expert %s teacher writing exercises for a %s-speaking learner. You reply with a single JSON object and nothing else.`,
		cfg.TargetLanguage, cfg.SourceLanguage)
}

func buildUserMessage(tmpl catalog.LessonTemplate, level difficulty.Level, target int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language pair: %s -> %s\n", cfg.SourceLanguage, cfg.TargetLanguage)
	fmt.Fprintf(&b, "Lesson: %s\n", tmpl.Title)
	fmt.Fprintf(&b, "Description: %s\n", tmpl.Description)
	fmt.Fprintf(&b, "Category: %s\n", tmpl.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", level.Effective)
	fmt.Fprintf(&b, "Number of exercises: %d\n", target)

	b.WriteString("\nExercise plan (type, concept, base difficulty 1-5):\n")
	for i, et := range tmpl.ExerciseTemplates {
		fmt.Fprintf(&b, "%d. %s: %s (difficulty %d)\n", i+1, et.Type, et.Concept, et.BaseDifficulty)
	}
	if extra := target - len(tmpl.ExerciseTemplates); extra > 0 {
		fmt.Fprintf(&b, "Add %d more exercises of the same types that deepen these concepts.\n", extra)
	}

	b.WriteString(`
Output format:
Return one JSON object {"exercises": [...]}. Each exercise has:
- "id": a short string, unique within this lesson
- "type": one of multiple_choice, fill_blank, translate, listening, speaking, word_order, typing, select_missing, match_pairs
- "question": the prompt shown to the learner
- "explanation": one or two sentences on why the answer is right
Type-specific fields:
- multiple_choice, fill_blank, select_missing, listening: "options" (exactly 4 strings) and "correctAnswer" (one of the options)
- translate, typing, speaking: "nativeText", "targetText", and "correctAnswer"
- word_order: "words" (the shuffled tokens) and "correctAnswer" (the sentence in order)
- match_pairs: "pairs", a list of {"left": ..., "right": ...}
When several answers are acceptable, join them with "|" in "correctAnswer", e.g. "hola|buenas".

Instructions:
1. Follow the exercise plan in order, at the stated difficulty.
2. Use only vocabulary a learner at this level would know.
3. Do not wrap the JSON in markdown or add any commentary.`)

	return b.String()
}
