// Package lesson holds the generated-content data model shared by the
// generator, grader, session engine, and progress store.
package lesson

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/catalog"
)

// VariantSeparator separates acceptable answers in Exercise.CorrectAnswer.
const VariantSeparator = "|"

// Pair is one left/right association of a match_pairs exercise.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Exercise is a single generated exercise.
type Exercise struct {
	ID       string               `json:"id"`
	Type     catalog.ExerciseType `json:"type"`
	Question string               `json:"question"`

	// Options has exactly 4 entries when present.
	Options []string `json:"options,omitempty"`

	// CorrectAnswer holds one or more accepted variants joined by "|",
	// e.g. "hola|holaa". Empty for match_pairs.
	CorrectAnswer string `json:"correctAnswer,omitempty"`

	// AnswerTokens is the canonical token order when the answer was
	// authored as a list rather than a sentence.
	AnswerTokens []string `json:"answerTokens,omitempty"`

	// Pairs is the canonical mapping for match_pairs.
	Pairs []Pair `json:"pairs,omitempty"`

	Explanation string   `json:"explanation,omitempty"`
	NativeText  string   `json:"nativeText,omitempty"`
	TargetText  string   `json:"targetText,omitempty"`
	Words       []string `json:"words,omitempty"`
}

// Variants returns the trimmed, non-empty accepted answers.
func (e Exercise) Variants() []string {
	var out []string
	for _, v := range strings.Split(e.CorrectAnswer, VariantSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// PairMap returns the canonical left→right mapping. Later duplicates of a
// left side win.
func (e Exercise) PairMap() map[string]string {
	if len(e.Pairs) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Pairs))
	for _, p := range e.Pairs {
		m[p.Left] = p.Right
	}
	return m
}

// DisplayAnswer renders the canonical answer for feedback.
func (e Exercise) DisplayAnswer() string {
	switch {
	case len(e.Pairs) > 0:
		parts := make([]string, len(e.Pairs))
		for i, p := range e.Pairs {
			parts[i] = fmt.Sprintf("%s = %s", p.Left, p.Right)
		}
		return strings.Join(parts, ", ")
	case len(e.AnswerTokens) > 0:
		return strings.Join(e.AnswerTokens, " ")
	}
	if vs := e.Variants(); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GeneratedLesson is the personalized exercise set produced for one
// template. It is cached by ID and never mutated after creation.
type GeneratedLesson struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	EffectiveDifficulty  catalog.Difficulty `json:"effectiveDifficulty"`
	XPReward             int                `json:"xpReward"`
	PerfectBonus         int                `json:"perfectBonus"`
	Exercises            []Exercise         `json:"exercises"`
	EstimatedTimeMinutes int                `json:"estimatedTimeMinutes"`
	Unit                 int                `json:"unit"`
	Order                int                `json:"order"`

	GeneratedAt time.Time `json:"generatedAt"`
	Model       string    `json:"model,omitempty"`
}
