// Package grader evaluates a submitted answer against an exercise's
// canonical answer. Grading is pure and never fails: malformed or missing
// input is simply incorrect.
package grader

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"

	"github.com/abhisek/lingua/internal/lesson"
)

type shape int

const (
	shapeNone shape = iota
	shapeText
	shapeTokens
	shapePairs
)

// Answer is a submitted answer in one of three shapes: a single text
// value, an ordered token list, or a left→right mapping. The zero value
// is an empty answer and always grades incorrect.
type Answer struct {
	shape  shape
	text   string
	tokens []string
	pairs  map[string]string
}

// Text builds a single-value answer.
func Text(s string) Answer { return Answer{shape: shapeText, text: s} }

// Tokens builds an ordered token-list answer.
func Tokens(t []string) Answer { return Answer{shape: shapeTokens, tokens: t} }

// Pairs builds a mapping answer for match_pairs exercises.
func Pairs(m map[string]string) Answer { return Answer{shape: shapePairs, pairs: m} }

// IsEmpty reports whether the answer carries no content.
func (a Answer) IsEmpty() bool {
	switch a.shape {
	case shapeText:
		return strings.TrimSpace(a.text) == ""
	case shapeTokens:
		return len(a.tokens) == 0
	case shapePairs:
		return len(a.pairs) == 0
	}
	return true
}

// String renders the answer for result records.
func (a Answer) String() string {
	switch a.shape {
	case shapeText:
		return strings.TrimSpace(a.text)
	case shapeTokens:
		return strings.Join(a.tokens, " ")
	case shapePairs:
		return lesson.Exercise{Pairs: sortedPairs(a.pairs)}.DisplayAnswer()
	}
	return ""
}

// Result is the outcome of grading one answer.
type Result struct {
	Correct bool
}

// Grade dispatches on the shape of the canonical answer rather than the
// declared exercise type, so every type routes through the same rules.
func Grade(ex lesson.Exercise, a Answer) Result {
	switch {
	case len(ex.Pairs) > 0:
		return Result{Correct: a.shape == shapePairs && pairsEqual(ex.PairMap(), a.pairs)}
	case a.shape == shapeText:
		return Result{Correct: MatchText(a.text, ex.CorrectAnswer)}
	case a.shape == shapeTokens && len(ex.AnswerTokens) > 0:
		return Result{Correct: tokensEqual(ex.AnswerTokens, a.tokens)}
	case a.shape == shapeTokens:
		// No canonical tokens: the arranged sentence is graded as text.
		return Result{Correct: MatchText(strings.Join(a.tokens, " "), ex.CorrectAnswer)}
	}
	return Result{}
}

// MatchText reports whether submitted matches any "|"-separated variant of
// canonical by exact match, containment in either direction, or a small
// edit distance.
func MatchText(submitted, canonical string) bool {
	sub := normalize(submitted)
	if sub == "" {
		return false
	}
	for _, v := range strings.Split(canonical, lesson.VariantSeparator) {
		v = normalize(v)
		if v == "" {
			continue
		}
		if sub == v || strings.Contains(sub, v) || strings.Contains(v, sub) {
			return true
		}
		if levenshtein.Distance(sub, v, nil) <= Tolerance(v) {
			return true
		}
	}
	return false
}

// Tolerance is the edit distance accepted for a variant: one fifth of its
// length, never less than one.
func Tolerance(variant string) int {
	return max(1, utf8.RuneCountInString(variant)/5)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func pairsEqual(canonical, submitted map[string]string) bool {
	if len(canonical) != len(submitted) {
		return false
	}
	norm := make(map[string]string, len(submitted))
	for k, v := range submitted {
		norm[normalize(k)] = normalize(v)
	}
	for k, v := range canonical {
		got, ok := norm[normalize(k)]
		if !ok || got != normalize(v) {
			return false
		}
	}
	return len(norm) == len(canonical)
}

func tokensEqual(canonical, submitted []string) bool {
	if len(canonical) != len(submitted) {
		return false
	}
	for i := range canonical {
		if normalize(canonical[i]) != normalize(submitted[i]) {
			return false
		}
	}
	return true
}

func sortedPairs(m map[string]string) []lesson.Pair {
	out := make([]lesson.Pair, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, lesson.Pair{Left: k, Right: m[k]})
	}
	return out
}
