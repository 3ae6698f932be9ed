package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/segmentio/ksuid"
	"github.com/tidwall/gjson"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
)

var (
	errNoObject    = errors.New("no JSON object in response")
	errBadObject   = errors.New("invalid JSON between outermost braces")
	errNoExercises = errors.New("no usable exercises in response")
)

const fence = "```"

// stripFences removes a leading ``` or ```json marker and a trailing ```
// marker. Text on the same line as a marker is kept.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(s, fence); ok {
		lang := strings.IndexFunc(rest, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
		})
		if lang < 0 {
			lang = len(rest)
		}
		s = rest[lang:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), fence)
	return strings.TrimSpace(s)
}

// extractObject returns the text from the first '{' to the last '}'.
// A payload that is itself a JSON string is unwrapped first.
func extractObject(text string) (string, error) {
	s := strings.TrimSpace(stripFences(text))
	if strings.HasPrefix(s, `"`) && gjson.Valid(s) {
		s = gjson.Parse(s).String()
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", errNoObject
	}
	obj := s[start : end+1]
	if !gjson.Valid(obj) {
		return "", errBadObject
	}
	return obj, nil
}

// parseExercises turns raw collaborator text into at most limit exercises.
// Invalid items are dropped; missing or duplicate ids are replaced.
func parseExercises(text string, limit int, log *logger.Logger) ([]lesson.Exercise, error) {
	obj, err := extractObject(text)
	if err != nil {
		return nil, err
	}

	var envelope any
	if err := json.Unmarshal([]byte(obj), &envelope); err != nil {
		return nil, err
	}
	if err := llm.ValidateJSON(EnvelopeSchema, envelope); err != nil {
		return nil, err
	}

	var exercises []lesson.Exercise
	for i, item := range gjson.Get(obj, "exercises").Array() {
		if err := validateItem(item); err != nil {
			log.Debug("dropping generated exercise", "index", i, "error", err)
			continue
		}
		exercises = append(exercises, toExercise(item))
	}
	if len(exercises) == 0 {
		return nil, errNoExercises
	}

	repairIDs(exercises)
	if limit > 0 && len(exercises) > limit {
		exercises = exercises[:limit]
	}
	return exercises, nil
}

func validateItem(item gjson.Result) error {
	m, ok := item.Value().(map[string]any)
	if !ok {
		return fmt.Errorf("exercise is %s, not an object", item.Type)
	}
	// An empty options list means the model had none to give.
	if opts, ok := m["options"].([]any); ok && len(opts) == 0 {
		delete(m, "options")
	}
	return llm.ValidateJSON(ExerciseSchema, m)
}

func toExercise(item gjson.Result) lesson.Exercise {
	ex := lesson.Exercise{
		ID:          strings.TrimSpace(item.Get("id").String()),
		Type:        catalog.ExerciseType(item.Get("type").String()),
		Question:    strings.TrimSpace(item.Get("question").String()),
		Options:     stringsOf(item.Get("options")),
		Explanation: item.Get("explanation").String(),
		NativeText:  item.Get("nativeText").String(),
		TargetText:  item.Get("targetText").String(),
		Words:       stringsOf(item.Get("words")),
	}

	answer := item.Get("correctAnswer")
	if answer.IsArray() {
		variants := stringsOf(answer)
		if ex.Type == catalog.TypeWordOrder {
			ex.AnswerTokens = variants
			ex.CorrectAnswer = strings.Join(variants, " ")
		} else {
			ex.CorrectAnswer = strings.Join(variants, lesson.VariantSeparator)
		}
	} else {
		ex.CorrectAnswer = strings.TrimSpace(answer.String())
	}

	pairs := item.Get("pairs")
	switch {
	case pairs.IsArray():
		for _, p := range pairs.Array() {
			ex.Pairs = append(ex.Pairs, lesson.Pair{Left: p.Get("left").String(), Right: p.Get("right").String()})
		}
	case pairs.IsObject():
		pairs.ForEach(func(k, v gjson.Result) bool {
			ex.Pairs = append(ex.Pairs, lesson.Pair{Left: k.String(), Right: v.String()})
			return true
		})
	}
	return ex
}

func stringsOf(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	return lo.Map(r.Array(), func(v gjson.Result, _ int) string { return v.String() })
}

// repairIDs gives every exercise a non-empty id unique within the lesson.
func repairIDs(exercises []lesson.Exercise) {
	seen := make(map[string]bool, len(exercises))
	for i := range exercises {
		id := exercises[i].ID
		if id == "" || seen[id] {
			id = ksuid.New().String()
			exercises[i].ID = id
		}
		seen[id] = true
	}
}
