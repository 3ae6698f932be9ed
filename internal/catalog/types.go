package catalog

import "fmt"

// Category groups lessons by the language skill they practice.
type Category string

const (
	CategoryVocabulary    Category = "vocabulary"
	CategoryGrammar       Category = "grammar"
	CategoryConversation  Category = "conversation"
	CategoryPronunciation Category = "pronunciation"
	CategoryListening     Category = "listening"
	CategoryWriting       Category = "writing"
	CategoryCulture       Category = "culture"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryVocabulary,
		CategoryGrammar,
		CategoryConversation,
		CategoryPronunciation,
		CategoryListening,
		CategoryWriting,
		CategoryCulture,
	}
}

// Difficulty is an ordered difficulty level. The zero value is Beginner.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
	Expert
	Professional
)

var difficultyNames = [...]string{"beginner", "intermediate", "advanced", "expert", "professional"}

// DifficultyOrder returns every level from easiest to hardest.
func DifficultyOrder() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced, Expert, Professional}
}

func (d Difficulty) String() string {
	if d < Beginner || d > Professional {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty maps a level name back to its Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), nil
		}
	}
	return Beginner, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Beginner || d > Professional {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ExerciseType is the interaction style of a single exercise.
type ExerciseType string

const (
	TypeMultipleChoice ExerciseType = "multiple_choice"
	TypeFillBlank      ExerciseType = "fill_blank"
	TypeTranslate      ExerciseType = "translate"
	TypeListening      ExerciseType = "listening"
	TypeSpeaking       ExerciseType = "speaking"
	TypeWordOrder      ExerciseType = "word_order"
	TypeTyping         ExerciseType = "typing"
	TypeSelectMissing  ExerciseType = "select_missing"
	TypeMatchPairs     ExerciseType = "match_pairs"
)

// ExerciseTypes returns the closed set of exercise types.
func ExerciseTypes() []ExerciseType {
	return []ExerciseType{
		TypeMultipleChoice,
		TypeFillBlank,
		TypeTranslate,
		TypeListening,
		TypeSpeaking,
		TypeWordOrder,
		TypeTyping,
		TypeSelectMissing,
		TypeMatchPairs,
	}
}

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	for _, known := range ExerciseTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// FreeText reports whether answers of this type are typed by the learner
// rather than picked from options.
func (t ExerciseType) FreeText() bool {
	return t == TypeTranslate || t == TypeTyping
}

// ExerciseTemplate describes one exercise slot the generator must fill.
type ExerciseTemplate struct {
	ID             string
	Type           ExerciseType
	Concept        string
	BaseDifficulty int // 1-5
	Weight         int
}

// LessonTemplate is the static authored definition of a lesson.
type LessonTemplate struct {
	ID                   string
	Title                string
	Description          string
	Category             Category
	BaseDifficulty       Difficulty
	Unit                 int
	Order                int
	XPReward             int
	PerfectBonus         int
	EstimatedTimeMinutes int

	// Prerequisites is declared metadata only. Lock state is positional;
	// see the unlock package.
	Prerequisites []string

	ExerciseTemplates []ExerciseTemplate
}
