package content

import (
	"os"
	"time"
)

// Config holds lesson generation settings.
type Config struct {
	// SourceLanguage is the learner's language; TargetLanguage is the one
	// being learned.
	SourceLanguage string
	TargetLanguage string

	MaxTokens   int
	Temperature float64

	// Timeout bounds one collaborator call. Zero means the caller's
	// context alone decides.
	Timeout time.Duration

	// MaxExercises caps the exercise count of one lesson.
	MaxExercises int
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		SourceLanguage: "English",
		TargetLanguage: "Spanish",
		MaxTokens:      4096,
		Temperature:    0.7,
		Timeout:        60 * time.Second,
		MaxExercises:   20,
	}
}

// ConfigFromEnv applies LINGUA_SOURCE_LANG and LINGUA_TARGET_LANG over the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LINGUA_SOURCE_LANG"); v != "" {
		cfg.SourceLanguage = v
	}
	if v := os.Getenv("LINGUA_TARGET_LANG"); v != "" {
		cfg.TargetLanguage = v
	}
	return cfg
}
