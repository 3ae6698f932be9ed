package session

import (
	"fmt"
	"time"
)

// Status is the phase of a lesson attempt.
type Status int

const (
	StatusActive        Status = iota // Waiting for an answer to the current exercise
	StatusShowingResult               // Feedback for the last answer is on screen
	StatusCompleted                   // Every exercise has been answered
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusShowingResult:
		return "showing_result"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "active":
		*s = StatusActive
	case "showing_result":
		*s = StatusShowingResult
	case "completed":
		*s = StatusCompleted
	default:
		return fmt.Errorf("unknown session status %q", b)
	}
	return nil
}

// XPPerCorrectAnswer is awarded at submit time for every correct answer,
// on top of the lesson reward paid at completion.
const XPPerCorrectAnswer = 5

// Config holds session settings.
type Config struct {
	// FeedbackDelay is how long hosts keep feedback on screen before
	// calling Advance. The engine itself does not wait.
	FeedbackDelay time.Duration

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the standard session settings.
func DefaultConfig() Config {
	return Config{
		FeedbackDelay: 1500 * time.Millisecond,
		Now:           time.Now,
	}
}

// Result records one graded submission.
type Result struct {
	ExerciseID    string `json:"exerciseId"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

// Feedback is returned by Submit.
type Feedback struct {
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
	CorrectAnswer string `json:"correctAnswer"`
	// XPAwarded is the per-answer reward, XPPerCorrectAnswer or zero.
	XPAwarded int `json:"xpAwarded"`
}

// Completion is the outcome of a finished lesson attempt.
type Completion struct {
	LessonID     string        `json:"lessonId"`
	XPEarned     int           `json:"xpEarned"`
	CorrectCount int           `json:"correctCount"`
	Total        int           `json:"total"`
	Perfect      bool          `json:"perfect"`
	Duration     time.Duration `json:"duration"`
}

// StateError is returned when an operation is invoked in a status that
// does not allow it.
type StateError struct {
	Op     string
	Status Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("session: %s not allowed while %s", e.Op, e.Status)
}
