// Package session runs one lesson attempt as an explicit state machine:
//
//	Active(i) -> ShowingResult(i) -> Active(i+1) | Completed
//
// It is independent of any rendering layer. Hosts drive it with Submit,
// Advance, and Complete.
package session

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/grader"
	"github.com/abhisek/lingua/internal/lesson"
)

// Submission is the raw input for one exercise. Hosts fill whichever
// fields their widgets produce.
type Submission struct {
	Choice   string            `json:"choice,omitempty"`
	FreeText string            `json:"freeText,omitempty"`
	Tokens   []string          `json:"tokens,omitempty"`
	Pairs    map[string]string `json:"pairs,omitempty"`
	Skipped  bool              `json:"skipped,omitempty"`
}

// answer picks the graded value. Free-text exercise types prefer the typed
// buffer over a selected choice.
func (s Submission) answer(ex lesson.Exercise) grader.Answer {
	text := strings.TrimSpace(s.FreeText)
	switch {
	case s.Skipped:
		return grader.Answer{}
	case len(s.Pairs) > 0:
		return grader.Pairs(s.Pairs)
	case len(s.Tokens) > 0:
		return grader.Tokens(s.Tokens)
	case ex.Type.FreeText() && text != "":
		return grader.Text(text)
	case s.Choice != "":
		return grader.Text(s.Choice)
	default:
		return grader.Text(text)
	}
}

// Session is one attempt at a generated lesson. It is not safe for
// concurrent use.
type Session struct {
	ID     string
	Lesson lesson.GeneratedLesson

	cfg       Config
	index     int
	results   []Result
	startedAt time.Time
	status    Status
	input     Submission
}

// Start begins an attempt at gl. A lesson without exercises starts
// Completed.
func Start(gl lesson.GeneratedLesson, cfg Config) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		ID:        uuid.NewString(),
		Lesson:    gl,
		cfg:       cfg,
		results:   make([]Result, 0, len(gl.Exercises)),
		startedAt: cfg.Now(),
		status:    StatusActive,
	}
	if len(gl.Exercises) == 0 {
		s.status = StatusCompleted
	}
	return s
}

func (s *Session) Status() Status       { return s.status }
func (s *Session) Index() int           { return s.index }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) Total() int           { return len(s.Lesson.Exercises) }

// Results returns a copy of the graded submissions so far.
func (s *Session) Results() []Result {
	return slices.Clone(s.results)
}

// CorrectCount returns the number of correct results so far.
func (s *Session) CorrectCount() int {
	return lo.CountBy(s.results, func(r Result) bool { return r.IsCorrect })
}

// Current returns the exercise at the cursor. It is false once the
// attempt is Completed.
func (s *Session) Current() (lesson.Exercise, bool) {
	if s.status == StatusCompleted || s.index >= len(s.Lesson.Exercises) {
		return lesson.Exercise{}, false
	}
	return s.Lesson.Exercises[s.index], true
}

// LastResult returns the most recent result, if any.
func (s *Session) LastResult() (Result, bool) {
	if len(s.results) == 0 {
		return Result{}, false
	}
	return s.results[len(s.results)-1], true
}

// SetInput replaces the in-progress input for the current exercise.
func (s *Session) SetInput(sub Submission) { s.input = sub }

// Input returns the in-progress input. Advance clears it.
func (s *Session) Input() Submission { return s.input }

// SubmitInput submits the in-progress input.
func (s *Session) SubmitInput() (Feedback, error) { return s.Submit(s.input) }

// Submit grades sub against the current exercise and moves to
// ShowingResult. It is only allowed while Active.
func (s *Session) Submit(sub Submission) (Feedback, error) {
	if s.status != StatusActive {
		return Feedback{}, &StateError{Op: "submit", Status: s.status}
	}
	ex, _ := s.Current()

	answer := sub.answer(ex)
	correct := grader.Grade(ex, answer).Correct

	s.results = append(s.results, Result{
		ExerciseID:    ex.ID,
		Question:      ex.Question,
		UserAnswer:    answer.String(),
		CorrectAnswer: ex.DisplayAnswer(),
		IsCorrect:     correct,
		Explanation:   ex.Explanation,
	})
	s.status = StatusShowingResult

	fb := Feedback{IsCorrect: correct, Explanation: ex.Explanation, CorrectAnswer: ex.DisplayAnswer()}
	if correct {
		fb.XPAwarded = XPPerCorrectAnswer
	}
	return fb, nil
}

// Skip records an empty, incorrect answer. The caller decides whether
// skipping is allowed.
func (s *Session) Skip() (Feedback, error) {
	return s.Submit(Submission{Skipped: true})
}

// Advance leaves ShowingResult: to the next exercise, or to Completed
// after the last one.
func (s *Session) Advance() (Status, error) {
	if s.status != StatusShowingResult {
		return s.status, &StateError{Op: "advance", Status: s.status}
	}
	s.input = Submission{}
	if s.index >= len(s.Lesson.Exercises)-1 {
		s.status = StatusCompleted
		return s.status, nil
	}
	s.index++
	s.status = StatusActive
	return s.status, nil
}

// Complete computes the lesson reward. It is only allowed once Completed.
// The per-answer XP already paid at submit time is not included.
func (s *Session) Complete() (Completion, error) {
	if s.status != StatusCompleted {
		return Completion{}, &StateError{Op: "complete", Status: s.status}
	}
	total := len(s.Lesson.Exercises)
	correct := s.CorrectCount()
	perfect := total > 0 && correct == total

	xp := s.Lesson.XPReward
	if perfect {
		xp += s.Lesson.PerfectBonus
	}
	return Completion{
		LessonID:     s.Lesson.ID,
		XPEarned:     xp,
		CorrectCount: correct,
		Total:        total,
		Perfect:      perfect,
		Duration:     s.cfg.Now().Sub(s.startedAt),
	}, nil
}
