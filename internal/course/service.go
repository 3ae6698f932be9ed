// Package course is the host-facing API of the engine. It wires the
// catalog, unlock rules, content generator, session engine, progress
// store, and rewards ledger together for a single learner.
package course

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/metrics"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/rewards"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/unlock"
)

var (
	// ErrNoSession is returned by session operations when no lesson has
	// been started.
	ErrNoSession = errors.New("no lesson in progress")
	// ErrLessonLocked is returned by StartLesson for a locked lesson.
	ErrLessonLocked = errors.New("lesson is locked")
	// ErrSkipNotAllowed is returned by Skip unless Config.AllowSkip is set.
	ErrSkipNotAllowed = errors.New("skipping is not allowed")
)

// Lesson is a catalog entry annotated with lock, completion, and
// effective difficulty.
type Lesson = unlock.LessonStatus

// Generator produces and caches generated lessons.
type Generator interface {
	Generate(ctx context.Context, tmpl catalog.LessonTemplate, completedCount int) (lesson.GeneratedLesson, error)
	Invalidate(ctx context.Context, lessonID string) bool
	ClearCache(ctx context.Context)
}

// Config holds course settings.
type Config struct {
	// Entitled unlocks every lesson regardless of progress.
	Entitled bool
	// AllowSkip lets hosts skip exercises.
	AllowSkip bool
	Session   session.Config
}

// DefaultConfig returns the standard course settings.
func DefaultConfig() Config {
	return Config{AllowSkip: true, Session: session.DefaultConfig()}
}

// Service runs one learner's course. It holds at most one active session.
type Service struct {
	lessons  []catalog.LessonTemplate
	progress *progress.Store
	gen      Generator
	ledger   *rewards.Ledger
	cfg      Config
	log      *logger.Logger

	mu     sync.Mutex
	active *session.Session
}

// New creates a Service over the full catalog.
func New(p *progress.Store, gen Generator, ledger *rewards.Ledger, cfg Config, log *logger.Logger) *Service {
	return &Service{
		lessons:  catalog.AllLessons(),
		progress: p,
		gen:      gen,
		ledger:   ledger,
		cfg:      cfg,
		log:      logger.OrNop(log),
	}
}

// ListLessons returns every lesson in catalog order with lock state and
// effective difficulty computed from current progress.
func (s *Service) ListLessons(entitled bool) []Lesson {
	return unlock.Resolve(s.lessons, s.progress, s.progress.CompletedCount(), entitled)
}

// Entitled reports the configured entitlement.
func (s *Service) Entitled() bool { return s.cfg.Entitled }

// PrepareLesson generates (or loads from cache) an unlocked lesson without
// starting a session.
func (s *Service) PrepareLesson(ctx context.Context, lessonID string) (lesson.GeneratedLesson, error) {
	i := slices.IndexFunc(s.lessons, func(l catalog.LessonTemplate) bool { return l.ID == lessonID })
	if i < 0 {
		return lesson.GeneratedLesson{}, fmt.Errorf("%w: %q", catalog.ErrLessonNotFound, lessonID)
	}
	if unlock.IsLocked(s.lessons, i, s.progress, s.cfg.Entitled) {
		return lesson.GeneratedLesson{}, fmt.Errorf("%w: %q", ErrLessonLocked, lessonID)
	}
	return s.gen.Generate(ctx, s.lessons[i], s.progress.CompletedCount())
}

// StartLesson generates (or loads from cache) the lesson and starts a new
// session on it, replacing any session in progress.
func (s *Service) StartLesson(ctx context.Context, lessonID string) (*lesson.GeneratedLesson, error) {
	gl, err := s.PrepareLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		metrics.SessionEnded()
	}
	s.active = session.Start(gl, s.cfg.Session)
	metrics.SessionStarted()
	s.log.Info("lesson started", "lesson", gl.ID, "session", s.active.ID, "exercises", len(gl.Exercises))
	return &gl, nil
}

// SubmitAnswer grades the answer for the current exercise. A correct
// answer pays the per-answer XP immediately.
func (s *Service) SubmitAnswer(ctx context.Context, sub session.Submission) (session.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return session.Feedback{}, ErrNoSession
	}
	return s.submit(ctx, sub)
}

// Skip records an empty answer for the current exercise.
func (s *Service) Skip(ctx context.Context) (session.Feedback, error) {
	if !s.cfg.AllowSkip {
		return session.Feedback{}, ErrSkipNotAllowed
	}
	return s.SubmitAnswer(ctx, session.Submission{Skipped: true})
}

func (s *Service) submit(ctx context.Context, sub session.Submission) (session.Feedback, error) {
	ex, _ := s.active.Current()
	fb, err := s.active.Submit(sub)
	if err != nil {
		return fb, err
	}
	metrics.Graded(string(ex.Type), fb.IsCorrect)
	if fb.IsCorrect {
		s.ledger.AwardAnswer(ctx, s.active.ID, s.active.Lesson.ID, ex.ID)
	}
	return fb, nil
}

// Advance moves past the feedback for the last answer.
func (s *Service) Advance() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return State{}, ErrNoSession
	}
	if _, err := s.active.Advance(); err != nil {
		return stateOf(s.active), err
	}
	return stateOf(s.active), nil
}

// State returns a snapshot of the session in progress.
func (s *Service) State() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return State{}, ErrNoSession
	}
	return stateOf(s.active), nil
}

// CompleteLesson finalizes a Completed session: the lesson is marked
// complete, the lesson reward is paid, and the session is discarded.
func (s *Service) CompleteLesson(ctx context.Context) (session.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return session.Completion{}, ErrNoSession
	}
	c, err := s.active.Complete()
	if err != nil {
		return c, err
	}

	s.progress.MarkCompleted(ctx, c.LessonID)
	s.ledger.AwardLesson(ctx, s.active.ID, c)
	metrics.LessonCompleted(c.Perfect)
	metrics.SessionEnded()
	s.log.Info("lesson completed",
		"lesson", c.LessonID,
		"correct", c.CorrectCount,
		"total", c.Total,
		"xp", c.XPEarned,
		"perfect", c.Perfect,
	)
	s.active = nil
	return c, nil
}

// QuitLesson discards the session in progress without recording it.
func (s *Service) QuitLesson() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ErrNoSession
	}
	s.active = nil
	metrics.SessionEnded()
	return nil
}

// Totals returns the learner's aggregate rewards.
func (s *Service) Totals(ctx context.Context) (rewards.Totals, error) {
	return s.ledger.Totals(ctx)
}

// CompletedIDs returns the completed lesson ids, sorted.
func (s *Service) CompletedIDs() []string {
	return s.progress.CompletedIDs()
}

// CachedLesson returns a generated lesson without generating one.
func (s *Service) CachedLesson(lessonID string) (lesson.GeneratedLesson, bool) {
	return s.progress.Cached(lessonID)
}

// Regenerate drops a cached lesson so the next start generates it again.
func (s *Service) Regenerate(ctx context.Context, lessonID string) bool {
	return s.gen.Invalidate(ctx, lessonID)
}

// Reset clears progress, the lesson cache, and rewards.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	if s.active != nil {
		s.active = nil
		metrics.SessionEnded()
	}
	s.mu.Unlock()

	s.gen.ClearCache(ctx)
	s.progress.Reset(ctx)
	return s.ledger.Reset(ctx)
}
