// Package httpapi serves the course over JSON HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/course"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/rewards"
	"github.com/abhisek/lingua/internal/session"
)

// Course is the part of course.Service the handlers use.
type Course interface {
	ListLessons(entitled bool) []course.Lesson
	Entitled() bool
	StartLesson(ctx context.Context, lessonID string) (*lesson.GeneratedLesson, error)
	SubmitAnswer(ctx context.Context, sub session.Submission) (session.Feedback, error)
	Skip(ctx context.Context) (session.Feedback, error)
	Advance() (course.State, error)
	State() (course.State, error)
	CompleteLesson(ctx context.Context) (session.Completion, error)
	QuitLesson() error
	Totals(ctx context.Context) (rewards.Totals, error)
	CompletedIDs() []string
	Regenerate(ctx context.Context, lessonID string) bool
	Reset(ctx context.Context) error
}

// LessonView is a lesson list entry.
type LessonView struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Category             catalog.Category   `json:"category"`
	BaseDifficulty       catalog.Difficulty `json:"baseDifficulty"`
	EffectiveDifficulty  catalog.Difficulty `json:"effectiveDifficulty"`
	Unit                 int                `json:"unit"`
	Order                int                `json:"order"`
	XPReward             int                `json:"xpReward"`
	PerfectBonus         int                `json:"perfectBonus"`
	EstimatedTimeMinutes int                `json:"estimatedTimeMinutes"`
	Exercises            int                `json:"exercises"`
	IsLocked             bool               `json:"isLocked"`
	IsCompleted          bool               `json:"isCompleted"`
}

func lessonView(l course.Lesson, _ int) LessonView {
	return LessonView{
		ID:                   l.ID,
		Title:                l.Title,
		Description:          l.Description,
		Category:             l.Category,
		BaseDifficulty:       l.BaseDifficulty,
		EffectiveDifficulty:  l.EffectiveDifficulty,
		Unit:                 l.Unit,
		Order:                l.Order,
		XPReward:             l.XPReward,
		PerfectBonus:         l.PerfectBonus,
		EstimatedTimeMinutes: l.EstimatedTimeMinutes,
		Exercises:            len(l.ExerciseTemplates),
		IsLocked:             l.IsLocked,
		IsCompleted:          l.IsCompleted,
	}
}

// ProgressView is the learner's aggregate progress.
type ProgressView struct {
	XP               int      `json:"xp"`
	WordsLearned     int      `json:"wordsLearned"`
	LessonsCompleted int      `json:"lessonsCompleted"`
	CompletedIDs     []string `json:"completedIds"`
}

// startedLesson hides answers from a freshly started lesson.
type startedLesson struct {
	ID                   string             `json:"id"`
	Title                string             `json:"title"`
	EffectiveDifficulty  catalog.Difficulty `json:"effectiveDifficulty"`
	XPReward             int                `json:"xpReward"`
	PerfectBonus         int                `json:"perfectBonus"`
	EstimatedTimeMinutes int                `json:"estimatedTimeMinutes"`
	Exercises            int                `json:"exercises"`
	State                course.State       `json:"state"`
}

type CourseHandler struct {
	svc Course
}

func NewCourseHandler(svc Course) *CourseHandler {
	return &CourseHandler{svc: svc}
}

// GET /api/lessons
func (h *CourseHandler) ListLessons(c *gin.Context) {
	lessons := h.svc.ListLessons(h.svc.Entitled())
	c.JSON(http.StatusOK, gin.H{"lessons": lo.Map(lessons, lessonView)})
}

// POST /api/lessons/:id/start
func (h *CourseHandler) StartLesson(c *gin.Context) {
	gl, err := h.svc.StartLesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	st, err := h.svc.State()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, startedLesson{
		ID:                   gl.ID,
		Title:                gl.Title,
		EffectiveDifficulty:  gl.EffectiveDifficulty,
		XPReward:             gl.XPReward,
		PerfectBonus:         gl.PerfectBonus,
		EstimatedTimeMinutes: gl.EstimatedTimeMinutes,
		Exercises:            len(gl.Exercises),
		State:                st,
	})
}

// DELETE /api/lessons/:id/cache
func (h *CourseHandler) Regenerate(c *gin.Context) {
	dropped := h.svc.Regenerate(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"dropped": dropped})
}

// GET /api/session
func (h *CourseHandler) State(c *gin.Context) {
	st, err := h.svc.State()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /api/session/answer
func (h *CourseHandler) SubmitAnswer(c *gin.Context) {
	var sub session.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	fb, err := h.svc.SubmitAnswer(c.Request.Context(), sub)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

// POST /api/session/skip
func (h *CourseHandler) Skip(c *gin.Context) {
	fb, err := h.svc.Skip(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

// POST /api/session/advance
func (h *CourseHandler) Advance(c *gin.Context) {
	st, err := h.svc.Advance()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /api/session/complete
func (h *CourseHandler) Complete(c *gin.Context) {
	comp, err := h.svc.CompleteLesson(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

// DELETE /api/session
func (h *CourseHandler) Quit(c *gin.Context) {
	if err := h.svc.QuitLesson(); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/progress
func (h *CourseHandler) Progress(c *gin.Context) {
	t, err := h.svc.Totals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProgressView{
		XP:               t.XP,
		WordsLearned:     t.WordsLearned,
		LessonsCompleted: t.Lessons,
		CompletedIDs:     h.svc.CompletedIDs(),
	})
}

// POST /api/reset
func (h *CourseHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
