// Package content turns a lesson template into a personalized exercise set
// by prompting the text-generation collaborator, then parses, repairs, and
// caches the result.
package content

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/difficulty"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/metrics"
)

// Cache is the generated-lesson memo, keyed by template id.
type Cache interface {
	Cached(id string) (lesson.GeneratedLesson, bool)
	PutCached(ctx context.Context, gl lesson.GeneratedLesson)
	DeleteCached(ctx context.Context, id string) bool
	ClearCache(ctx context.Context)
}

// Generator produces GeneratedLessons. A lesson is generated at most once
// per template until it is invalidated.
type Generator struct {
	provider llm.Provider
	cache    Cache
	cfg      Config
	log      *logger.Logger
	now      func() time.Time

	// locks holds one mutex per template id. Cache misses for the same
	// template share one collaborator call; different templates proceed
	// in parallel.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// New creates a Generator.
func New(provider llm.Provider, cache Cache, cfg Config, log *logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		log:      logger.OrNop(log),
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (g *Generator) lockFor(id string) *sync.Mutex {
	g.locksMu.Lock()
	defer g.locksMu.Unlock()
	mu, ok := g.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		g.locks[id] = mu
	}
	return mu
}

// Generate returns the lesson for tmpl, generating it on a cache miss.
// completedCount is the number of lessons the learner has finished and
// drives difficulty and richness. Any failure is a *GenerationError and
// leaves the cache untouched.
func (g *Generator) Generate(ctx context.Context, tmpl catalog.LessonTemplate, completedCount int) (lesson.GeneratedLesson, error) {
	if gl, ok := g.cache.Cached(tmpl.ID); ok {
		metrics.CacheHit()
		return gl, nil
	}

	mu := g.lockFor(tmpl.ID)
	mu.Lock()
	defer mu.Unlock()
	if gl, ok := g.cache.Cached(tmpl.ID); ok {
		metrics.CacheHit()
		return gl, nil
	}

	level := difficulty.Adapt(completedCount, tmpl.BaseDifficulty)
	target := TargetExerciseCount(len(tmpl.ExerciseTemplates), level.RichnessBoost, g.cfg.MaxExercises)

	req := llm.UserPrompt(systemPrompt(g.cfg), buildUserMessage(tmpl, level, target, g.cfg))
	req.JSON = true
	req.MaxTokens = g.cfg.MaxTokens
	req.Temperature = g.cfg.Temperature

	callCtx := llm.WithLesson(llm.WithPurpose(ctx, "lesson-gen"), tmpl.ID)
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.provider.Generate(callCtx, req)
	if err != nil {
		return lesson.GeneratedLesson{}, g.fail(tmpl.ID, classify(err), err, start)
	}

	exercises, err := parseExercises(resp.Text, target, g.log)
	if err != nil {
		return lesson.GeneratedLesson{}, g.fail(tmpl.ID, CauseMalformedContent, err, start)
	}

	gl := assemble(tmpl, level, exercises)
	gl.GeneratedAt = g.now().UTC()
	gl.Model = resp.Model

	g.cache.PutCached(ctx, gl)
	metrics.ObserveGeneration(metrics.OutcomeGenerated, time.Since(start))
	g.log.Info("lesson generated",
		"lesson", tmpl.ID,
		"difficulty", level.Effective,
		"exercises", len(exercises),
		"target", target,
		"latency", time.Since(start),
	)
	return gl, nil
}

func (g *Generator) fail(lessonID string, cause Cause, err error, start time.Time) error {
	metrics.ObserveGeneration(cause.String(), time.Since(start))
	g.log.Warn("lesson generation failed", "lesson", lessonID, "cause", cause, "error", err)
	return &GenerationError{LessonID: lessonID, Cause: cause, Err: err}
}

// Invalidate drops the cached lesson for one template so the next Generate
// call produces a fresh one.
func (g *Generator) Invalidate(ctx context.Context, lessonID string) bool {
	return g.cache.DeleteCached(ctx, lessonID)
}

// ClearCache drops every cached lesson.
func (g *Generator) ClearCache(ctx context.Context) {
	g.cache.ClearCache(ctx)
}

// TargetExerciseCount is the number of exercises requested for a template
// with n exercise slots at the given richness boost. A non-positive limit
// means the default cap of 20.
func TargetExerciseCount(n, richnessBoost, limit int) int {
	if limit <= 0 {
		limit = DefaultConfig().MaxExercises
	}
	return min(limit, n+richnessBoost*3)
}

func assemble(tmpl catalog.LessonTemplate, level difficulty.Level, exercises []lesson.Exercise) lesson.GeneratedLesson {
	boost := level.RichnessBoost
	return lesson.GeneratedLesson{
		ID:                   tmpl.ID,
		Title:                tmpl.Title,
		Description:          tmpl.Description,
		EffectiveDifficulty:  level.Effective,
		XPReward:             tmpl.XPReward + min(50, boost*10),
		PerfectBonus:         tmpl.PerfectBonus + boost*5,
		Exercises:            exercises,
		EstimatedTimeMinutes: max(tmpl.EstimatedTimeMinutes, estimatedMinutes(len(exercises))),
		Unit:                 tmpl.Unit,
		Order:                tmpl.Order,
	}
}

// estimatedMinutes is ceil(n * 1.2) in integer arithmetic.
func estimatedMinutes(n int) int {
	return (n*6 + 4) / 5
}
