// Package metrics exposes Prometheus counters for lesson generation,
// grading, and session completion.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes.
const (
	OutcomeCacheHit  = "cache_hit"
	OutcomeGenerated = "generated"
)

var (
	generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_lesson_generations_total",
			Help: "Lesson generation requests by outcome",
		},
		[]string{"outcome"}, // cache_hit, generated, network, server, malformed_content
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lingua_lesson_generation_duration_seconds",
			Help:    "Time spent generating a lesson, excluding cache hits",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"outcome"},
	)

	gradings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_answers_graded_total",
			Help: "Graded answers by exercise type and result",
		},
		[]string{"type", "correct"},
	)

	completions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_lessons_completed_total",
			Help: "Completed lesson attempts",
		},
		[]string{"perfect"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lingua_active_sessions",
			Help: "Lesson sessions currently in progress",
		},
	)
)

// CacheHit counts a generation served from the lesson cache.
func CacheHit() {
	generations.WithLabelValues(OutcomeCacheHit).Inc()
}

// ObserveGeneration records one call to the generation collaborator.
func ObserveGeneration(outcome string, d time.Duration) {
	generations.WithLabelValues(outcome).Inc()
	generationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// Graded counts one graded submission.
func Graded(exerciseType string, correct bool) {
	gradings.WithLabelValues(exerciseType, strconv.FormatBool(correct)).Inc()
}

// SessionStarted and SessionEnded track the active-session gauge.
func SessionStarted() { activeSessions.Inc() }

func SessionEnded() { activeSessions.Dec() }

// LessonCompleted counts a finished lesson attempt.
func LessonCompleted(perfect bool) {
	completions.WithLabelValues(strconv.FormatBool(perfect)).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
