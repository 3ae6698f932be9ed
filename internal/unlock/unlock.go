// Package unlock derives per-lesson lock state from catalog order,
// completion history, and the learner's entitlement.
package unlock

import (
	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/difficulty"
)

// Completed answers whether a lesson id has been completed.
type Completed interface {
	Has(id string) bool
}

// Set is a Completed backed by a map.
type Set map[string]bool

func (s Set) Has(id string) bool { return s[id] }

// LessonStatus is a template annotated for display in a lesson list.
type LessonStatus struct {
	catalog.LessonTemplate

	IsLocked            bool
	IsCompleted         bool
	EffectiveDifficulty catalog.Difficulty
}

// IsLocked reports whether the lesson at position i is locked.
//
// Gating is positional: only the immediate predecessor in catalog order
// matters. The Prerequisites field is deliberately not consulted.
// Beginner lessons are never locked.
func IsLocked(lessons []catalog.LessonTemplate, i int, completed Completed, entitled bool) bool {
	if i < 0 || i >= len(lessons) {
		return true
	}
	previousCompleted := i == 0 || completed.Has(lessons[i-1].ID)
	return !previousCompleted && lessons[i].BaseDifficulty != catalog.Beginner && !entitled
}

// Resolve annotates every lesson with lock, completion, and effective
// difficulty. completedCount feeds the difficulty adapter so the displayed
// difficulty matches what generation will use.
func Resolve(lessons []catalog.LessonTemplate, completed Completed, completedCount int, entitled bool) []LessonStatus {
	return lo.Map(lessons, func(l catalog.LessonTemplate, i int) LessonStatus {
		return LessonStatus{
			LessonTemplate:      l,
			IsLocked:            IsLocked(lessons, i, completed, entitled),
			IsCompleted:         completed.Has(l.ID),
			EffectiveDifficulty: difficulty.Adapt(completedCount, l.BaseDifficulty).Effective,
		}
	})
}
