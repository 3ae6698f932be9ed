// Package difficulty computes the adaptive difficulty and content richness
// for a lesson from the number of lessons a learner has completed.
package difficulty

import "github.com/abhisek/lingua/internal/catalog"

const (
	// Completed-lesson thresholds for the first and second level bump.
	firstBumpAt  = 8
	secondBumpAt = 15

	lessonsPerRichnessStep = 5
	maxRichnessBoost       = 3
)

// Level is the adapted difficulty for one template at one point in a
// learner's progression.
type Level struct {
	Base      catalog.Difficulty
	Effective catalog.Difficulty
	LevelBump int

	// RichnessBoost scales exercise count and rewards. It grows on its own
	// schedule, independent of LevelBump.
	RichnessBoost int
}

// Adapt returns the effective level for a template with the given base
// difficulty after completedLessons lessons. Negative counts are treated
// as zero.
func Adapt(completedLessons int, base catalog.Difficulty) Level {
	if completedLessons < 0 {
		completedLessons = 0
	}

	bump := LevelBump(completedLessons)
	order := catalog.DifficultyOrder()
	idx := min(len(order)-1, int(base)+bump)
	if idx < 0 {
		idx = 0
	}

	return Level{
		Base:          base,
		Effective:     order[idx],
		LevelBump:     bump,
		RichnessBoost: RichnessBoost(completedLessons),
	}
}

// LevelBump returns how many levels above base the learner is pushed.
func LevelBump(completedLessons int) int {
	switch {
	case completedLessons >= secondBumpAt:
		return 2
	case completedLessons >= firstBumpAt:
		return 1
	default:
		return 0
	}
}

// RichnessBoost returns the content-volume knob, capped at 3.
func RichnessBoost(completedLessons int) int {
	if completedLessons < 0 {
		return 0
	}
	return min(maxRichnessBoost, completedLessons/lessonsPerRichnessStep)
}
