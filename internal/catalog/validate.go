package catalog

import (
	"fmt"
	"strings"
)

// validateLessons performs all structural checks on the given templates.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []LessonTemplate) error {
	var errs []string

	idSet := make(map[string]bool, len(lessons))
	orderSet := make(map[int]string, len(lessons))

	for _, l := range lessons {
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson at order %d has an empty ID", l.Order))
		}
		if idSet[l.ID] {
			errs = append(errs, fmt.Sprintf("duplicate lesson ID: %q", l.ID))
		}
		idSet[l.ID] = true

		if other, dup := orderSet[l.Order]; dup {
			errs = append(errs, fmt.Sprintf("lessons %q and %q share order %d", other, l.ID, l.Order))
		}
		orderSet[l.Order] = l.ID
	}

	// Prerequisites are not enforced for gating, but they must still point
	// at real lessons.
	for _, l := range lessons {
		for _, prereqID := range l.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("lesson %q references nonexistent prerequisite %q", l.ID, prereqID))
			}
		}
	}

	for _, l := range lessons {
		prefix := fmt.Sprintf("lesson %q", l.ID)
		if l.BaseDifficulty < Beginner || l.BaseDifficulty > Professional {
			errs = append(errs, fmt.Sprintf("%s: invalid base difficulty %d", prefix, int(l.BaseDifficulty)))
		}
		if l.XPReward < 0 || l.PerfectBonus < 0 {
			errs = append(errs, fmt.Sprintf("%s: rewards must be >= 0", prefix))
		}
		if len(l.ExerciseTemplates) == 0 {
			errs = append(errs, fmt.Sprintf("%s: has no exercise templates", prefix))
		}

		exIDs := make(map[string]bool, len(l.ExerciseTemplates))
		for _, et := range l.ExerciseTemplates {
			if exIDs[et.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate exercise template ID %q", prefix, et.ID))
			}
			exIDs[et.ID] = true
			if !et.Type.Valid() {
				errs = append(errs, fmt.Sprintf("%s: exercise template %q has unknown type %q", prefix, et.ID, et.Type))
			}
			if et.BaseDifficulty < 1 || et.BaseDifficulty > 5 {
				errs = append(errs, fmt.Sprintf("%s: exercise template %q difficulty must be 1-5, got %d", prefix, et.ID, et.BaseDifficulty))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("lesson catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Validate re-runs the structural checks on the loaded catalog.
func Validate() error {
	return validateLessons(c.lessons)
}
