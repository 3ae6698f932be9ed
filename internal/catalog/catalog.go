package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLessonNotFound is returned by GetLesson for unknown template ids.
var ErrLessonNotFound = errors.New("lesson not found")

// catalog holds the ordered templates with an id index.
type catalog struct {
	lessons []LessonTemplate
	byID    map[string]int
}

// c is the package-level catalog, set by init() in seed.go.
var c *catalog

func buildCatalog(lessons []LessonTemplate) *catalog {
	sorted := make([]LessonTemplate, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	cat := &catalog{
		lessons: sorted,
		byID:    make(map[string]int, len(sorted)),
	}
	for i := range cat.lessons {
		cat.byID[cat.lessons[i].ID] = i
	}
	return cat
}

// AllLessons returns every template in catalog order.
func AllLessons() []LessonTemplate {
	out := make([]LessonTemplate, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// GetLesson returns the template with the given id.
func GetLesson(id string) (LessonTemplate, error) {
	i, ok := c.byID[id]
	if !ok {
		return LessonTemplate{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	return c.lessons[i], nil
}

// Position returns the 0-based catalog position of a template id, or -1.
func Position(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// LessonsByUnit returns the templates of one unit in catalog order.
func LessonsByUnit(unit int) []LessonTemplate {
	var out []LessonTemplate
	for _, l := range c.lessons {
		if l.Unit == unit {
			out = append(out, l)
		}
	}
	return out
}
