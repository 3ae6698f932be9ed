package course

import (
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/session"
)

// ExerciseView is an exercise as shown to the learner, without its
// answer. Match-pairs sides are listed separately, each sorted.
type ExerciseView struct {
	ID         string               `json:"id"`
	Type       catalog.ExerciseType `json:"type"`
	Question   string               `json:"question"`
	Options    []string             `json:"options,omitempty"`
	NativeText string               `json:"nativeText,omitempty"`
	TargetText string               `json:"targetText,omitempty"`
	Words      []string             `json:"words,omitempty"`
	Left       []string             `json:"left,omitempty"`
	Right      []string             `json:"right,omitempty"`
}

func viewOf(ex lesson.Exercise) *ExerciseView {
	v := &ExerciseView{
		ID:         ex.ID,
		Type:       ex.Type,
		Question:   ex.Question,
		Options:    ex.Options,
		NativeText: ex.NativeText,
		TargetText: ex.TargetText,
		Words:      ex.Words,
	}
	if len(ex.Pairs) > 0 {
		v.Left = lo.Uniq(lo.Map(ex.Pairs, func(p lesson.Pair, _ int) string { return p.Left }))
		v.Right = lo.Uniq(lo.Map(ex.Pairs, func(p lesson.Pair, _ int) string { return p.Right }))
		slices.Sort(v.Left)
		slices.Sort(v.Right)
	}
	return v
}

// State is a snapshot of the session in progress.
type State struct {
	SessionID string         `json:"sessionId"`
	LessonID  string         `json:"lessonId"`
	Status    session.Status `json:"status"`
	Index     int            `json:"index"`
	Total     int            `json:"total"`
	Correct   int            `json:"correct"`
	// Exercise is nil once the session is Completed.
	Exercise   *ExerciseView   `json:"exercise,omitempty"`
	LastResult *session.Result `json:"lastResult,omitempty"`
}

func stateOf(s *session.Session) State {
	st := State{
		SessionID: s.ID,
		LessonID:  s.Lesson.ID,
		Status:    s.Status(),
		Index:     s.Index(),
		Total:     s.Total(),
		Correct:   s.CorrectCount(),
	}
	if ex, ok := s.Current(); ok {
		st.Exercise = viewOf(ex)
	}
	if r, ok := s.LastResult(); ok && s.Status() != session.StatusActive {
		st.LastResult = &r
	}
	return st
}
