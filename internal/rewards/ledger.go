// Package rewards records XP and words-learned increments as append-only
// events and sums them into the learner's running totals.
package rewards

import (
	"context"
	"sync"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/store"
)

// Totals is the learner's aggregate reward state.
type Totals = store.RewardTotals

// Ledger pays out the two reward tiers: a small trickle per correct answer
// and a lump sum per completed lesson.
//
// A failed append is logged and kept in memory, so Totals stays right for
// the life of the process even when the event store is unavailable.
type Ledger struct {
	repo store.EventRepo
	log  *logger.Logger

	mu      sync.Mutex
	unsaved Totals
}

// NewLedger creates a Ledger. repo may be nil, in which case rewards are
// only kept in memory.
func NewLedger(repo store.EventRepo, log *logger.Logger) *Ledger {
	return &Ledger{repo: repo, log: logger.OrNop(log)}
}

// AwardAnswer pays the per-answer reward for one correct submission.
func (l *Ledger) AwardAnswer(ctx context.Context, sessionID, lessonID, exerciseID string) {
	l.append(ctx, store.RewardEventData{
		Kind:       store.RewardAnswer,
		LessonID:   lessonID,
		ExerciseID: exerciseID,
		SessionID:  sessionID,
		XP:         session.XPPerCorrectAnswer,
	})
}

// AwardLesson pays the completion reward: the earned XP and one learned
// word per exercise in the lesson.
func (l *Ledger) AwardLesson(ctx context.Context, sessionID string, c session.Completion) {
	l.append(ctx, store.RewardEventData{
		Kind:      store.RewardLesson,
		LessonID:  c.LessonID,
		SessionID: sessionID,
		XP:        c.XPEarned,
		Words:     c.Total,
	})
}

func (l *Ledger) append(ctx context.Context, data store.RewardEventData) {
	if l.repo != nil {
		err := l.repo.AppendReward(ctx, data)
		if err == nil {
			return
		}
		l.log.Warn("failed to record reward", "kind", data.Kind, "lesson", data.LessonID, "error", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.unsaved.XP += data.XP
	l.unsaved.WordsLearned += data.Words
	if data.Kind == store.RewardLesson {
		l.unsaved.Lessons++
	}
}

// Totals sums every recorded reward plus any that could not be saved.
func (l *Ledger) Totals(ctx context.Context) (Totals, error) {
	l.mu.Lock()
	t := l.unsaved
	l.mu.Unlock()

	if l.repo == nil {
		return t, nil
	}
	saved, err := l.repo.RewardTotals(ctx)
	if err != nil {
		return t, err
	}
	t.XP += saved.XP
	t.WordsLearned += saved.WordsLearned
	t.Lessons += saved.Lessons
	return t, nil
}

// Reset discards every reward.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.unsaved = Totals{}
	l.mu.Unlock()

	if l.repo == nil {
		return nil
	}
	return l.repo.ClearRewards(ctx)
}
