package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var rewardEventColumns = []string{
	"sequence", "timestamp", "kind", "lesson_id", "exercise_id", "session_id", "xp", "words",
}

func (r *eventRepo) AppendReward(ctx context.Context, data RewardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(tableRewardEvents).
		Columns(rewardEventColumns...).
		Values(
			seqNum, time.Now().UnixNano(), string(data.Kind),
			data.LessonID, data.ExerciseID, data.SessionID, data.XP, data.Words,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewards(ctx context.Context, opts QueryOpts) ([]RewardEvent, error) {
	sel := builder.Select(rewardEventColumns...).
		From(builder.Table(tableRewardEvents)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var events []RewardEvent
	for rows.Next() {
		var (
			e    RewardEvent
			ts   int64
			kind string
		)
		if err := rows.Scan(&e.Sequence, &ts, &kind, &e.LessonID, &e.ExerciseID, &e.SessionID, &e.XP, &e.Words); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		e.Timestamp = time.Unix(0, ts)
		e.Kind = RewardKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) RewardTotals(ctx context.Context) (RewardTotals, error) {
	query, args := builder.Select(
		"COALESCE(SUM(`xp`), 0)",
		"COALESCE(SUM(`words`), 0)",
		"COALESCE(SUM(CASE WHEN `kind` = 'lesson' THEN 1 ELSE 0 END), 0)",
	).
		From(builder.Table(tableRewardEvents)).
		Query()

	var t RewardTotals
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.XP, &t.WordsLearned, &t.Lessons); err != nil {
		return RewardTotals{}, fmt.Errorf("sum reward events: %w", err)
	}
	return t, nil
}

func (r *eventRepo) ClearRewards(ctx context.Context) error {
	query, args := builder.Delete(tableRewardEvents).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear reward events: %w", err)
	}
	return nil
}
