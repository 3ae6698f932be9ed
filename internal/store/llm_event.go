package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo over the SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var llmEventColumns = []string{
	"sequence", "timestamp", "provider", "model", "purpose", "lesson_id",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(tableLLMEvents).
		Columns(llmEventColumns...).
		Values(
			seqNum, time.Now().UnixNano(), data.Provider, data.Model, data.Purpose, data.LessonID,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := builder.Select(llmEventColumns...).
		From(builder.Table(tableLLMEvents)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	query, args := builder.Select(llmEventColumns...).
		From(builder.Table(tableLLMEvents)).
		Where(entsql.EQ("sequence", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := builder.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
	).
		From(builder.Table(tableLLMEvents)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u   PurposeUsage
			avg float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage by purpose: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := builder.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(builder.Table(tableLLMEvents)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage by model: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var (
		e  LLMEvent
		ts int64
	)
	err := row.Scan(
		&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose, &e.LessonID,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		return nil, err
	}
	e.Timestamp = time.Unix(0, ts)
	return &e, nil
}

// applyQueryOpts narrows an event selector by sequence and time range.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
