package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrateIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.KV().Set(ctx, "completed-lessons", `["greetings-basics"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := migrate(ctx, s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	v, ok, err := s.KV().Get(ctx, "completed-lessons")
	if err != nil || !ok || v != `["greetings-basics"]` {
		t.Fatalf("kv after migrate = %q, %v, %v", v, ok, err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{tableKV, tableLLMEvents, tableRewardEvents, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestKV_GetSetDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := kv.Set(ctx, "completed-lesson-ids", `["a"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "completed-lesson-ids", `["a","b"]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := kv.Get(ctx, "completed-lesson-ids")
	if err != nil || !ok {
		t.Fatalf("get: ok %v, err %v", ok, err)
	}
	if v != `["a","b"]` {
		t.Errorf("value = %s, want last write", v)
	}

	if err := kv.Delete(ctx, "completed-lesson-ids"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "completed-lesson-ids"); ok {
		t.Error("key still present after delete")
	}
	if err := kv.Delete(ctx, "completed-lesson-ids"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/lingua.db"
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KV().Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.KV().Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("after reopen Get = %q, %v, %v", v, ok, err)
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"lesson-gen", "lesson-gen", "other"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			LessonID:     "greetings-basics",
			InputTokens:  100 * (i + 1),
			OutputTokens: 10,
			LatencyMs:    int64(20 * (i + 1)),
			Success:      i != 2,
			ErrorMessage: map[bool]string{true: "boom"}[i == 2],
			RequestBody:  "[user]\nprompt",
			ResponseBody: `{"exercises":[]}`,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Purpose != "other" || events[0].Success {
		t.Errorf("newest event = %+v, want failed 'other'", events[0])
	}
	if events[0].ErrorMessage != "boom" {
		t.Errorf("error message = %q", events[0].ErrorMessage)
	}
	if events[0].ID <= events[1].ID {
		t.Errorf("events not newest first: %d, %d", events[0].ID, events[1].ID)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit 1: %d events, err %v", len(limited), err)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].ID})
	if err != nil || len(after) != 1 {
		t.Fatalf("after: %d events, err %v", len(after), err)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil || len(future) != 0 {
		t.Fatalf("from future: %d events, err %v", len(future), err)
	}

	got, err := repo.GetLLMEvent(ctx, events[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.InputTokens != 100 || got.LessonID != "greetings-basics" || got.RequestBody == "" {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v; want nil, nil", missing, err)
	}
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "lesson-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 100},
		{Model: "gpt-4o-mini", Purpose: "lesson-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 300},
		{Model: "gemini-2.0-flash", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 40},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	lg := byPurpose[0]
	if lg.Purpose != "lesson-gen" || lg.Calls != 2 || lg.InputTokens != 400 || lg.OutputTokens != 200 || lg.AvgLatencyMs != 200 {
		t.Errorf("lesson-gen usage = %+v", lg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d models, want 2", len(byModel))
	}
	if byModel[0].Model != "gemini-2.0-flash" || byModel[0].Calls != 1 {
		t.Errorf("first model = %+v", byModel[0])
	}
	if byModel[1].InputTokens != 400 {
		t.Errorf("gpt-4o-mini input = %d, want 400", byModel[1].InputTokens)
	}
}

func TestRewards_TotalsAndClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	totals, err := repo.RewardTotals(ctx)
	if err != nil {
		t.Fatalf("empty totals: %v", err)
	}
	if totals != (RewardTotals{}) {
		t.Fatalf("empty totals = %+v", totals)
	}

	events := []RewardEventData{
		{Kind: RewardAnswer, LessonID: "l1", ExerciseID: "e1", SessionID: "s1", XP: 5},
		{Kind: RewardAnswer, LessonID: "l1", ExerciseID: "e2", SessionID: "s1", XP: 5},
		{Kind: RewardLesson, LessonID: "l1", SessionID: "s1", XP: 30, Words: 5},
	}
	for _, e := range events {
		if err := repo.AppendReward(ctx, e); err != nil {
			t.Fatalf("append reward: %v", err)
		}
	}

	totals, err = repo.RewardTotals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := RewardTotals{XP: 40, WordsLearned: 5, Lessons: 1}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}

	got, err := repo.QueryRewards(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query rewards: %v", err)
	}
	if len(got) != 2 || got[0].Kind != RewardLesson || got[1].ExerciseID != "e2" {
		t.Errorf("query rewards = %+v", got)
	}

	if err := repo.ClearRewards(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if totals, _ := repo.RewardTotals(ctx); totals != (RewardTotals{}) {
		t.Errorf("totals after clear = %+v", totals)
	}
}
