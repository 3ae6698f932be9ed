package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

func sampleLesson(id string) lesson.GeneratedLesson {
	return lesson.GeneratedLesson{
		ID:                  id,
		Title:               "Greetings",
		EffectiveDifficulty: catalog.Intermediate,
		XPReward:            30,
		PerfectBonus:        15,
		Exercises: []lesson.Exercise{
			{ID: "e1", Type: catalog.TypeTranslate, Question: "Say hello", CorrectAnswer: "hola|holaa"},
			{ID: "e2", Type: catalog.TypeMatchPairs, Question: "Match", Pairs: []lesson.Pair{{Left: "casa", Right: "house"}}},
		},
		EstimatedTimeMinutes: 5,
		GeneratedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLoad_Empty(t *testing.T) {
	s := Load(context.Background(), NewMemoryKV(), nil)
	assert.Zero(t, s.CompletedCount())
	assert.Empty(t, s.CachedIDs())
	assert.NoError(t, s.Err())
}

func TestMarkCompleted_PersistsSortedArray(t *testing.T) {
	kv := NewMemoryKV()
	s := Load(context.Background(), kv, nil)

	assert.True(t, s.MarkCompleted(context.Background(), "numbers-1-20"))
	assert.True(t, s.MarkCompleted(context.Background(), "greetings-basics"))
	assert.False(t, s.MarkCompleted(context.Background(), "greetings-basics"), "second mark is a no-op")

	assert.Equal(t, `["greetings-basics","numbers-1-20"]`, kv.Snapshot()[KeyCompletedLessons])
	assert.Equal(t, 2, kv.Sets, "no write for a repeated id")
	assert.True(t, s.Has("numbers-1-20"))
	assert.Equal(t, 2, s.CompletedCount())
}

func TestCache_RoundTripThroughKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := Load(ctx, kv, nil)
	s.PutCached(ctx, sampleLesson("greetings-basics"))
	s.MarkCompleted(ctx, "greetings-basics")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(kv.Snapshot()[KeyLessonCache]), &raw))
	assert.Contains(t, raw, "greetings-basics")

	reloaded := Load(ctx, kv, nil)
	got, ok := reloaded.Cached("greetings-basics")
	require.True(t, ok)
	assert.Equal(t, sampleLesson("greetings-basics"), got)
	assert.True(t, reloaded.Has("greetings-basics"))
}

func TestDeleteAndClearCache(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, NewMemoryKV(), nil)
	s.PutCached(ctx, sampleLesson("a"))
	s.PutCached(ctx, sampleLesson("b"))

	assert.True(t, s.DeleteCached(ctx, "a"))
	assert.False(t, s.DeleteCached(ctx, "a"))
	assert.Equal(t, []string{"b"}, s.CachedIDs())

	s.ClearCache(ctx)
	assert.Empty(t, s.CachedIDs())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := Load(ctx, kv, nil)
	s.PutCached(ctx, sampleLesson("a"))
	s.MarkCompleted(ctx, "a")

	s.Reset(ctx)
	assert.Zero(t, s.CompletedCount())
	assert.Empty(t, s.CachedIDs())
	assert.Equal(t, "[]", kv.Snapshot()[KeyCompletedLessons])
	assert.Equal(t, "{}", kv.Snapshot()[KeyLessonCache])
}

func TestPersistenceFailure_IsLoggedAndSwallowed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	ctx := context.Background()
	kv := NewMemoryKV()
	kv.SetErr = errors.New("disk full")
	s := Load(ctx, kv, log)

	assert.True(t, s.MarkCompleted(ctx, "greetings-basics"))
	s.PutCached(ctx, sampleLesson("greetings-basics"))

	// In-memory state carries on.
	assert.True(t, s.Has("greetings-basics"))
	_, ok := s.Cached("greetings-basics")
	assert.True(t, ok)

	var perr *PersistenceError
	require.True(t, errors.As(s.Err(), &perr))
	assert.Equal(t, "save", perr.Op)
	assert.Equal(t, KeyLessonCache, perr.Key)
	assert.Equal(t, 2, logs.FilterMessage("progress persistence failed").Len())
}

func TestLoad_ReadFailureStartsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	kv.GetErr = errors.New("connection refused")
	s := Load(context.Background(), kv, nil)

	assert.Zero(t, s.CompletedCount())
	var perr *PersistenceError
	require.True(t, errors.As(s.Err(), &perr))
	assert.Equal(t, "load", perr.Op)
}

func TestLoad_CorruptValueStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyCompletedLessons, `["a","b"]`))
	require.NoError(t, kv.Set(ctx, KeyLessonCache, `{not json`))

	s := Load(ctx, kv, nil)
	assert.Equal(t, 2, s.CompletedCount(), "a bad cache does not discard completions")
	assert.Empty(t, s.CachedIDs())
	assert.Error(t, s.Err())
}

func TestStore_SQLiteKV(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open("file:progress_sqlite?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	s := Load(ctx, db.KV(), nil)
	s.MarkCompleted(ctx, "greetings-basics")
	s.PutCached(ctx, sampleLesson("greetings-basics"))

	reloaded := Load(ctx, db.KV(), nil)
	assert.True(t, reloaded.Has("greetings-basics"))
	_, ok := reloaded.Cached("greetings-basics")
	assert.True(t, ok)
	assert.NoError(t, reloaded.Err())
}
