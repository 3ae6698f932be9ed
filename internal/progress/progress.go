// Package progress holds the learner's durable state: the set of completed
// lesson ids and the generated-lesson cache. Both are kept in memory and
// written through to a key-value store after every mutation.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/logger"
)

// Durable keys. The values are a JSON array of ids and a JSON object
// mapping template id to GeneratedLesson.
const (
	KeyCompletedLessons = "completed-lesson-ids"
	KeyLessonCache      = "generated-lesson-cache"
)

// KV is the durable store behind a Store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PersistenceError reports a failed read or write of one durable key.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("progress %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the in-memory progress record with write-through persistence.
//
// Persistence failures never fail an operation. They are logged at warn
// level and the in-memory state stays authoritative for the rest of the
// process. The two keys are written independently; last writer wins.
type Store struct {
	kv  KV
	log *logger.Logger

	mu        sync.RWMutex
	completed map[string]bool
	cache     map[string]lesson.GeneratedLesson
	lastErr   error
}

// Load reads both keys from kv. Missing keys start empty, as do keys that
// fail to read or decode.
func Load(ctx context.Context, kv KV, log *logger.Logger) *Store {
	s := &Store{
		kv:        kv,
		log:       logger.OrNop(log),
		completed: make(map[string]bool),
		cache:     make(map[string]lesson.GeneratedLesson),
	}

	var ids []string
	if s.load(ctx, KeyCompletedLessons, &ids) {
		for _, id := range ids {
			s.completed[id] = true
		}
	}
	var cache map[string]lesson.GeneratedLesson
	if s.load(ctx, KeyLessonCache, &cache) && cache != nil {
		s.cache = cache
	}

	s.log.Debug("progress loaded", "completed", len(s.completed), "cached", len(s.cache))
	return s
}

func (s *Store) load(ctx context.Context, key string, into any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.fail("load", key, err)
		return false
	}
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		s.fail("load", key, fmt.Errorf("decode: %w", err))
		return false
	}
	return true
}

// fail records and logs a persistence error. Callers hold no lock or the
// write lock.
func (s *Store) fail(op, key string, err error) {
	perr := &PersistenceError{Op: op, Key: key, Err: err}
	s.lastErr = perr
	s.log.Warn("progress persistence failed", "op", op, "key", key, "error", err)
}

// Has reports whether the lesson id has been completed.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed[id]
}

// CompletedCount returns the number of completed lessons.
func (s *Store) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.completed)
}

// CompletedIDs returns the completed lesson ids, sorted.
func (s *Store) CompletedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := lo.Keys(s.completed)
	slices.Sort(ids)
	return ids
}

// MarkCompleted adds id to the completed set and persists it. It reports
// whether id was newly added.
func (s *Store) MarkCompleted(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed[id] {
		return false
	}
	s.completed[id] = true
	s.saveCompleted(ctx)
	return true
}

// Cached returns the generated lesson for a template id.
func (s *Store) Cached(id string) (lesson.GeneratedLesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gl, ok := s.cache[id]
	return gl, ok
}

// CachedIDs returns the template ids with a cached lesson, sorted.
func (s *Store) CachedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := lo.Keys(s.cache)
	slices.Sort(ids)
	return ids
}

// PutCached stores a generated lesson under its id and persists the cache.
func (s *Store) PutCached(ctx context.Context, gl lesson.GeneratedLesson) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[gl.ID] = gl
	s.saveCache(ctx)
}

// DeleteCached drops one cached lesson. It reports whether it was present.
func (s *Store) DeleteCached(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[id]; !ok {
		return false
	}
	delete(s.cache, id)
	s.saveCache(ctx)
	return true
}

// ClearCache drops every cached lesson.
func (s *Store) ClearCache(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]lesson.GeneratedLesson)
	s.saveCache(ctx)
}

// Reset clears both the completed set and the cache.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = make(map[string]bool)
	s.cache = make(map[string]lesson.GeneratedLesson)
	s.saveCompleted(ctx)
	s.saveCache(ctx)
}

// Err returns the most recent persistence failure, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) saveCompleted(ctx context.Context) {
	ids := lo.Keys(s.completed)
	slices.Sort(ids)
	s.save(ctx, KeyCompletedLessons, ids)
}

func (s *Store) saveCache(ctx context.Context) {
	s.save(ctx, KeyLessonCache, s.cache)
}

func (s *Store) save(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.fail("save", key, fmt.Errorf("encode: %w", err))
		return
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		s.fail("save", key, err)
	}
}
