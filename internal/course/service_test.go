package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/rewards"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/store"
)

// choiceLesson renders n multiple-choice exercises whose answer is "hola",
// plus one match_pairs exercise when withPairs is set.
func choiceLesson(n int, withPairs bool) string {
	var items []map[string]any
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"id":            fmt.Sprintf("q%d", i+1),
			"type":          "multiple_choice",
			"question":      "How do you say hello?",
			"options":       []string{"hola", "adiós", "gracias", "sí"},
			"correctAnswer": "hola",
			"explanation":   "Hola means hello.",
		})
	}
	if withPairs {
		items = append(items, map[string]any{
			"id":       "pairs",
			"type":     "match_pairs",
			"question": "Match the words",
			"pairs":    []map[string]string{{"left": "perro", "right": "dog"}, {"left": "casa", "right": "house"}},
		})
	}
	b, _ := json.Marshal(map[string]any{"exercises": items})
	return string(b)
}

type fixture struct {
	svc      *Service
	mock     *llm.MockProvider
	progress *progress.Store
	kv       *progress.MemoryKV
	events   store.EventRepo
}

func newFixture(t *testing.T, cfg Config, responses ...llm.MockResponse) fixture {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv := progress.NewMemoryKV()
	p := progress.Load(ctx, kv, nil)
	mock := llm.NewMockProvider(responses...)
	gen := content.New(mock, p, content.DefaultConfig(), nil)
	ledger := rewards.NewLedger(db.EventRepo(), nil)

	return fixture{
		svc:      New(p, gen, ledger, cfg, nil),
		mock:     mock,
		progress: p,
		kv:       kv,
		events:   db.EventRepo(),
	}
}

func playAll(t *testing.T, svc *Service, answers ...string) {
	t.Helper()
	for _, a := range answers {
		_, err := svc.SubmitAnswer(context.Background(), session.Submission{Choice: a})
		require.NoError(t, err)
		_, err = svc.Advance()
		require.NoError(t, err)
	}
}

func TestListLessons_Fresh(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	lessons := f.svc.ListLessons(false)
	require.Len(t, lessons, len(catalog.AllLessons()))

	byID := map[string]Lesson{}
	for _, l := range lessons {
		byID[l.ID] = l
	}
	assert.False(t, byID["greetings-basics"].IsLocked)
	assert.False(t, byID["cafe-order"].IsLocked, "beginner lessons never lock")
	assert.True(t, byID["articles-gender"].IsLocked)
	assert.Equal(t, catalog.Intermediate, byID["articles-gender"].EffectiveDifficulty)

	assert.False(t, f.svc.ListLessons(true)[3].IsLocked, "entitlement unlocks")
}

func TestStartLesson_Errors(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	_, err := f.svc.StartLesson(context.Background(), "klingon-101")
	assert.True(t, errors.Is(err, catalog.ErrLessonNotFound))

	_, err = f.svc.StartLesson(context.Background(), "articles-gender")
	assert.True(t, errors.Is(err, ErrLessonLocked))
	assert.Zero(t, f.mock.CallCount(), "locked lessons are not generated")
}

func TestPrepareLesson(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(3, false)})

	_, err := f.svc.PrepareLesson(ctx, "articles-gender")
	assert.True(t, errors.Is(err, ErrLessonLocked))
	_, err = f.svc.PrepareLesson(ctx, "klingon-101")
	assert.True(t, errors.Is(err, catalog.ErrLessonNotFound))
	assert.Zero(t, f.mock.CallCount(), "locked lessons are not generated")

	gl, err := f.svc.PrepareLesson(ctx, "greetings-basics")
	require.NoError(t, err)
	assert.Len(t, gl.Exercises, 3)
	_, cached := f.svc.CachedLesson("greetings-basics")
	assert.True(t, cached)

	_, err = f.svc.State()
	assert.True(t, errors.Is(err, ErrNoSession), "preparing does not start a session")
}

func TestStartLesson_EntitledSkipsLock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Entitled = true
	f := newFixture(t, cfg, llm.MockResponse{Text: choiceLesson(3, false)})

	gl, err := f.svc.StartLesson(context.Background(), "articles-gender")
	require.NoError(t, err)
	assert.Equal(t, "articles-gender", gl.ID)
}

func TestStartLesson_GenerationFailure(t *testing.T) {
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Err: &llm.ErrProviderUnavailable{StatusCode: 502}})

	_, err := f.svc.StartLesson(context.Background(), "greetings-basics")
	assert.True(t, content.IsCause(err, content.CauseServer), "got %v", err)

	_, err = f.svc.State()
	assert.True(t, errors.Is(err, ErrNoSession))
	_, cached := f.svc.CachedLesson("greetings-basics")
	assert.False(t, cached)
}

func TestNoSession(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := context.Background()

	_, err := f.svc.SubmitAnswer(ctx, session.Submission{Choice: "hola"})
	assert.True(t, errors.Is(err, ErrNoSession))
	_, err = f.svc.Advance()
	assert.True(t, errors.Is(err, ErrNoSession))
	_, err = f.svc.CompleteLesson(ctx)
	assert.True(t, errors.Is(err, ErrNoSession))
	assert.True(t, errors.Is(f.svc.QuitLesson(), ErrNoSession))
}

func TestFullLesson_Perfect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(4, true)})

	gl, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)
	require.Len(t, gl.Exercises, 5)

	st, err := f.svc.State()
	require.NoError(t, err)
	assert.Equal(t, session.StatusActive, st.Status)
	assert.Equal(t, 5, st.Total)
	require.NotNil(t, st.Exercise)
	assert.Equal(t, []string{"hola", "adiós", "gracias", "sí"}, st.Exercise.Options)
	assert.Nil(t, st.LastResult)

	playAll(t, f.svc, "hola", "hola", "hola", "hola")

	st, err = f.svc.State()
	require.NoError(t, err)
	assert.Equal(t, []string{"casa", "perro"}, st.Exercise.Left)
	assert.Equal(t, []string{"dog", "house"}, st.Exercise.Right)

	fb, err := f.svc.SubmitAnswer(ctx, session.Submission{Pairs: map[string]string{"casa": "house", "perro": "dog"}})
	require.NoError(t, err)
	assert.True(t, fb.IsCorrect)

	st, err = f.svc.Advance()
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, st.Status)
	assert.Nil(t, st.Exercise)
	require.NotNil(t, st.LastResult)

	c, err := f.svc.CompleteLesson(ctx)
	require.NoError(t, err)
	assert.True(t, c.Perfect)
	assert.Equal(t, 30, c.XPEarned, "xpReward 20 + perfect bonus 10")

	totals, err := f.svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, rewards.Totals{XP: 5*session.XPPerCorrectAnswer + 30, WordsLearned: 5, Lessons: 1}, totals)

	assert.Equal(t, []string{"greetings-basics"}, f.svc.CompletedIDs())
	assert.Contains(t, f.kv.Snapshot()[progress.KeyCompletedLessons], "greetings-basics")
	assert.True(t, f.svc.ListLessons(false)[0].IsCompleted)

	_, err = f.svc.State()
	assert.True(t, errors.Is(err, ErrNoSession), "session discarded after completion")
}

func TestFullLesson_OneWrong(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(5, false)})

	_, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)
	playAll(t, f.svc, "hola", "hola", "gracias", "hola", "hola")

	c, err := f.svc.CompleteLesson(ctx)
	require.NoError(t, err)
	assert.False(t, c.Perfect)
	assert.Equal(t, 4, c.CorrectCount)
	assert.Equal(t, 20, c.XPEarned)

	totals, err := f.svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4*session.XPPerCorrectAnswer+20, totals.XP)
}

func TestSubmitWhileShowingResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(2, false)})
	_, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(ctx, session.Submission{Choice: "hola"})
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(ctx, session.Submission{Choice: "hola"})
	var serr *session.StateError
	require.True(t, errors.As(err, &serr))

	totals, err := f.svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.XPPerCorrectAnswer, totals.XP, "rejected submit pays nothing")

	_, err = f.svc.CompleteLesson(ctx)
	assert.True(t, errors.As(err, &serr), "cannot complete mid-lesson")
}

func TestSkip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(2, false)})
	_, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)

	fb, err := f.svc.Skip(ctx)
	require.NoError(t, err)
	assert.False(t, fb.IsCorrect)

	cfg := DefaultConfig()
	cfg.AllowSkip = false
	strict := newFixture(t, cfg)
	_, err = strict.svc.Skip(ctx)
	assert.True(t, errors.Is(err, ErrSkipNotAllowed))
}

func TestRestartUsesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(3, false)})

	first, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)
	require.NoError(t, f.svc.QuitLesson())
	second, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, f.mock.CallCount())

	assert.True(t, f.svc.Regenerate(ctx, "greetings-basics"))
	_, cached := f.svc.CachedLesson("greetings-basics")
	assert.False(t, cached)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, DefaultConfig(), llm.MockResponse{Text: choiceLesson(1, false)})
	_, err := f.svc.StartLesson(ctx, "greetings-basics")
	require.NoError(t, err)
	playAll(t, f.svc, "hola")
	_, err = f.svc.CompleteLesson(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx))
	assert.Empty(t, f.svc.CompletedIDs())
	_, cached := f.svc.CachedLesson("greetings-basics")
	assert.False(t, cached)
	totals, err := f.svc.Totals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals)
}
