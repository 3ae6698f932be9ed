package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/course"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/rewards"
	"github.com/abhisek/lingua/internal/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const twoQuestions = `{"exercises":[
 {"id":"a","type":"multiple_choice","question":"Hello?","options":["hola","adiós","gracias","sí"],"correctAnswer":"hola"},
 {"id":"b","type":"translate","question":"Translate: thank you","correctAnswer":"gracias"}
]}`

func newRouter(t *testing.T, responses ...llm.MockResponse) *gin.Engine {
	t.Helper()
	p := progress.Load(context.Background(), progress.NewMemoryKV(), nil)
	gen := content.New(llm.NewMockProvider(responses...), p, content.DefaultConfig(), nil)
	svc := course.New(p, gen, rewards.NewLedger(nil, nil), course.DefaultConfig(), nil)
	return NewRouter(RouterConfig{Course: svc, AllowOrigins: []string{"http://localhost:3000"}})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lingua_active_sessions")
}

func TestListLessons(t *testing.T) {
	w := do(t, newRouter(t), http.MethodGet, "/api/lessons", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[struct {
		Lessons []LessonView `json:"lessons"`
	}](t, w)
	require.NotEmpty(t, got.Lessons)
	assert.Equal(t, "greetings-basics", got.Lessons[0].ID)
	assert.False(t, got.Lessons[0].IsLocked)
	assert.True(t, got.Lessons[3].IsLocked)
	assert.Contains(t, w.Body.String(), `"baseDifficulty":"beginner"`)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		code   string
	}{
		{"unknown lesson", http.MethodPost, "/api/lessons/nope/start", http.StatusNotFound, "lesson_not_found"},
		{"locked lesson", http.MethodPost, "/api/lessons/articles-gender/start", http.StatusForbidden, "lesson_locked"},
		{"no session", http.MethodGet, "/api/session", http.StatusConflict, "no_session"},
		{"advance without session", http.MethodPost, "/api/session/advance", http.StatusConflict, "no_session"},
		{"quit without session", http.MethodDelete, "/api/session", http.StatusConflict, "no_session"},
	}
	r := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[ErrorEnvelope](t, w).Error.Code)
		})
	}
}

func TestGenerationFailure(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"server", &llm.ErrProviderUnavailable{StatusCode: 500}, http.StatusBadGateway, "generation_server"},
		{"network", &llm.ErrRateLimit{}, http.StatusServiceUnavailable, "generation_network"},
		{"malformed", nil, http.StatusBadGateway, "generation_malformed_content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := llm.MockResponse{Err: tt.err}
			if tt.err == nil {
				resp.Text = "I cannot help with that."
			}
			w := do(t, newRouter(t, resp), http.MethodPost, "/api/lessons/greetings-basics/start", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode[ErrorEnvelope](t, w).Error.Code)
		})
	}
}

func TestLessonFlow(t *testing.T) {
	r := newRouter(t, llm.MockResponse{Text: twoQuestions})

	w := do(t, r, http.MethodPost, "/api/lessons/greetings-basics/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[startedLesson](t, w)
	assert.Equal(t, 2, started.Exercises)
	assert.Equal(t, "active", gjsonStatus(t, w.Body.String(), "state"))
	assert.NotContains(t, w.Body.String(), "correctAnswer", "answers stay hidden")

	w = do(t, r, http.MethodPost, "/api/session/answer", session.Submission{Choice: "hola"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[session.Feedback](t, w).IsCorrect)

	w = do(t, r, http.MethodPost, "/api/session/answer", session.Submission{Choice: "hola"})
	assert.Equal(t, http.StatusConflict, w.Code, "awaiting advance")

	w = do(t, r, http.MethodPost, "/api/session/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/session/answer", session.Submission{FreeText: "  Gracias "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[session.Feedback](t, w).IsCorrect)

	w = do(t, r, http.MethodPost, "/api/session/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", gjsonStatus(t, w.Body.String(), ""))

	w = do(t, r, http.MethodPost, "/api/session/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	comp := decode[session.Completion](t, w)
	assert.True(t, comp.Perfect)
	assert.Equal(t, 30, comp.XPEarned)

	w = do(t, r, http.MethodGet, "/api/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ProgressView{
		XP:               2*session.XPPerCorrectAnswer + 30,
		WordsLearned:     2,
		LessonsCompleted: 1,
		CompletedIDs:     []string{"greetings-basics"},
	}, decode[ProgressView](t, w))

	w = do(t, r, http.MethodPost, "/api/reset", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/progress", nil)
	assert.Zero(t, decode[ProgressView](t, w).XP)
}

func TestBadBody(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/session/answer", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/lessons", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

// gjsonStatus reads the "status" field under prefix.
func gjsonStatus(t *testing.T, body, prefix string) string {
	t.Helper()
	path := "status"
	if prefix != "" {
		path = fmt.Sprintf("%s.status", prefix)
	}
	return gjson.Get(body, path).String()
}
