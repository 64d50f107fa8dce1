package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive/mathcat/internal/config"
	"github.com/pawsitive/mathcat/internal/homework"
	"github.com/pawsitive/mathcat/internal/llm"
	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
	"github.com/pawsitive/mathcat/internal/store"
	"github.com/pawsitive/mathcat/internal/tutor"
)

var wednesday10am = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type testServer struct {
	handler  http.Handler
	store    *store.Store
	provider *llm.MockProvider
}

func newTestServer(t *testing.T, replies ...llm.MockResponse) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	gen := problemgen.New(nil, problemgen.NewRand(1))
	clock := rewards.ClockFunc(func() time.Time { return wednesday10am })
	svc := practice.NewService(st, gen, practice.WithClock(clock))
	chat := tutor.NewChat(st, gen, tutor.WithClock(clock.Now))
	provider := llm.NewMockProvider(replies...)

	srv := NewServer(config.Default().Server, svc, chat, st,
		WithHomework(homework.NewService(provider)),
		WithDefaultUser("kid"),
	)
	return &testServer{handler: srv.Router(), store: st, provider: provider}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = ts.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, code)

	require.NoError(t, ts.store.Close())
	code, env = ts.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_ready", env.Error.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/v1/standards", nil)
	require.Equal(t, http.StatusOK, code)
	list := decodeData[struct {
		Standards []standards.Standard `json:"standards"`
		Total     int                  `json:"total"`
	}](t, env)
	assert.Equal(t, len(standards.All()), list.Total)

	code, env = ts.do(t, http.MethodGet, "/api/v1/standards?domain=g", nil)
	require.Equal(t, http.StatusOK, code)
	list = decodeData[struct {
		Standards []standards.Standard `json:"standards"`
		Total     int                  `json:"total"`
	}](t, env)
	require.NotEmpty(t, list.Standards)
	for _, s := range list.Standards {
		assert.Equal(t, standards.DomainG, s.DomainCode)
	}

	code, env = ts.do(t, http.MethodGet, "/api/v1/standards/7-rp-1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7-rp-1", decodeData[standards.Standard](t, env).ID)

	code, env = ts.do(t, http.MethodGet, "/api/v1/standards/8-rp-1", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Error.Code)

	for _, path := range []string{"/api/v1/domains", "/api/v1/levels", "/api/v1/badges"} {
		code, env = ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, code, path)
		assert.True(t, env.Success, path)
	}
}

func TestProblemAndAnswerFlow(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/v1/problems", map[string]any{"standardId": "7-ns-1"})
	require.Equal(t, http.StatusOK, code)
	p := decodeData[problemgen.Problem](t, env)
	assert.Equal(t, "7-ns-1", p.StandardID)
	require.NotEmpty(t, p.CorrectAnswer)

	code, env = ts.do(t, http.MethodPost, "/api/v1/answers", map[string]any{
		"userId":  "kid",
		"problem": p,
		"answer":  p.CorrectAnswer,
	})
	require.Equal(t, http.StatusOK, code)
	out := decodeData[struct {
		Correct bool `json:"isCorrect"`
		Player  struct {
			XP            int `json:"xp"`
			TotalProblems int `json:"totalProblems"`
		} `json:"player"`
	}](t, env)
	assert.True(t, out.Correct)
	assert.Equal(t, 1, out.Player.TotalProblems)
	assert.Positive(t, out.Player.XP)

	var raw struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &raw))
	assert.Equal(t, false, raw.Result["newLevel"], "newLevel is a boolean")
	assert.IsType(t, []any{}, raw.Result["newBadges"])
	assert.Equal(t, float64(35), raw.Result["xpEarned"])

	code, env = ts.do(t, http.MethodGet, "/api/v1/players/kid/attempts?limit=5", nil)
	require.Equal(t, http.StatusOK, code)
	attempts := decodeData[struct {
		Total int `json:"total"`
	}](t, env)
	assert.Equal(t, 1, attempts.Total)

	code, env = ts.do(t, http.MethodGet, "/api/v1/players/kid/progress", nil)
	require.Equal(t, http.StatusOK, code)
	progress := decodeData[struct {
		Stats struct {
			TotalProblems int `json:"totalProblems"`
			Accuracy      int `json:"accuracy"`
		} `json:"stats"`
	}](t, env)
	assert.Equal(t, 1, progress.Stats.TotalProblems)
	assert.Equal(t, 100, progress.Stats.Accuracy)
}

func TestSubmitAnswerErrors(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/v1/answers", map[string]any{"answer": "4"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_request", env.Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/answers", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailuresAreReported(t *testing.T) {
	ts := newTestServer(t)
	p := map[string]any{"id": "p1", "standardId": "7-ns-1", "question": "What is -3 + 7?", "correctAnswer": "4"}
	require.NoError(t, ts.store.Close())

	code, env := ts.do(t, http.MethodPost, "/api/v1/answers", map[string]any{"userId": "kid", "problem": p, "answer": "4"})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "store_unavailable", env.Error.Code)

	code, env = ts.do(t, http.MethodGet, "/api/v1/players/kid/progress", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "store_unavailable", env.Error.Code)
}

func TestGetPlayerDefaults(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/v1/players/newbie", nil)
	require.Equal(t, http.StatusOK, code)
	got := decodeData[struct {
		Level struct {
			Level int    `json:"level"`
			Title string `json:"title"`
		} `json:"level"`
		Goals []json.RawMessage `json:"dailyGoals"`
	}](t, env)
	assert.Equal(t, 1, got.Level.Level)
	assert.Equal(t, "Math Kitten", got.Level.Title)
	assert.NotEmpty(t, got.Goals)
}

func TestListAttemptsBadLimit(t *testing.T) {
	ts := newTestServer(t)

	for _, limit := range []string{"zero", "0", "-3"} {
		code, _ := ts.do(t, http.MethodGet, "/api/v1/players/kid/attempts?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, code, limit)
	}
}

func TestStudySessionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/v1/players/kid/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	sess := decodeData[struct {
		ID string `json:"id"`
	}](t, env)
	require.NotEmpty(t, sess.ID)

	path := "/api/v1/players/kid/sessions/" + sess.ID + "/end"
	code, _ = ts.do(t, http.MethodPost, path, map[string]any{"standardsWorkedOn": []string{"7-rp-1"}})
	assert.Equal(t, http.StatusOK, code)

	code, env = ts.do(t, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "session_ended", env.Error.Code)

	code, _ = ts.do(t, http.MethodPost, "/api/v1/players/kid/sessions/missing/end", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestResetPlayer(t *testing.T) {
	ts := newTestServer(t)

	_, env := ts.do(t, http.MethodPost, "/api/v1/problems", nil)
	p := decodeData[problemgen.Problem](t, env)
	code, _ := ts.do(t, http.MethodPost, "/api/v1/answers", map[string]any{"problem": p, "answer": p.CorrectAnswer})
	require.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, http.MethodDelete, "/api/v1/players/kid", nil)
	assert.Equal(t, http.StatusNoContent, code)

	_, env = ts.do(t, http.MethodGet, "/api/v1/players/kid/attempts", nil)
	assert.Equal(t, 0, decodeData[struct {
		Total int `json:"total"`
	}](t, env).Total)
}

func TestTutorEndpoints(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodPost, "/api/v1/tutor", map[string]any{"userId": "kid", "message": "hello!"})
	require.Equal(t, http.StatusOK, code)
	ex := decodeData[struct {
		Tutor struct {
			Content string `json:"content"`
		} `json:"tutor"`
	}](t, env)
	assert.Contains(t, ex.Tutor.Content, "7th grade math tutor")

	code, env = ts.do(t, http.MethodGet, "/api/v1/players/kid/chat", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, decodeData[struct {
		Total int `json:"total"`
	}](t, env).Total)

	code, _ = ts.do(t, http.MethodDelete, "/api/v1/players/kid/chat", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, env = ts.do(t, http.MethodPost, "/api/v1/tutor", map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestHomeworkEndpoint(t *testing.T) {
	ts := newTestServer(t, llm.MockResponse{Text: "What do you get if you add 5 to both sides?"})

	code, env := ts.do(t, http.MethodPost, "/api/v1/homework", map[string]any{
		"userId": "kid",
		"text":   "x - 5 = 12",
		"messageHistory": []map[string]string{
			{"role": "student", "content": "help"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "What do you get if you add 5 to both sides?",
		decodeData[map[string]string](t, env)["response"])

	require.Len(t, ts.provider.Calls, 1)
	assert.Len(t, ts.provider.Calls[0].Messages, 2)
}

func TestHomeworkEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		reply    llm.MockResponse
		body     map[string]any
		wantCode int
		wantKind homework.Kind
	}{
		{"empty request", llm.MockResponse{}, map[string]any{}, http.StatusBadRequest, homework.KindBadRequest},
		{"bad image", llm.MockResponse{}, map[string]any{"image": "data:image/png;base64,abc"}, http.StatusBadRequest, homework.KindBadImage},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}}, map[string]any{"text": "help"}, http.StatusTooManyRequests, homework.KindRateLimited},
		{"out of credit", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("credit balance is too low")}}, map[string]any{"text": "help"}, http.StatusServiceUnavailable, homework.KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.reply)
			code, env := ts.do(t, http.MethodPost, "/api/v1/homework", tt.body)
			assert.Equal(t, tt.wantCode, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, string(tt.wantKind), env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestHomeworkDisabled(t *testing.T) {
	st, err := store.Open("file:api_homework_disabled?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	gen := problemgen.New(nil, problemgen.NewRand(1))
	srv := NewServer(config.Default().Server, practice.NewService(st, gen), tutor.NewChat(st, gen), st)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/homework", strings.NewReader(`{"text":"help"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/problems", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req.WithContext(context.Background()))

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
