package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"student_dashboard_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c *client) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func newTestApp(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Database:  config.DatabaseConfig{Driver: "memory"},
		JWT:       config.JWTConfig{Secret: "app-test-secret", ExpireTime: time.Hour},
		Auth:      config.AuthConfig{AdminEmails: []string{"admin@example.com"}},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}

	application, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(application.Close)
	return &client{t: t, router: application.Router}
}

func (c *client) login(name, email string) string {
	c.t.Helper()
	code, _ := c.do(http.MethodPost, "/api/register", "", gin.H{"name": name, "email": email, "password": "password123"})
	require.Equal(c.t, http.StatusCreated, code)

	code, env := c.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(c.t, http.StatusOK, code)
	return decode[struct {
		Token string `json:"token"`
	}](c.t, env.Data).Token
}

type attemptView struct {
	ID            uint `json:"id"`
	AttemptNumber int  `json:"attemptNumber"`
	TotalScore    int  `json:"totalScore"`
	TotalPossible int  `json:"totalPossible"`
	Percentage    int  `json:"percentage"`
	TimeSpent     int  `json:"timeSpent"`
	IsCompleted   bool `json:"isCompleted"`
	IsSubmitted   bool `json:"isSubmitted"`
	Answers       []struct {
		QuestionIndex int `json:"questionIndex"`
	} `json:"answers"`
}

func quizBody() gin.H {
	return gin.H{
		"title":  "Cell biology",
		"course": "BIO101",
		"questions": []gin.H{
			{"text": "Powerhouse of the cell?", "options": []string{"Nucleus", "Mitochondria"}, "correctAnswer": 1, "points": 10},
			{"text": "Carries genetic code?", "options": []string{"DNA", "Lipid", "Sugar"}, "correctAnswer": 0, "points": 20},
		},
	}
}

func TestQuizAttemptFlow(t *testing.T) {
	c := newTestApp(t)
	admin := c.login("Admin", "admin@example.com")
	student := c.login("Student", "student@example.com")

	code, _ := c.do(http.MethodGet, "/api/quizzes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/admin/quizzes", student, quizBody())
	assert.Equal(t, http.StatusForbidden, code)

	bad := quizBody()
	bad["questions"] = []gin.H{{"text": "q", "options": []string{"a", "b"}, "correctAnswer": 2, "points": 1}}
	code, _ = c.do(http.MethodPost, "/api/admin/quizzes", admin, bad)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := c.do(http.MethodPost, "/api/admin/quizzes", admin, quizBody())
	require.Equal(t, http.StatusCreated, code)
	quizID := decode[struct {
		ID uint `json:"id"`
	}](t, env.Data).ID

	code, env = c.do(http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quizID), student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "correctAnswer")

	base := fmt.Sprintf("/api/quizzes/%d/attempts", quizID)
	code, env = c.do(http.MethodPost, base, student, nil)
	require.Equal(t, http.StatusCreated, code)
	attempt := decode[attemptView](t, env.Data)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, 30, attempt.TotalPossible)
	assert.Equal(t, 0, attempt.Percentage)

	answers := fmt.Sprintf("/api/attempts/%d/answers", attempt.ID)
	steps := []struct {
		question, option, score, pct int
	}{
		{0, 1, 10, 33},
		{1, 2, 10, 33},
		{1, 0, 30, 100},
	}
	for _, s := range steps {
		code, env = c.do(http.MethodPut, answers, student, gin.H{"questionIndex": s.question, "selectedOption": s.option})
		require.Equal(t, http.StatusOK, code)
		attempt = decode[attemptView](t, env.Data)
		assert.Equal(t, s.score, attempt.TotalScore)
		assert.Equal(t, s.pct, attempt.Percentage)
	}
	assert.Len(t, attempt.Answers, 2)

	code, _ = c.do(http.MethodPut, answers, student, gin.H{"questionIndex": 0, "selectedOption": -1})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(http.MethodPut, answers, student, gin.H{"questionIndex": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(http.MethodPut, answers, student, gin.H{"questionIndex": 5, "selectedOption": 0})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = c.do(http.MethodPut, answers, admin, gin.H{"questionIndex": 0, "selectedOption": 0})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = c.do(http.MethodGet, base+"/current", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, attempt.ID, decode[attemptView](t, env.Data).ID)

	submit := fmt.Sprintf("/api/attempts/%d/submit", attempt.ID)
	code, env = c.do(http.MethodPost, submit, student, nil)
	require.Equal(t, http.StatusOK, code)
	attempt = decode[attemptView](t, env.Data)
	assert.True(t, attempt.IsSubmitted)
	assert.True(t, attempt.IsCompleted)
	assert.GreaterOrEqual(t, attempt.TimeSpent, 0)

	code, _ = c.do(http.MethodPost, submit, student, nil)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = c.do(http.MethodPut, answers, student, gin.H{"questionIndex": 0, "selectedOption": 0})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodGet, base+"/current", student, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = c.do(http.MethodGet, base+"/best", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 30, decode[attemptView](t, env.Data).TotalScore)

	code, env = c.do(http.MethodPost, base, student, nil)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2, decode[attemptView](t, env.Data).AttemptNumber)

	code, env = c.do(http.MethodGet, "/api/attempts", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]attemptView](t, env.Data), 2)

	stats := fmt.Sprintf("/api/admin/quizzes/%d/statistics", quizID)
	code, _ = c.do(http.MethodGet, stats, student, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, env = c.do(http.MethodGet, stats, admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"quizId":%d,"count":1,"mean":100,"max":100,"min":100,"passRate":100}`, quizID), string(env.Data))

	code, _ = c.do(http.MethodDelete, fmt.Sprintf("/api/admin/quizzes/%d", quizID), admin, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodPost, base, student, nil)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = c.do(http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quizID), student, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodGet, "/api/attempts/abc", student, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(http.MethodGet, "/api/attempts/999", student, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAuthEndpoints(t *testing.T) {
	c := newTestApp(t)
	token := c.login("Ada", "ada@example.com")

	code, _ := c.do(http.MethodPost, "/api/register", "", gin.H{"name": "Ada", "email": "ada@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodPost, "/api/register", "", gin.H{"name": "Bob", "email": "not-an-email", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/api/login", "", gin.H{"email": "ada@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := c.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), `"role":"student"`)

	code, env = c.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "memory")
}

func TestAnnouncementEndpoints(t *testing.T) {
	c := newTestApp(t)
	admin := c.login("Admin", "admin@example.com")
	student := c.login("Student", "student@example.com")

	code, env := c.do(http.MethodPost, "/api/admin/announcements", admin, gin.H{
		"title": "Lab closed", "content": "No lab on Monday", "course": "BIO101", "priority": "high",
	})
	require.Equal(t, http.StatusCreated, code)
	id := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	type page struct {
		Total int64 `json:"total"`
	}
	code, env = c.do(http.MethodGet, "/api/announcements?course=BIO101", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(0), decode[page](t, env.Data).Total)

	code, _ = c.do(http.MethodPut, "/api/admin/announcements/"+id, admin, gin.H{"isPublished": true})
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodGet, "/api/announcements?course=BIO101", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), decode[page](t, env.Data).Total)

	code, _ = c.do(http.MethodPost, "/api/admin/announcements", admin, gin.H{"title": "x", "content": "y", "priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodDelete, "/api/admin/announcements/"+id, student, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = c.do(http.MethodDelete, "/api/admin/announcements/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodDelete, "/api/admin/announcements/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
