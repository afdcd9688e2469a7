package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mindful_server/internal/dao/gormdb/gormtest"
	"mindful_server/internal/handler"
	"mindful_server/internal/infrastructure/middleware"
	"mindful_server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, health *handler.HealthHandler) *gin.Engine {
	t.Helper()
	repos := gormtest.NewRepositories(t)
	handlers := handler.NewHandlers(service.NewServices(service.Deps{Repos: repos}))
	limiter := middleware.NewRateLimiter(0.001, 1)

	engine := gin.New()
	NewRouter(handlers, health, limiter.Handler()).RegisterRoutes(engine)
	return engine
}

func TestRouteTable(t *testing.T) {
	engine := newEngine(t, handler.NewHealthHandler())

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/users", "GET /api/users", "GET /api/users/:id", "PUT /api/users/:id",
		"DELETE /api/users/:id", "GET /api/users/mood/:mood", "POST /api/users/:id/mood",
		"GET /api/users/:id/mood-history",
		"POST /api/posts", "GET /api/posts", "GET /api/posts/:id", "PUT /api/posts/:id",
		"DELETE /api/posts/:id", "GET /api/posts/user/:id", "PATCH /api/posts/:id/like",
		"PATCH /api/posts/:id/supportive", "GET /api/posts/mood/:mood", "GET /api/posts/filter/supportive",
		"POST /api/sessions", "GET /api/sessions", "GET /api/sessions/user/:id", "GET /api/sessions/:id",
		"PUT /api/sessions/:id", "DELETE /api/sessions/:id",
		"POST /api/livesessions", "GET /api/livesessions",
		"POST /api/journal/analyze", "POST /api/analyze",
		"GET /healthz", "GET /metrics",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestStaticSegmentsWinOverIDs(t *testing.T) {
	engine := newEngine(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/filter/supportive", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/mood/happy", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	health := handler.NewHealthHandler().
		Register("database", func(context.Context) error { return nil }, true).
		Register("cache", func(context.Context) error { return errors.New("down") }, false)
	engine := newEngine(t, health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"status":"OK","checks":{"database":"up","cache":"down"}}`, w.Body.String())

	health.Register("database", func(context.Context) error { return errors.New("gone") }, true)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newEngine(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestJournalIsRateLimited(t *testing.T) {
	engine := newEngine(t, nil)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"text":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}
