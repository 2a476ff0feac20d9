package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"proveedores/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// ── RequestID ────────────────────────────────────────────────────────────────

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	r := newTestEngine(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = c.GetString(RequestIDKey) })

	w := do(r, http.MethodGet, "/x")
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	r := newTestEngine(RequestID())
	r.GET("/x", func(c *gin.Context) {})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

// ── ErrorHandler / Recovery ──────────────────────────────────────────────────

func TestErrorHandler_GenericBody(t *testing.T) {
	r := newTestEngine(RequestID(), ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(errors.New("dial tcp 10.0.0.1:27017: connection refused"))
	})

	w := do(r, http.MethodGet, "/x")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apierror.MensajeGenerico, decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorHandler_NoErrorsPassThrough(t *testing.T) {
	r := newTestEngine(ErrorHandler())
	r.GET("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	w := do(r, http.MethodGet, "/x")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery_Panic(t *testing.T) {
	r := newTestEngine(Logger(), Recovery())
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/x")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apierror.MensajeGenerico, decodeError(t, w))
}

// ── CORS ─────────────────────────────────────────────────────────────────────

func TestCORS_Preflight(t *testing.T) {
	r := newTestEngine(CORS())
	r.PATCH("/x", func(c *gin.Context) {})

	w := do(r, http.MethodOptions, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

// ── Timeout ──────────────────────────────────────────────────────────────────

func TestTimeout_SetsDeadline(t *testing.T) {
	r := newTestEngine(Timeout(time.Second))
	var hasDeadline bool
	r.GET("/x", func(c *gin.Context) { _, hasDeadline = c.Request.Context().Deadline() })

	do(r, http.MethodGet, "/x")
	assert.True(t, hasDeadline)
}

func TestTimeout_Disabled(t *testing.T) {
	r := newTestEngine(Timeout(0))
	var hasDeadline bool
	r.GET("/x", func(c *gin.Context) { _, hasDeadline = c.Request.Context().Deadline() })

	do(r, http.MethodGet, "/x")
	assert.False(t, hasDeadline)
}

// ── Rate limiter ─────────────────────────────────────────────────────────────

func TestMemoryLimiter_Window(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _, _ := l.Allow(ctx, "1.1.1.1")
	assert.True(t, ok)
	ok, _, _ = l.Allow(ctx, "1.1.1.1")
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, retry, err := l.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	ok, _, _ = l.Allow(ctx, "2.2.2.2")
	assert.True(t, ok, "other keys keep their own budget")

	now = now.Add(40 * time.Second)
	ok, _, _ = l.Allow(ctx, "1.1.1.1")
	assert.True(t, ok, "window reset")
}

func TestMemoryLimiter_Purge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(10, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = l.Allow(ctx, "a")
	now = now.Add(30 * time.Second)
	_, _, _ = l.Allow(ctx, "b")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, l.Purge())
	assert.Equal(t, 1, l.Len())
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	l := NewMemoryLimiter(50, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := l.Allow(ctx, "k"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestRateLimiter_429WithRetryAfter(t *testing.T) {
	r := newTestEngine(RateLimiter(NewMemoryLimiter(1, time.Minute)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x").Code)

	w := do(r, http.MethodGet, "/x")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, decodeError(t, w))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis: connection refused")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	r := newTestEngine(RateLimiter(failingLimiter{}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x").Code)
}
