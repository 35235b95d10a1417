package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_RejectsAfterLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2)
	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 1)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.allow("10.0.0.1"))
}

func sessionRouter() *gin.Engine {
	router := gin.New()
	router.Use(Session(time.Hour, false))
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })
	return router
}

func TestSession_IssuesCookie(t *testing.T) {
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, cookies[0].Value, w.Body.String())
}

func TestSession_KeepsValidCookie(t *testing.T) {
	const id = "0f8fad5b-d9cb-469f-a165-70867728950e"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)

	assert.Equal(t, id, w.Body.String())
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "../../etc/passwd"})
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)

	assert.NotEqual(t, "../../etc/passwd", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestSecurityHeaders_AllowsChartOrigin(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders("http://backend:8000"), RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "img-src 'self' http://backend:8000")
	assert.Contains(t, csp, "style-src 'self' 'unsafe-inline'")
	assert.NotContains(t, csp, "form-action")
	assert.Len(t, w.Header().Get("X-Request-ID"), 8)
}

func TestRateLimiter_CustomReject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1)
	router := gin.New()
	router.POST("/", rl.RateLimitWith(func(c *gin.Context) {
		c.String(http.StatusTooManyRequests, "slow down")
	}), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down", w.Body.String())
}
