package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func TestDailyQuota_AllowUntilLimit(t *testing.T) {
	quota := NewDailyQuota(2)

	assert.True(t, quota.Allow())
	assert.True(t, quota.Allow())
	assert.False(t, quota.Allow())
	assert.Equal(t, int64(2), quota.Count())
	assert.Equal(t, int64(0), quota.Remaining())
}

func TestIPRateLimiter_PerIPIsolation(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(0), 1)

	// Only reads from the limiter map; a second IP gets a fresh bucket.
	a := limiter.GetLimiter("10.0.0.1")
	b := limiter.GetLimiter("10.0.0.2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, limiter.GetLimiter("10.0.0.1"))
}

func newTestRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_QuotaExceeded(t *testing.T) {
	ipLimiter := NewIPRateLimiter(rate.Inf, 1)
	quota := NewDailyQuota(1)
	r := newTestRouter(RateLimit(ipLimiter, quota, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "QUOTA_EXCEEDED")
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
}

func TestRateLimit_PerIPThrottled(t *testing.T) {
	ipLimiter := NewIPRateLimiter(rate.Every(time.Hour), 0)
	quota := NewDailyQuota(100)
	r := newTestRouter(RateLimit(ipLimiter, quota, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(SecurityHeaders())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTSBehindTLSProxy(t *testing.T) {
	r := newTestRouter(SecurityHeaders())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age")
}