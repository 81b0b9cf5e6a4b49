package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blood-disease-chatbot/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CorrelationIDKey))
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders(t *testing.T) {
	rec := get(newRouter(SecurityHeaders()), nil)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"), "test mode is not release mode")
}

func TestCorrelationID(t *testing.T) {
	r := newRouter(CorrelationID())

	rec := get(r, map[string]string{"X-Correlation-ID": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "abc-123", rec.Body.String())

	rec = get(r, nil)
	generated := rec.Header().Get("X-Correlation-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	get(newRouter(CorrelationID(), RequestLogger(logger)), map[string]string{"X-Correlation-ID": "req-1"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["correlation_id"])
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRateLimiter(t *testing.T) {
	rl, err := NewRateLimiter(domain.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2, MaxClients: 2})
	require.NoError(t, err)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients have separate buckets")

	rl.Allow("c")
	assert.Equal(t, 2, rl.Clients())
	assert.True(t, rl.Allow("a"), "evicted clients start with a fresh bucket")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, err := NewRateLimiter(domain.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})
	require.NoError(t, err)
	r := newRouter(CorrelationID(), rl.Middleware())

	assert.Equal(t, http.StatusOK, get(r, nil).Code)

	rec := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrCodeRateLimit, body.Code)
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(time.Minute))
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	rec := get(r, nil)
	assert.JSONEq(t, `{"deadline":true}`, rec.Body.String())
}
