package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func newTestRouter(db Pinger) (*gin.Engine, *Metrics, *test.Hook) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	logger, hook := test.NewNullLogger()
	log := logrus.NewEntry(logger)

	r := gin.New()
	r.Use(RequestLogger(log), metrics.Middleware())
	NewHandler(db, reg, log).Register(r)
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, metrics, hook
}

func TestHealthEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(fakePinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive":true`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/database", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":true`)
}

func TestDatabaseDown(t *testing.T) {
	r, _, _ := newTestRouter(fakePinger{err: errors.New("refused")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/database", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":false`)
}

func TestMetricsUseRoutePattern(t *testing.T) {
	r, metrics, _ := newTestRouter(fakePinger{})

	for _, path := range []string{"/items/1", "/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count := testutil.ToFloat64(metrics.HttpRequests.WithLabelValues(http.MethodGet, "/items/:id", "204"))
	assert.Equal(t, float64(2), count)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_http_requests_total")
}

func TestRequestLoggerKeepsCallerRequestID(t *testing.T) {
	r, _, hook := newTestRouter(fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/items/9", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "abc-123", hook.LastEntry().Data["request_id"])
	assert.Equal(t, http.StatusNoContent, hook.LastEntry().Data["status"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
