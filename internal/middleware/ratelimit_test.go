package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-api/internal/service"
	"github.com/noah-isme/course-api/pkg/ratelimit"
)

func newLimitedEngine(l limiter, metricsSvc *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(l, metricsSvc, nil))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	metricsSvc := service.NewMetricsService()
	r := newLimitedEngine(ratelimit.New(ratelimit.NewMemoryStore(), 2, time.Minute), metricsSvc)

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "RATE_LIMITED")

	rec := httptest.NewRecorder()
	metricsSvc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "rate_limited_requests_total 1")
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true}, errors.New("redis: connection refused")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newLimitedEngine(brokenLimiter{}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryAfterSecondsRoundsUp(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 2, retryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metricsSvc := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/teachers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teachers/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teachers/2", nil))

	series, err := testutil.GatherAndCount(metricsSvc.Registry(), "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)
}

func TestMetricsMiddlewareLabelsUnmatchedByPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metricsSvc := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metricsSvc))
	r.GET("/teachers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	families, err := metricsSvc.Registry().Gather()
	require.NoError(t, err)
	var paths []string
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "path" {
					paths = append(paths, label.GetValue())
				}
			}
		}
	}
	assert.Equal(t, []string{"/missing"}, paths)
}
