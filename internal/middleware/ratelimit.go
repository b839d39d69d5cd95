package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/service"
	appErrors "github.com/noah-isme/course-api/pkg/errors"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/ratelimit"
	"github.com/noah-isme/course-api/pkg/response"
)

type limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit rejects clients exceeding their request budget with 429. Limiter
// failures let the request through.
func RateLimit(l limiter, metricsSvc *service.MetricsService, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		decision, err := l.Allow(ctx, c.ClientIP())
		if err != nil {
			logger.WithContext(ctx, log).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !decision.Allowed {
			metricsSvc.RecordRateLimited()
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
			response.Abort(c, appErrors.ErrRateLimited)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
