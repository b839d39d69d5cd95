package requestid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderKey carries the correlation id in requests and responses.
	HeaderKey  = "X-Correlation-ID"
	contextKey = "correlation_id"
)

type ctxKey struct{}

// Middleware assigns a correlation ID to each incoming HTTP request, reusing the
// caller's header when present.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderKey)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), id))
		c.Writer.Header().Set(HeaderKey, id)

		c.Next()
	}
}

// Value returns the correlation ID stored in the Gin context.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// NewContext returns a copy of ctx carrying the correlation id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the correlation id placed by Middleware.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
