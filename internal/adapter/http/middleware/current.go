package middleware

import (
	ct "mygene/pkg/context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentMiddleware attaches per-request metadata to the request context.
// Identity is never read from here; handlers pass the owner id explicitly.
func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := ct.NewCurrent()

		requestID := c.GetHeader("X-Request-ID")

		if requestID == "" {
			requestID = uuid.New().String()
		}

		current.Set("request_id", requestID)
		current.Set("user_agent", c.Request.UserAgent())
		current.Set("ip_address", c.ClientIP())
		current.Set("method", c.Request.Method)
		current.Set("path", c.Request.URL.Path)

		ctx := ct.SetCurrent(c.Request.Context(), current)
		c.Request = c.Request.WithContext(ctx)

		c.Set("current", current)

		c.Next()
	}
}

func GetCurrent(c *gin.Context) *ct.Current {
	if current, ok := c.Get("current"); ok {
		if curr, ok := current.(*ct.Current); ok {
			return curr
		}
	}

	if current, ok := ct.FromContext(c.Request.Context()); ok {
		return current
	}

	return ct.NewCurrent()
}
