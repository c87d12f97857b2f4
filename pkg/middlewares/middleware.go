package middlewares

import (
	"context"
	"log/slog"
	"os"
	"time"

	"mygene/internal/adapter/database/memory"
	"mygene/internal/adapter/database/redis"
	"mygene/internal/core/port"
	. "mygene/pkg/config"
	. "mygene/pkg/response"
	. "mygene/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			statusLabel(status),
			duration,
		)
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *LokiLogger) *ResponseCache {
	return SetupGinMiddlewareWithConfig(router, serviceName, metrics, logger, GetDefaultConfig())
}

// SetupGinMiddlewareWithConfig registers the global middleware chain and
// returns the response cache (nil when disabled) instead of mounting it here.
// Cached bodies hold protected data, so the cache must sit behind the JWT
// middleware in the route layer, never in front of it.
func SetupGinMiddlewareWithConfig(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) *ResponseCache {
	httpsEnforcer := NewHTTPSEnforcer(logger.Logger.Logger)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(logger))

	var responseCache *ResponseCache

	if config.CacheEnabled {
		responseCache = NewResponseCache(newCacheBackend(), logger.Logger.Logger, metrics)
		for path, cacheConfig := range config.CacheConfigs {
			responseCache.SetConfig(path, cacheConfig)
		}
	}

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Logger.Logger, metrics)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(MetricsMiddleware(metrics))

	return responseCache
}

func newCacheBackend() port.CacheRepository {
	redisURL := os.Getenv("REDIS_URL")

	if redisURL == "" {
		return memory.NewMemoryRepository()
	}

	backend, err := redis.NewRedisRepository(context.Background(), redisURL)

	if err != nil {
		slog.Error("Failed to connect to redis, using in-process cache", "error", err)
		return memory.NewMemoryRepository()
	}

	return backend
}
