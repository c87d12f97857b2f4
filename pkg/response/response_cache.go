package response

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	. "mygene/pkg"
	"mygene/pkg/config"
	. "mygene/pkg/tracing"

	"mygene/internal/core/port"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResponseCache caches successful GET responses. The backend is pluggable:
// in-process for a single instance, Redis when several share state. The
// middleware must be mounted behind authentication; entries are keyed by the
// verified user id and would otherwise leak protected data across callers.
type ResponseCache struct {
	backend port.CacheRepository
	config  map[string]config.CacheConfig
	logger  *zap.Logger
	metrics *AppMetrics
}

type CachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Timestamp  time.Time           `json:"timestamp"`
}

func NewResponseCache(backend port.CacheRepository, logger *zap.Logger, metrics *AppMetrics) *ResponseCache {
	configs := map[string]config.CacheConfig{
		"/profiles": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"default": {
			TTL:     1 * time.Second,
			Enabled: true,
		},
	}

	return &ResponseCache{
		backend: backend,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()

			status := c.Writer.Status()
			if status >= 200 && status < 300 {
				rc.invalidateAfterWrite(c)
			}
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rc.config[path]
		if !exists {
			cfg = rc.config["default"]
		}

		if !cfg.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path)

		if raw, err := rc.backend.Get(c.Request.Context(), cacheKey); err == nil {
			var cached CachedResponse

			if err := json.Unmarshal(raw, &cached); err == nil && time.Since(cached.Timestamp) < cfg.TTL {
				_, span := CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
					attribute.String("cache.age", time.Since(cached.Timestamp).String()),
				})
				defer span.End()

				span.SetAttributes(
					attribute.Int("cache.status_code", cached.StatusCode),
					attribute.Int("cache.body_size", len(cached.Body)),
					attribute.String("cache.ttl", cfg.TTL.String()),
				)

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				rc.logger.Debug("Cache hit",
					zap.String("path", path),
					zap.String("cache_key", cacheKey),
					zap.Duration("age", time.Since(cached.Timestamp)))

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}

			rc.backend.Delete(c.Request.Context(), cacheKey)
		}

		ctx, span := CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
		})
		defer span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		rc.logger.Debug("Cache miss",
			zap.String("path", path),
			zap.String("cache_key", cacheKey))

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			_, cacheSpan := CreateChildSpan(ctx, "cache.response.store", []attribute.KeyValue{
				attribute.String("cache.key", cacheKey),
				attribute.String("cache.path", path),
				attribute.Int("cache.status_code", writer.statusCode),
				attribute.Int("cache.body_size", writer.body.Len()),
				attribute.String("cache.ttl", cfg.TTL.String()),
			})
			cacheSpan.End()

			cached := CachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}

			if raw, err := json.Marshal(cached); err == nil {
				rc.backend.Set(ctx, cacheKey, raw, cfg.TTL)
			}

			c.Header("X-Cache", "MISS")
		}
	}
}

func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	if userID, exists := c.Get("x-user-id"); exists {
		keyParts = append(keyParts, fmt.Sprintf("user_%v", userID))
	} else {
		keyParts = append(keyParts, fmt.Sprintf("ip_%s", GetClientIP(c)))
	}

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// invalidateAfterWrite drops cached entries for the mutated route and its
// parent collection, so a write shows up on the next read instead of after
// the TTL expires.
func (rc *ResponseCache) invalidateAfterWrite(c *gin.Context) {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}

	rc.InvalidatePath(c, path)

	if idx := strings.LastIndex(path, "/"); idx > 0 {
		rc.InvalidatePath(c, path[:idx])
	}
}

// InvalidatePath drops every cached response for a path, regardless of user.
func (rc *ResponseCache) InvalidatePath(c *gin.Context, path string) {
	rc.backend.DeleteByPrefix(c.Request.Context(), fmt.Sprintf("cache:%s:", path))

	rc.logger.Debug("Cache invalidated", zap.String("path", path))
}

func (rc *ResponseCache) SetConfig(path string, cfg config.CacheConfig) {
	rc.config[path] = cfg
}

type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
