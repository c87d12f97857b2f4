package context

import (
	"context"
	"sync"
)

// Current holds per-request metadata (request id, client ip, path). It rides
// the request context only; there is no process-wide instance, and identity
// is always passed explicitly rather than read from here.
type Current struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]interface{}),
	}
}

func (c *Current) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Current) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *Current) GetString(key string) (string, bool) {
	value := c.Get(key)
	if value == nil {
		return "", false
	}
	if str, ok := value.(string); ok {
		return str, true
	}
	return "", false
}

func (c *Current) GetInt(key string) (int, bool) {
	value := c.Get(key)
	if value == nil {
		return 0, false
	}
	if i, ok := value.(int); ok {
		return i, true
	}
	return 0, false
}

func (c *Current) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

func (c *Current) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.data[key]
	return exists
}

func (c *Current) All() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]interface{}, len(c.data))
	for k, v := range c.data {
		result[k] = v
	}
	return result
}

type contextKey string

const currentKey contextKey = "current"

func SetCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok
}

func GetCurrent(ctx context.Context) *Current {
	if current, ok := FromContext(ctx); ok {
		return current
	}

	return NewCurrent()
}
