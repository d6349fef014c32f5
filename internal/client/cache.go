package client

import "sync"

// Cache is a read cache keyed by resource path ("/tasks", "/tasks/42").
// Queries fill it on miss; mutations overwrite or invalidate affected keys.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func (c *Cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops the given keys so the next read goes to the server.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
}
