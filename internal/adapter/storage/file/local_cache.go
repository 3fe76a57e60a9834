package file

import (
	"context"
	"sync"
	"time"
)

// LocalCache is an in-process idempotency cache for deployments that
// run on the file store without Redis. Entries expire lazily on Get.
type LocalCache struct {
	mu      sync.Mutex
	entries map[string]localCacheEntry
}

type localCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewLocalCache creates an empty in-process cache.
func NewLocalCache() *LocalCache {
	return &LocalCache{entries: make(map[string]localCacheEntry)}
}

// Get returns the cached value, or nil if absent or expired.
func (c *LocalCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a value with TTL.
func (c *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = localCacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}
