package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Cache is a TTL key-value store for normalized upstream payloads. Values are
// the marshaled JSON bodies, so a repeat hit replays the response byte for
// byte. Get returns ok=false for keys never stored or stored longer than the
// entry's TTL ago.
type Cache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error
}

// InMemoryCache implements Cache with a mutex-guarded map. Expiry is lazy:
// a stale entry is deleted by the Get that observes it, there is no
// background sweep. The clock is injected so tests can advance time without
// sleeping.
type InMemoryCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

type entry struct {
	value     json.RawMessage
	expiresAt time.Time
}

// NewInMemoryCache creates an in-memory cache using the wall clock.
func NewInMemoryCache() *InMemoryCache {
	return NewInMemoryCacheWithClock(time.Now)
}

// NewInMemoryCacheWithClock creates an in-memory cache with a caller-supplied
// clock. For tests.
func NewInMemoryCacheWithClock(now func() time.Time) *InMemoryCache {
	return &InMemoryCache{
		data: make(map[string]entry),
		now:  now,
	}
}

// Get returns the stored payload if present and not expired.
func (c *InMemoryCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := c.data[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return e.value, true, nil
}

// Set stores the payload for ttl. Entries are replaced whole, so concurrent
// writers for the same key leave one writer's complete value, never a torn
// mix.
func (c *InMemoryCache) Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error {
	c.mu.Lock()
	c.data[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Len returns the number of physical entries, expired or not. For tests and
// debugging.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
