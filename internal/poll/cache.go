// Package poll provides a shared query cache for screens that refresh the
// same remote data on a timer. Multiple observers of one endpoint share a
// single in-flight request and one cached result instead of each mounting
// their own interval.
package poll

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetch loads fresh data for a cache key.
type Fetch func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a key-addressed result cache with age-based refresh.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[string]entry
	now     func() time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds a cache key from an endpoint and its parameters.
func Key(endpoint string, params ...string) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + strings.Join(params, "&")
}

// Get returns the cached value for key when it is younger than maxAge,
// otherwise runs fetch. Concurrent callers with a stale entry share one
// fetch; they all observe the same result or the same error. Errors are
// not cached, so the next caller retries.
func (c *Cache) Get(ctx context.Context, key string, maxAge time.Duration, fetch Fetch) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < maxAge {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	value, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: value, fetchedAt: c.now()}
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate drops the cached entry for key, forcing the next Get to fetch.
// Used after mutations (accept, decline, report submission) so lists
// reflect the change immediately.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
