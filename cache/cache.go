// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Thread-safe cache using sync.Map with background cleanup

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	data      any
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache stores values for a default TTL. A non-positive TTL keeps entries
// until they are deleted.
type Cache struct {
	store sync.Map
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

func (c *Cache) Get(key string) (any, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if e.expired(time.Now()) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	e := entry{data: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Close stops the cleanup goroutine. The cache stays readable.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

func (c *Cache) sweep(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if val.(entry).expired(now) {
			c.store.Delete(key)
		}
		return true
	})
}
