package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the storefront's 30-second data cache window.
const DefaultTTL = 30 * time.Second

type entry struct {
	value  any
	expiry time.Time
}

// Cache is a TTL key/value map. Construct one per consumer rather than
// sharing a package singleton so tests get isolated instances.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiry: c.now().Add(ttl)}
}

// Get returns the cached value, or nil and false if absent or expired.
// Expired entries are removed on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
