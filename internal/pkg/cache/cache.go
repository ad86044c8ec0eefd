package cache

import (
	"sync"
	"time"
)

// Cache is a bounded TTL store for raw provider payloads, keyed by
// endpoint+parameters. Expired entries are kept: callers that fail to refresh
// may still serve the stale value, so a degraded provider degrades to old
// data instead of no data.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	order      []string // insertion order for eviction
	ttl        time.Duration
	maxEntries int
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	return &Cache{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the cached value and whether it is still fresh. A stale value
// is returned with fresh=false rather than dropped.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.data, time.Now().Before(e.expiresAt)
}

// Set stores a value, evicting the oldest-inserted entry when full.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = &entry{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Size returns the number of stored entries, fresh or stale.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			return
		}
	}
}
