// Package cache provides concurrent key/value stores for memoized results
package cache

import (
	"sync"
	"time"
)

// Store is the behaviour shared by Cache and LRU
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Size() int
	Close()
}

// Cache is a generic thread-safe map whose entries expire according to a
// caller supplied staleness test
type Cache[K comparable, V any] struct {
	items map[K]V
	mu    sync.RWMutex
	stale func(V) bool
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache. Stale entries are hidden from Get immediately and
// removed by a background sweep every interval; an interval <= 0 disables
// the sweep.
func New[K comparable, V any](interval time.Duration, stale func(V) bool) *Cache[K, V] {
	if stale == nil {
		stale = func(V) bool { return false }
	}
	c := &Cache[K, V]{
		items: make(map[K]V),
		stale: stale,
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go c.cleanup(interval)
	}
	return c
}

// Get retrieves a value, returning (value, true) if found and not stale
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.items[key]
	if !exists || c.stale(value) {
		var zero V
		return zero, false
	}
	return value, true
}

// Set stores a value, replacing any previous entry
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

// Size returns the number of items (including stale)
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the background sweep and drops every entry. It is safe to
// call more than once.
func (c *Cache[K, V]) Close() {
	c.once.Do(func() { close(c.stop) })

	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.items)
}

// cleanup runs periodically to remove stale items
func (c *Cache[K, V]) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeStale()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[K, V]) removeStale() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, value := range c.items {
		if c.stale(value) {
			delete(c.items, key)
		}
	}
}
