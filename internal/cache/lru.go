package cache

import (
	"github.com/bluele/gcache"
)

// LRU is a capacity-bounded store that evicts the least recently used entry
// once full
type LRU[K comparable, V any] struct {
	gc    gcache.Cache
	stale func(V) bool
}

// NewLRU creates an LRU holding at most size entries. Entries for which
// stale reports true are treated as missing.
func NewLRU[K comparable, V any](size int, stale func(V) bool) *LRU[K, V] {
	if stale == nil {
		stale = func(V) bool { return false }
	}
	return &LRU[K, V]{
		gc:    gcache.New(size).LRU().Build(),
		stale: stale,
	}
}

// Get retrieves a value, returning (value, true) if found and not stale
func (l *LRU[K, V]) Get(key K) (V, bool) {
	var zero V
	raw, err := l.gc.Get(key)
	if err != nil {
		return zero, false
	}
	value, ok := raw.(V)
	if !ok || l.stale(value) {
		return zero, false
	}
	return value, true
}

// Set stores a value, evicting the least recently used entry when full
func (l *LRU[K, V]) Set(key K, value V) {
	// gcache only fails Set when a loader or serializer rejects the value;
	// neither is configured here.
	_ = l.gc.Set(key, value)
}

// Size returns the number of items (including stale)
func (l *LRU[K, V]) Size() int {
	return l.gc.Len(false)
}

// Close drops every entry
func (l *LRU[K, V]) Close() {
	l.gc.Purge()
}
