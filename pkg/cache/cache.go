// Package cache provides a thread-safe LRU cache for compiled artifacts.
//
// Functions use it to avoid re-compiling the same inputs on every call: split
// separators compiled to regular expressions, date patterns compiled to
// formatters and time zone names resolved to locations. Compilation is
// deterministic, so a cached value is always equivalent to a fresh one.
//
// # Example
//
//	c := cache.New[*regexp.Regexp](256)
//	re, err := c.GetOrCreate(`\s*,\s*`, func() (*regexp.Regexp, error) {
//	    return regexp.Compile(`\s*,\s*`)
//	})
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is used when New receives a non-positive capacity.
const DefaultCapacity = 256

type entry[V any] struct {
	key   string
	value V
}

// Cache is a thread-safe LRU (Least Recently Used) cache keyed by string.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache[V any] struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, DefaultCapacity is used.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a value and moves it to the front (MRU).
func (c *Cache[V]) Get(key string) (V, bool) {
	var value V
	c.mu.RLock()
	el, ok := c.items[key]
	if ok {
		value = el.Value.(*entry[V]).value
	}
	// already at the front: no write lock needed
	alreadyFront := ok && c.ll.Front() == el
	c.mu.RUnlock()
	if !ok {
		return value, false
	}

	if !alreadyFront {
		// Re-check under the write lock; the entry may have been evicted or
		// replaced.
		c.mu.Lock()
		el, ok = c.items[key]
		if ok {
			c.ll.MoveToFront(el)
			value = el.Value.(*entry[V]).value
		}
		c.mu.Unlock()

		if !ok {
			var zero V
			return zero, false
		}
	}
	return value, true
}

// Set inserts or replaces a value.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry[V]{key: key, value: value})
	c.items[key] = el
}

// GetOrCreate returns the cached value for key, or calls create, caches its
// result and returns it. Errors are not cached.
func (c *Cache[V]) GetOrCreate(key string, create func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache[V]) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}
