// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package cache

import (
	"sync"
	"time"
)

// entry is a node in the LRU list.
type entry[K comparable, V any] struct {
	key       K
	value     V
	prev      *entry[K, V]
	next      *entry[K, V]
	expiresAt time.Time
}

// LRU is a thread-safe least recently used cache with per-entry TTL.
//
// Key features:
//   - O(1) Get, Add, Remove and eviction
//   - TTL per entry with lazy expiration
//   - Injectable clock for tests
//
// A doubly-linked list keeps recency order and a map gives O(1) lookup.
type LRU[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[K]*entry[K, V]

	// head.next is the most recently used, tail.prev the least
	head *entry[K, V]
	tail *entry[K, V]

	hits   int64
	misses int64
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewLRU creates a cache holding at most capacity entries, each living ttl
// unless added with AddWithTTL.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration, opts ...Option) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[K]*entry[K, V], capacity),
		head:     &entry[K, V]{},
		tail:     &entry[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key if present and not expired, and marks it
// most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		if c.now().After(e.expiresAt) {
			c.removeEntry(e)
			c.misses++
			var zero V
			return zero, false
		}
		c.moveToFront(e)
		c.hits++
		return e.value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Add stores value under key with the default TTL.
func (c *LRU[K, V]) Add(key K, value V) {
	c.AddWithTTL(key, value, c.ttl)
}

// AddWithTTL stores value under key for ttl. When the cache is full the
// least recently used entry is evicted.
func (c *LRU[K, V]) AddWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		return true
	}
	return false
}

// Len returns the number of entries, expired ones included.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes expired entries and returns how many it removed.
func (c *LRU[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			removed++
		}
		e = prev
	}
	return removed
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[K, V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU[K, V]) addToFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[K, V]) moveToFront(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[K, V]) removeEntry(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU[K, V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
