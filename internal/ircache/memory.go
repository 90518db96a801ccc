package ircache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/standardbeagle/irengine/internal/ir"
)

// MemoryCache is the in-memory tier: a bounded map keyed by Key, evicting
// the least recently used entry (by the time of its last Get or Put) once
// the entry count exceeds max. sync.Map keeps reads lock-free under concurrent worker
// access; eviction does an O(n) scan, acceptable at the entry counts this
// tier holds (thousands, not millions — the disk tier is for scale).
type MemoryCache struct {
	entries sync.Map // Key -> *memEntry
	count   int64
	max     int64

	hits   int64
	misses int64
}

type memEntry struct {
	doc      *ir.IRDocument
	lastUsed int64 // UnixNano of the last Get or Put; accessed atomically
}

// NewMemoryCache creates a bounded in-memory cache holding at most
// maxEntries documents.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{max: int64(maxEntries)}
}

// Get returns the cached document for key, if present.
func (c *MemoryCache) Get(key Key) (*ir.IRDocument, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&c.hits, 1)
	e := v.(*memEntry)
	atomic.StoreInt64(&e.lastUsed, time.Now().UnixNano())
	return e.doc, true
}

// Put stores doc under key, then evicts the least recently used entry if
// the cache is over capacity.
func (c *MemoryCache) Put(key Key, doc *ir.IRDocument) {
	entry := &memEntry{doc: doc, lastUsed: time.Now().UnixNano()}
	if _, loaded := c.entries.LoadOrStore(key, entry); loaded {
		c.entries.Store(key, entry)
		return
	}
	if atomic.AddInt64(&c.count, 1) > c.max {
		c.evictOldest()
	}
}

func (c *MemoryCache) evictOldest() {
	var oldestKey any
	oldestAt := time.Now().UnixNano()
	c.entries.Range(func(k, v any) bool {
		if at := atomic.LoadInt64(&v.(*memEntry).lastUsed); at < oldestAt {
			oldestAt = at
			oldestKey = k
		}
		return true
	})
	if oldestKey != nil {
		c.entries.Delete(oldestKey)
		atomic.AddInt64(&c.count, -1)
	}
}

// Stats reports hit/miss counters for observability.
func (c *MemoryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
