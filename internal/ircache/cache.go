package ircache

import (
	"fmt"

	"github.com/standardbeagle/irengine/internal/ir"
	"golang.org/x/sync/singleflight"
)

// Cache is the two-tier IR cache: memory first, then disk, with a build
// function invoked on a full miss. singleflight collapses concurrent
// misses for the same key (two workers racing to lower the same
// unchanged file after a cold start) into a single build.
type Cache struct {
	mem   *MemoryCache
	disk  *DiskCache
	group singleflight.Group
}

// BuildFunc produces an IRDocument for a cache miss. Returning an error
// aborts GetOrBuild for that key without populating either tier.
type BuildFunc func() (*ir.IRDocument, error)

// New creates a two-tier cache. disk may be nil to run memory-only
// (useful for tests and for BOOTSTRAP-mode full rebuilds where nothing
// should be trusted from a prior run).
func New(mem *MemoryCache, disk *DiskCache) *Cache {
	return &Cache{mem: mem, disk: disk}
}

// Get checks the memory tier, then the disk tier (promoting a disk hit
// into memory), without invoking any build function.
func (c *Cache) Get(key Key) (*ir.IRDocument, bool) {
	if doc, ok := c.mem.Get(key); ok {
		return doc, true
	}
	if c.disk == nil {
		return nil, false
	}
	doc, ok := c.disk.Get(key)
	if ok {
		c.mem.Put(key, doc)
	}
	return doc, ok
}

// GetOrBuild returns the cached document for key, building it with build
// on a full miss. Concurrent callers for the same key block on one
// in-flight build rather than each invoking build independently.
func (c *Cache) GetOrBuild(key Key, build BuildFunc) (*ir.IRDocument, error) {
	if doc, ok := c.Get(key); ok {
		return doc, nil
	}

	v, err, _ := c.group.Do(string(key), func() (any, error) {
		if doc, ok := c.Get(key); ok {
			return doc, nil
		}
		doc, err := build()
		if err != nil {
			return nil, fmt.Errorf("ircache: building %s: %w", key, err)
		}
		c.mem.Put(key, doc)
		if c.disk != nil {
			if err := c.disk.Put(key, doc); err != nil {
				return doc, err
			}
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ir.IRDocument), nil
}

// Invalidate removes key from both tiers, used when a file's content
// changes and the old entry must not be served again.
func (c *Cache) Invalidate(key Key) error {
	c.mem.entries.Delete(key)
	if c.disk != nil {
		return c.disk.Delete(key)
	}
	return nil
}
