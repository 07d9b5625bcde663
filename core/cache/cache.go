package cache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultMaxSize is the entry bound used when New is given a non-positive size.
const DefaultMaxSize = 50

// Resource is a cached value together with an optional release hook.
// A resource is either plain (no cleanup) or revocable (owns an external
// handle that must be released exactly once when the cache drops it).
type Resource struct {
	value   any
	release func() error
}

// Plain wraps a value that needs no cleanup on eviction.
func Plain(value any) *Resource {
	return &Resource{value: value}
}

// Revocable wraps a value together with a release hook. Once the resource
// is inserted into a cache, the cache is the sole owner of the handle and
// calls release exactly once across delete, eviction, and clear.
func Revocable(value any, release func() error) *Resource {
	return &Resource{value: value, release: release}
}

// Value returns the wrapped value.
func (r *Resource) Value() any {
	return r.value
}

// revoke releases the underlying handle, at most once.
func (r *Resource) revoke() {
	if r.release != nil {
		_ = r.release()
		r.release = nil
	}
}

// Stats is a snapshot of cache effectiveness counters.
type Stats struct {
	// HitCount is the number of Get calls that found an entry.
	HitCount int `json:"hit_count"`
	// MissCount is the number of Get calls that found nothing.
	MissCount int `json:"miss_count"`
	// HitRate is HitCount / (HitCount + MissCount), 0 before any access.
	HitRate float64 `json:"hit_rate"`
	// Size is the current number of entries.
	Size int `json:"size"`
	// EvictionCount is the number of entries dropped to make room.
	EvictionCount int `json:"eviction_count"`
}

// entry is the internal per-key record.
type entry struct {
	key          string
	resource     *Resource
	createdAt    time.Time
	accessCount  int
	sizeEstimate int64
}

// ObjectCache is a bounded key to resource cache with least-recently-used
// eviction. Both Get and a successful Set count as an access for recency.
// Methods are individually atomic; a single instance may be shared by
// multiple consumers.
type ObjectCache struct {
	mu        sync.Mutex
	maxSize   int
	order     *list.List               // front = most recently used
	entries   map[string]*list.Element // value is *entry
	hits      int
	misses    int
	evictions int
}

// New creates an ObjectCache bounded to maxSize entries.
// A non-positive maxSize falls back to DefaultMaxSize.
func New(maxSize int) *ObjectCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &ObjectCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Get returns the cached resource for key and marks it most recently used.
// A miss (or empty key) returns nil and bumps the miss counter; a miss is
// not an error.
func (c *ObjectCache) Get(key string) *Resource {
	if key == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil
	}

	c.hits++
	c.order.MoveToFront(elem)
	ent := elem.Value.(*entry)
	ent.accessCount++
	return ent.resource
}

// Set inserts a resource under key, evicting the least recently used entry
// first if the cache is full. Empty keys and nil resources are ignored.
// If the key is already present only its recency is refreshed; the stored
// resource is not replaced (first write wins), so re-inserting a duplicate
// never strands a handle the cache already owns.
func (c *ObjectCache) Set(key string, resource *Resource) {
	if key == "" || resource == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*entry).accessCount++
		return
	}

	if c.order.Len() >= c.maxSize {
		c.evictOldest()
	}

	ent := &entry{
		key:       key,
		resource:  resource,
		createdAt: time.Now(),
	}
	c.entries[key] = c.order.PushFront(ent)
}

// Has reports whether key is cached, without touching recency or counters.
func (c *ObjectCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Delete removes the entry for key, releasing its resource if revocable.
// It reports whether an entry was removed.
func (c *ObjectCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeElement(elem)
	return true
}

// Clear releases every held resource, empties the store, and resets all
// statistics.
func (c *ObjectCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, elem := range c.entries {
		elem.Value.(*entry).resource.revoke()
	}
	c.order.Init()
	c.entries = make(map[string]*list.Element)
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Len returns the current number of entries.
func (c *ObjectCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *ObjectCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	rate := 0.0
	if total := c.hits + c.misses; total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		HitCount:      c.hits,
		MissCount:     c.misses,
		HitRate:       rate,
		Size:          c.order.Len(),
		EvictionCount: c.evictions,
	}
}

// evictOldest drops exactly one entry, the least recently used.
// Caller must hold c.mu.
func (c *ObjectCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.removeElement(elem)
	c.evictions++
}

// removeElement unlinks an element and releases its resource.
// Caller must hold c.mu.
func (c *ObjectCache) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	ent.resource.revoke()
	c.order.Remove(elem)
	delete(c.entries, ent.key)
}
