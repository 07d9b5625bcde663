// Package cache provides a bounded object cache with least-recently-used
// eviction and resource lifecycle cleanup.
//
// The cache stores opaque resources (parsed album listings, decoded
// images) by string key, bounded to a fixed number of entries. When an
// insert would exceed the bound, the single least recently used entry is
// dropped first.
//
// # Resource Ownership
//
// Resources are tagged at construction: Plain values need no cleanup,
// Revocable values carry a release hook for an externally owned handle
// (a temp file, an open reader). Once a revocable resource is inserted,
// the cache is its sole owner and invokes the hook exactly once across
// Delete, eviction, and Clear. A failed load must never be inserted;
// there is no partial-entry state.
//
// # Usage
//
//	c := cache.New(50)
//	c.Set(url, cache.Plain(children))
//	if r := c.Get(url); r != nil {
//	    children := r.Value().([]gallery.Node)
//	    ...
//	}
package cache
