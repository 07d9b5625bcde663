package gallery

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"gallery-manager/core/cache"
	"gallery-manager/core/gallery"
)

// CachedFetcher wraps another fetcher with an in-memory child-list
// cache and request deduplication, so concurrent traversals of the same
// album hit the backing tree once. Failed fetches are never cached.
type CachedFetcher struct {
	next  Fetcher
	cache *cache.ObjectCache
	group singleflight.Group
}

// NewCachedFetcher wraps next with c. A nil cache uses the process-wide
// default cache.
func NewCachedFetcher(next Fetcher, c *cache.ObjectCache) *CachedFetcher {
	if c == nil {
		c = cache.Default()
	}
	return &CachedFetcher{next: next, cache: c}
}

// FetchChildren returns the cached child list for id, fetching through
// and caching on a miss.
func (f *CachedFetcher) FetchChildren(ctx context.Context, id int64) ([]gallery.Node, error) {
	key := "children:" + strconv.FormatInt(id, 10)

	if r := f.cache.Get(key); r != nil {
		return r.Value().([]gallery.Node), nil
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		// A concurrent caller may have filled the cache while this call
		// waited for the flight slot
		if r := f.cache.Get(key); r != nil {
			return r.Value().([]gallery.Node), nil
		}

		nodes, err := f.next.FetchChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		f.cache.Set(key, cache.Plain(nodes))
		return nodes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]gallery.Node), nil
}

// CacheStats exposes the cache counters for diagnostics.
func (f *CachedFetcher) CacheStats() cache.Stats {
	return f.cache.Stats()
}
