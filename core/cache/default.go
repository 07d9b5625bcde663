package cache

import "sync"

var (
	defaultMu    sync.Mutex
	defaultCache *ObjectCache
)

// Default returns the process-wide cache, lazily constructing it with
// DefaultMaxSize on first use. Prefer constructing an ObjectCache at
// startup and passing it explicitly; Default exists for small tools that
// have no composition root.
//
// At most one live default exists at a time. Replacing it does not release
// the old instance's entries; callers that care must Clear() first.
func Default() *ObjectCache {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultCache == nil {
		defaultCache = New(DefaultMaxSize)
	}
	return defaultCache
}

// SetDefault replaces the process-wide cache, for reconfiguration at
// startup. The previous instance is not cleared.
func SetDefault(c *ObjectCache) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCache = c
}

// ResetDefault discards the process-wide cache so the next Default call
// rebuilds it. Intended for test isolation. The previous instance is not
// cleared.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCache = nil
}
