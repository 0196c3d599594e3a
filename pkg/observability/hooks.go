// Package observability provides hooks for instrumenting cache and
// index-fetch operations.
//
// Hooks are registered once at startup and called by the cache and
// apkindex packages. Defaults are no-ops, so libraries never depend on
// a particular metrics or tracing backend.
//
// Usage:
//
//	func main() {
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    observability.SetIndexHooks(&myIndexHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnHit records a cache hit.
	OnHit(ctx context.Context, key string)

	// OnMiss records a cache miss.
	OnMiss(ctx context.Context, key string)

	// OnSet records a cache write.
	OnSet(ctx context.Context, key string, size int)
}

// IndexHooks receives events from APKINDEX downloads.
type IndexHooks interface {
	// OnFetchStart records the beginning of an index download.
	OnFetchStart(ctx context.Context, url string)

	// OnFetchComplete records a finished download, successful or not.
	OnFetchComplete(ctx context.Context, url string, size int, duration time.Duration, err error)
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context, string)      {}
func (NoopCacheHooks) OnMiss(context.Context, string)     {}
func (NoopCacheHooks) OnSet(context.Context, string, int) {}

// NoopIndexHooks is a no-op implementation of IndexHooks.
type NoopIndexHooks struct{}

func (NoopIndexHooks) OnFetchStart(context.Context, string)                              {}
func (NoopIndexHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}

var (
	cacheHooks CacheHooks = NoopCacheHooks{}
	indexHooks IndexHooks = NoopIndexHooks{}
	hooksMu    sync.RWMutex
)

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetIndexHooks registers custom index hooks.
// Call once at application startup before any downloads.
func SetIndexHooks(h IndexHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		indexHooks = h
	}
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Index returns the registered index hooks.
func Index() IndexHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return indexHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cacheHooks = NoopCacheHooks{}
	indexHooks = NoopIndexHooks{}
}
