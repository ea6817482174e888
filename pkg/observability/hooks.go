// Package observability provides hooks for metrics and tracing.
//
// Instrumentation is optional: libraries emit events through hook
// interfaces whose default implementations do nothing, and the binary
// registers real implementations at startup. [PrometheusHooks] is the
// implementation shipped with frontier.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    reg := prometheus.NewRegistry()
//	    hooks := observability.NewPrometheusHooks(reg)
//	    observability.SetSearchHooks(hooks)
//	    observability.SetDatasetHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSearchStart(ctx, observability.EngineDegrees)
//	// ... search ...
//	observability.Search().OnSearchComplete(ctx, observability.EngineDegrees, explored, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Engine labels for search events.
const (
	EngineDegrees = "degrees"
	EngineMinimax = "minimax"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the search engines.
type SearchHooks interface {
	OnSearchStart(ctx context.Context, engine string)
	// OnSearchComplete reports the number of states expanded, which is the
	// people dequeued for a path search and the boards evaluated for a
	// game search.
	OnSearchComplete(ctx context.Context, engine string, expanded int, duration time.Duration, err error)
}

// =============================================================================
// Dataset Hooks
// =============================================================================

// DatasetHooks receives events from dataset loading.
type DatasetHooks interface {
	OnLoadStart(ctx context.Context, source string)
	// OnLoadComplete reports the size of the loaded dataset and whether it
	// came from the snapshot cache.
	OnLoadComplete(ctx context.Context, source string, people, productions int, cached bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnResponse records a served request. route is the matched pattern,
	// not the raw path, to keep label cardinality bounded.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string)                                 {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, int, time.Duration, error) {}

// NoopDatasetHooks is a no-op implementation of DatasetHooks.
type NoopDatasetHooks struct{}

func (NoopDatasetHooks) OnLoadStart(context.Context, string) {}
func (NoopDatasetHooks) OnLoadComplete(context.Context, string, int, int, bool, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks  SearchHooks  = NoopSearchHooks{}
	datasetHooks DatasetHooks = NoopDatasetHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any search.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetDatasetHooks registers custom dataset hooks.
func SetDatasetHooks(h DatasetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		datasetHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Dataset returns the registered dataset hooks.
func Dataset() DatasetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return datasetHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	datasetHooks = NoopDatasetHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
