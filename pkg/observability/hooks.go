// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults do
// nothing. Consumers register their own implementations once at startup:
//
//	observability.SetCacheHooks(&myCacheHooks{})
//	observability.SetHTTPHooks(&myHTTPHooks{})
//
// and libraries call them around the instrumented operation:
//
//	observability.Requirements().OnFilesLocated(ctx, dir, pattern, len(files))
//	observability.HTTP().OnResponse(ctx, "GET", host, path, status, elapsed)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// RequirementsHooks receives events from requirements file updates.
type RequirementsHooks interface {
	// OnFilesLocated records how many files an update will visit.
	OnFilesLocated(ctx context.Context, dir, pattern string, count int)

	// OnFileUpdated records the decision taken for one file. action is the
	// decision kind ("replace", "append", ...); err is set when the file
	// could not be processed.
	OnFileUpdated(ctx context.Context, path, action string, changed bool, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopRequirementsHooks is a no-op implementation of RequirementsHooks.
type NoopRequirementsHooks struct{}

func (NoopRequirementsHooks) OnFilesLocated(context.Context, string, string, int)        {}
func (NoopRequirementsHooks) OnFileUpdated(context.Context, string, string, bool, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is replaced as a whole so readers never see a partial update.
type registry struct {
	requirements RequirementsHooks
	cache        CacheHooks
	http         HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

// update copies the current registry, applies fn and publishes the copy.
func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetRequirementsHooks registers h for requirements file updates. Nil is
// ignored.
func SetRequirementsHooks(h RequirementsHooks) {
	if h != nil {
		update(func(r *registry) { r.requirements = h })
	}
}

// SetCacheHooks registers h for response cache lookups. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers h for PyPI requests. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Requirements() RequirementsHooks { return current.Load().requirements }

func Cache() CacheHooks { return current.Load().cache }

func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks. Tests call it in t.Cleanup.
func Reset() {
	current.Store(&registry{
		requirements: NoopRequirementsHooks{},
		cache:        NoopCacheHooks{},
		http:         NoopHTTPHooks{},
	})
}
