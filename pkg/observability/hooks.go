// Package observability lets callers watch a glyphgrid run without the
// libraries depending on any metrics or tracing backend.
//
// Three hook sets exist: [PipelineHooks] for the fetch, interpret and render
// stages, [CacheHooks] for document cache lookups, and [HTTPHooks] for the
// requests the fetch client sends. Until something is registered every
// accessor returns a no-op set.
//
//	observability.Register(observability.NewLogHooks(logger))
//
// Register inspects its argument and installs it for every hook interface it
// implements, so one value can observe all three event streams.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the stages of a run.
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, url string)
	OnFetchComplete(ctx context.Context, url string, size int, duration time.Duration, err error)

	// OnInterpretComplete fires after tables were discovered and their rows
	// turned into entries. skipped counts rows that produced no entry.
	OnInterpretComplete(ctx context.Context, tables, entries, skipped int, duration time.Duration)

	// OnRenderComplete fires once both renderings exist.
	OnRenderComplete(ctx context.Context, width, height int, duration time.Duration)
}

// CacheHooks observes document cache lookups. kind names the cached value,
// currently always "document".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks observes outgoing requests. OnError fires instead of OnResponse
// when no response arrived.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, status int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every event. Embed it to implement a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFetchStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnInterpretComplete(context.Context, int, int, int, time.Duration)  {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, int, time.Duration)          {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

// Register installs h for each hook interface it implements and reports
// whether it implemented any. Registration replaces earlier hooks of the same
// kind; nil is ignored.
func Register(h any) bool {
	if h == nil {
		return false
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()

	matched := false
	if p, ok := h.(PipelineHooks); ok {
		hooks.pipeline, matched = p, true
	}
	if c, ok := h.(CacheHooks); ok {
		hooks.cache, matched = c, true
	}
	if x, ok := h.(HTTPHooks); ok {
		hooks.http, matched = x, true
	}
	return matched
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset puts the no-op hooks back. Tests call it in cleanup.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline, hooks.cache, hooks.http = fresh.pipeline, fresh.cache, fresh.http
}
