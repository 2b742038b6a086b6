// Package observability provides hooks for metrics, tracing, and logging.
//
// The conversion pipeline, the grid store, and the diagram renderer emit
// events through hook interfaces defined here. Defaults are no-ops, so the
// library carries no dependency on any observability backend; an
// application that wants metrics registers its own implementations at
// startup and the events flow to whatever backend it chose (OpenTelemetry,
// Prometheus, plain logs).
//
// # Usage
//
// Register hooks once, before any conversions run:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Library code emits paired start/complete events:
//
//	observability.Pipeline().OnReadStart(ctx, format, source)
//	// ... read the document ...
//	observability.Pipeline().OnReadComplete(ctx, format, source, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the conversion pipeline.
type PipelineHooks interface {
	// Read events
	OnReadStart(ctx context.Context, format, source string)
	OnReadComplete(ctx context.Context, format, source string, rows int, duration time.Duration, err error)

	// Convert events
	OnConvertStart(ctx context.Context, direction string, rows int)
	OnConvertComplete(ctx context.Context, direction string, duration time.Duration, err error)

	// Write events
	OnWriteStart(ctx context.Context, format, dest string)
	OnWriteComplete(ctx context.Context, format, dest string, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from grid database operations.
type StoreHooks interface {
	// OnStoreRead records a grid read with the number of rows loaded.
	OnStoreRead(ctx context.Context, path string, rows int)

	// OnStoreWrite records a grid write with the number of rows saved.
	OnStoreWrite(ctx context.Context, path string, rows int)

	// OnStoreError records a failed database operation.
	OnStoreError(ctx context.Context, op, path string, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from diagram rendering.
type RenderHooks interface {
	// OnRenderStart records the start of a render.
	OnRenderStart(ctx context.Context, format string)

	// OnRenderComplete records a finished render with the output size in bytes.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnConvertStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnConvertComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnWriteStart(context.Context, string, string)                    {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, string, time.Duration, error) {
}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreRead(context.Context, string, int)            {}
func (NoopStoreHooks) OnStoreWrite(context.Context, string, int)           {}
func (NoopStoreHooks) OnStoreError(context.Context, string, string, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any conversions.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any database access.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	storeHooks = NoopStoreHooks{}
	renderHooks = NoopRenderHooks{}
}
