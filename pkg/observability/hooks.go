// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about grid calculation, measurement normalization,
// dimension observation and render pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the geometry packages
// stay free of any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetMeasureHooks(&myMeasureHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, "xgrid")
//	// ... build the scene ...
//	observability.Pipeline().OnBuildComplete(ctx, "xgrid", nodeCount, duration, err)
//
// Measure and observer hooks fire from synchronous geometry code and event
// callbacks that carry no context, so they take none.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	// Scene build events
	OnBuildStart(ctx context.Context, scene string)
	OnBuildComplete(ctx context.Context, scene string, nodeCount int, duration time.Duration, err error)

	// OnCalculate records one grid calculation performed for a scene.
	OnCalculate(ctx context.Context, variant string, valid bool, columns int)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Measure Hooks
// =============================================================================

// MeasureHooks receives events from measurement normalization.
type MeasureHooks interface {
	// OnNormalize records a value snapped to a different base-unit multiple.
	OnNormalize(value string, normalized, base float64)

	// OnFallback records a value that could not be converted and fell back
	// to the base unit.
	OnFallback(value string, base float64, err error)
}

// =============================================================================
// Observer Hooks
// =============================================================================

// ObserverHooks receives events from dimension observers and window trackers.
type ObserverHooks interface {
	// OnResize records a published dimension change.
	OnResize(width, height int)

	// OnRangeChange records a published visible range change.
	OnRangeChange(start, end int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnCalculate(context.Context, string, bool, int)                   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopMeasureHooks is a no-op implementation of MeasureHooks.
type NoopMeasureHooks struct{}

func (NoopMeasureHooks) OnNormalize(string, float64, float64) {}
func (NoopMeasureHooks) OnFallback(string, float64, error)    {}

// NoopObserverHooks is a no-op implementation of ObserverHooks.
type NoopObserverHooks struct{}

func (NoopObserverHooks) OnResize(int, int)      {}
func (NoopObserverHooks) OnRangeChange(int, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	measureHooks  MeasureHooks  = NoopMeasureHooks{}
	observerHooks ObserverHooks = NoopObserverHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetMeasureHooks registers custom measurement hooks.
func SetMeasureHooks(h MeasureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		measureHooks = h
	}
}

// SetObserverHooks registers custom observer hooks.
func SetObserverHooks(h ObserverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		observerHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Measure returns the registered measurement hooks.
func Measure() MeasureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return measureHooks
}

// Observer returns the registered observer hooks.
func Observer() ObserverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return observerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	measureHooks = NoopMeasureHooks{}
	observerHooks = NoopObserverHooks{}
}
