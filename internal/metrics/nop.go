package metrics

import "github.com/arloliu/camlight/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	mgr, err := camlight.NewManager(&cfg, host, camlight.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// LifecycleMetrics implementation

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State) {
	// No-op
}

// RecordDeferredRetry discards the deferred retry metric.
func (n *NopMetrics) RecordDeferredRetry(_ /* attempt */ int) {
	// No-op
}

// RecordHandlerFailure discards the handler failure metric.
func (n *NopMetrics) RecordHandlerFailure(_ /* component */ string) {
	// No-op
}

// VisibilityMetrics implementation

// RecordSceneEvent discards the scene event metric.
func (n *NopMetrics) RecordSceneEvent(_ /* applied */ bool) {
	// No-op
}

// RecordVisibilityApply discards the visibility apply metric.
func (n *NopMetrics) RecordVisibilityApply(_ /* shown */, _ /* hidden */ int, _ /* duration */ float64) {
	// No-op
}

// AssignmentMetrics implementation

// RecordAssignmentLoad discards the assignment load metric.
func (n *NopMetrics) RecordAssignmentLoad(_ /* cameras */, _ /* lights */ int, _ /* duration */ float64) {
	// No-op
}

// RecordLightRename discards the light rename metric.
func (n *NopMetrics) RecordLightRename(_ /* collisions */ int) {
	// No-op
}
