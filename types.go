package camlight

import (
	"github.com/arloliu/camlight/internal/metrics"
	"github.com/arloliu/camlight/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Re-export types from the internal types package.
//
// Type aliases let internal packages depend on `types` without importing the
// root package, while users keep writing camlight.State, camlight.Host, etc.
type (
	State          = types.State
	Visibility     = types.Visibility
	AssignmentMode = types.AssignmentMode
	SceneEvent     = types.SceneEvent
	CancelFunc     = types.CancelFunc
)

// Re-export interfaces from the internal types package for convenience.
type (
	Host                = types.Host
	Scene               = types.Scene
	SceneSubscriber     = types.SceneSubscriber
	SceneSubscriberFunc = types.SceneSubscriberFunc
	Scheduler           = types.Scheduler
	MetricsCollector    = types.MetricsCollector
	Logger              = types.Logger
	Hooks               = types.Hooks
)

// Re-export State constants from the internal types package.
const (
	StateUninitialized = types.StateUninitialized
	StateInitializing  = types.StateInitializing
	StateDeferred      = types.StateDeferred
	StateReady         = types.StateReady
)

// Re-export AssignmentMode constants from the internal types package.
const (
	ModeScene  = types.ModeScene
	ModeCamera = types.ModeCamera
)

// NewPrometheusMetrics creates a Prometheus-backed MetricsCollector.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer when nil)
//   - namespace: Metric namespace ("camlight" when empty)
//
// Returns:
//   - MetricsCollector: Collector registering its metrics on first use
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
