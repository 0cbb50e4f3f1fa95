// Package metrics provides types.MetricsCollector implementations.
package metrics

import (
	"sync"

	"github.com/arloliu/camlight/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a PrometheusCollector never panics on duplicate registration.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	stateTransitions *prometheus.CounterVec
	deferredRetries  prometheus.Counter
	retryAttempt     prometheus.Gauge
	handlerFailures  *prometheus.CounterVec

	sceneEvents     *prometheus.CounterVec
	applyDuration   prometheus.Histogram
	lightsShown     prometheus.Gauge
	lightsHidden    prometheus.Gauge
	loadDuration    prometheus.Histogram
	assignedCameras prometheus.Gauge
	scannedLights   prometheus.Gauge
	lightRenames    prometheus.Counter
	renameConflicts prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "camlight" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "camlight"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.stateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lifecycle",
			Name:      "state_transitions_total",
			Help:      "Total manager state transitions by source and target state.",
		}, []string{"from", "to"})

		p.deferredRetries = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lifecycle",
			Name:      "deferred_retries_total",
			Help:      "Total scheduled initialization retries.",
		})

		p.retryAttempt = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "lifecycle",
			Name:      "deferred_retry_attempt",
			Help:      "Attempt number of the most recently scheduled retry.",
		})

		p.handlerFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lifecycle",
			Name:      "handler_failures_total",
			Help:      "Recovered failures inside host callbacks by component.",
		}, []string{"component"})

		p.sceneEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "visibility",
			Name:      "scene_events_total",
			Help:      "Scene-change notifications by outcome (applied, filtered).",
		}, []string{"result"})

		p.applyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "visibility",
			Name:      "apply_duration_seconds",
			Help:      "Duration of visibility application in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us .. ~200ms
		})

		p.lightsShown = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "visibility",
			Name:      "lights_shown",
			Help:      "Lights left visible by the last application.",
		})

		p.lightsHidden = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "visibility",
			Name:      "lights_hidden",
			Help:      "Lights hidden by the last application.",
		})

		p.loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "load_duration_seconds",
			Help:      "Duration of assignment rescans in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		})

		p.assignedCameras = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "cameras",
			Help:      "Cameras seen by the last rescan.",
		})

		p.scannedLights = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "lights",
			Help:      "Lights seen by the last rescan.",
		})

		p.lightRenames = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "light_renames_total",
			Help:      "Total light identifier rewrites.",
		})

		p.renameConflicts = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "rename_conflicts_total",
			Help:      "Total identifier collisions resolved with a numeric suffix.",
		})

		p.reg.MustRegister(p.stateTransitions)
		p.reg.MustRegister(p.deferredRetries)
		p.reg.MustRegister(p.retryAttempt)
		p.reg.MustRegister(p.handlerFailures)
		p.reg.MustRegister(p.sceneEvents)
		p.reg.MustRegister(p.applyDuration)
		p.reg.MustRegister(p.lightsShown)
		p.reg.MustRegister(p.lightsHidden)
		p.reg.MustRegister(p.loadDuration)
		p.reg.MustRegister(p.assignedCameras)
		p.reg.MustRegister(p.scannedLights)
		p.reg.MustRegister(p.lightRenames)
		p.reg.MustRegister(p.renameConflicts)
	})
}

// LifecycleMetrics implementation

// RecordStateTransition increments the transition counter for from -> to.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State) {
	p.ensureRegistered()
	p.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordDeferredRetry counts a scheduled retry and tracks its attempt number.
func (p *PrometheusCollector) RecordDeferredRetry(attempt int) {
	p.ensureRegistered()
	p.deferredRetries.Inc()
	p.retryAttempt.Set(float64(attempt))
}

// RecordHandlerFailure increments the failure counter for component.
func (p *PrometheusCollector) RecordHandlerFailure(component string) {
	p.ensureRegistered()
	p.handlerFailures.WithLabelValues(component).Inc()
}

// VisibilityMetrics implementation

// RecordSceneEvent counts a scene notification as applied or filtered.
func (p *PrometheusCollector) RecordSceneEvent(applied bool) {
	p.ensureRegistered()
	if applied {
		p.sceneEvents.WithLabelValues("applied").Inc()
	} else {
		p.sceneEvents.WithLabelValues("filtered").Inc()
	}
}

// RecordVisibilityApply observes apply latency and the resulting light counts.
func (p *PrometheusCollector) RecordVisibilityApply(shown, hidden int, duration float64) {
	p.ensureRegistered()
	p.applyDuration.Observe(duration)
	p.lightsShown.Set(float64(shown))
	p.lightsHidden.Set(float64(hidden))
}

// AssignmentMetrics implementation

// RecordAssignmentLoad observes rescan latency and scene size.
func (p *PrometheusCollector) RecordAssignmentLoad(cameras, lights int, duration float64) {
	p.ensureRegistered()
	p.loadDuration.Observe(duration)
	p.assignedCameras.Set(float64(cameras))
	p.scannedLights.Set(float64(lights))
}

// RecordLightRename counts a rename and the collisions it had to skip.
func (p *PrometheusCollector) RecordLightRename(collisions int) {
	p.ensureRegistered()
	p.lightRenames.Inc()
	if collisions > 0 {
		p.renameConflicts.Add(float64(collisions))
	}
}
