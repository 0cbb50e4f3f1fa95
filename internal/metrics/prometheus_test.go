package metrics

import (
	"testing"

	"github.com/arloliu/camlight/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "camlight", p.namespace)
}

func TestPrometheusCollector_Lifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordStateTransition(types.StateUninitialized, types.StateInitializing)
	p.RecordStateTransition(types.StateUninitialized, types.StateInitializing)
	p.RecordDeferredRetry(1)
	p.RecordDeferredRetry(2)
	p.RecordHandlerFailure("detector")

	require.InDelta(t, 2, testutil.ToFloat64(p.stateTransitions.WithLabelValues("Uninitialized", "Initializing")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.deferredRetries), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.retryAttempt), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.handlerFailures.WithLabelValues("detector")), 0)
}

func TestPrometheusCollector_Visibility(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordSceneEvent(true)
	p.RecordSceneEvent(false)
	p.RecordSceneEvent(false)
	p.RecordVisibilityApply(3, 4, 0.002)

	require.InDelta(t, 1, testutil.ToFloat64(p.sceneEvents.WithLabelValues("applied")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.sceneEvents.WithLabelValues("filtered")), 0)
	require.InDelta(t, 3, testutil.ToFloat64(p.lightsShown), 0)
	require.InDelta(t, 4, testutil.ToFloat64(p.lightsHidden), 0)
}

func TestPrometheusCollector_Assignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordAssignmentLoad(2, 9, 0.01)
	p.RecordLightRename(0)
	p.RecordLightRename(3)

	require.InDelta(t, 2, testutil.ToFloat64(p.assignedCameras), 0)
	require.InDelta(t, 9, testutil.ToFloat64(p.scannedLights), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.lightRenames), 0)
	require.InDelta(t, 3, testutil.ToFloat64(p.renameConflicts), 0)
}

func TestPrometheusCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	require.NotPanics(t, func() {
		p.RecordSceneEvent(true)
		p.RecordLightRename(1)
		p.RecordDeferredRetry(1)
	})

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
