package detector

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/scene"
	"github.com/arloliu/camlight/types"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	applied  []string
	switches [][2]string
	errs     []error
	ready    atomic.Bool
}

func newDetector(t *testing.T, host types.Host, rec *recorder, apply func(types.Scene, string)) *Detector {
	t.Helper()

	rec.ready.Store(true)
	if apply == nil {
		apply = func(_ types.Scene, cam string) { rec.applied = append(rec.applied, cam) }
	}

	d, err := New(Config{
		Host:            host,
		Apply:           apply,
		Ready:           rec.ready.Load,
		OnCameraChanged: func(from, to string) { rec.switches = append(rec.switches, [2]string{from, to}) },
		OnError:         func(err error) { rec.errs = append(rec.errs, err) },
		Logger:          logging.NewTest(t),
	})
	require.NoError(t, err)

	return d
}

func newScene(t *testing.T) *scene.Memory {
	t.Helper()

	m := scene.NewMemory()
	require.NoError(t, m.AddCamera("Camera"))
	require.NoError(t, m.AddCamera("Camera.001"))
	require.NoError(t, m.SetActiveCamera("Camera"))

	return m
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Host: scene.NewMemory()})
	require.Error(t, err)

	d, err := New(Config{Host: scene.NewMemory(), Apply: func(types.Scene, string) {}})
	require.NoError(t, err)
	require.NotNil(t, d.cfg.Locker)
	require.NotNil(t, d.cfg.Logger)
}

func TestDetector_CameraSwitch(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)
	d.Prime("Camera")

	require.NoError(t, m.SetActiveCamera("Camera.001"))
	d.OnSceneChanged(types.SceneEvent{Source: "test"})

	require.Equal(t, []string{"Camera.001"}, rec.applied)
	require.Equal(t, [][2]string{{"Camera", "Camera.001"}}, rec.switches)
	require.Equal(t, int64(1), m.Redraws())
	require.Equal(t, "Camera.001", d.Last())
}

func TestDetector_SameCameraIsNoop(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)
	d.Prime("Camera")

	for i := 0; i < 10; i++ {
		d.OnSceneChanged(types.SceneEvent{})
	}

	require.Empty(t, rec.applied)
	require.Zero(t, m.Redraws())
}

func TestDetector_NoActiveCamera(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)
	d.Prime("Camera")

	m.ClearActiveCamera()
	d.OnSceneChanged(types.SceneEvent{})

	require.Empty(t, rec.applied)
	require.Equal(t, "Camera", d.Last(), "last camera is kept")
}

func TestDetector_NotReady(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)
	rec.ready.Store(false)

	d.OnSceneChanged(types.SceneEvent{})

	require.Empty(t, rec.applied)
	require.Empty(t, d.Last())
}

func TestDetector_FirstCamera(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)

	d.OnSceneChanged(types.SceneEvent{})

	require.Equal(t, [][2]string{{"", "Camera"}}, rec.switches)
}

func TestDetector_RestrictedEnvironment(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)

	m.SetRestricted(true)
	d.OnSceneChanged(types.SceneEvent{})

	require.Empty(t, rec.applied)
	require.Empty(t, rec.errs)
}

type brokenHost struct {
	*scene.Memory
}

func (brokenHost) Scene() (types.Scene, error) {
	return nil, errors.New("scene unavailable")
}

func TestDetector_SceneError(t *testing.T) {
	rec := &recorder{}
	d := newDetector(t, brokenHost{scene.NewMemory()}, rec, nil)

	require.NotPanics(t, func() { d.OnSceneChanged(types.SceneEvent{}) })
	require.Len(t, rec.errs, 1)
}

func TestDetector_ApplyPanicIsRecovered(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, func(types.Scene, string) { panic("apply exploded") })

	d.Register()
	require.NotPanics(t, func() { m.Notify("test") })

	require.Zero(t, m.DispatchPanics())
	require.Len(t, rec.errs, 1)
	require.ErrorIs(t, rec.errs[0], types.ErrHandlerPanic)
	require.Empty(t, d.Last(), "failed apply is retried on the next event")
	require.Zero(t, m.Redraws())

	// Locker was released by the panic path.
	require.True(t, d.cfg.Locker.(interface{ TryLock() bool }).TryLock())
}

func TestDetector_RegisterUnregister(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)

	d.Register()
	d.Register()
	require.True(t, d.Registered())
	require.Equal(t, 1, m.Subscribers())

	m.Notify("test")
	require.Equal(t, []string{"Camera"}, rec.applied)

	d.Unregister()
	d.Unregister()
	require.False(t, d.Registered())
	require.Zero(t, m.Subscribers())

	require.NoError(t, m.SetActiveCamera("Camera.001"))
	m.Notify("test")
	require.Equal(t, []string{"Camera"}, rec.applied)
}

func TestDetector_Reset(t *testing.T) {
	m := newScene(t)
	rec := &recorder{}
	d := newDetector(t, m, rec, nil)

	d.Prime("Camera")
	d.Reset()
	require.Empty(t, d.Last())

	d.OnSceneChanged(types.SceneEvent{})
	require.Equal(t, []string{"Camera"}, rec.applied)
}
