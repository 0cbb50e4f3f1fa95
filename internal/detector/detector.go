// Package detector turns generic scene-change notifications into visibility
// updates when, and only when, the active camera changed.
package detector

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/internal/metrics"
	"github.com/arloliu/camlight/types"
)

// Config holds detector configuration.
//
// Required fields must be set before calling New. Optional fields are set
// to defaults when zero-valued.
type Config struct {
	// Required dependencies
	Host  types.Host                                // Scene source, subscription and redraw target
	Apply func(scene types.Scene, cameraID string) // Applies visibility; runs with Locker held

	// Optional dependencies
	Locker          sync.Locker            // Serializes handling with the owner (default: private mutex)
	Ready           func() bool            // Gate checked with Locker held (default: always ready)
	OnCameraChanged func(from, to string)  // Called after redraw, Locker released
	OnError         func(err error)        // Called for recovered failures, Locker released
	Metrics         types.MetricsCollector // Metrics collector (default: no-op)
	Logger          types.Logger           // Logger (default: no-op)
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Host == nil {
		return errors.New("the Host is required")
	}
	if c.Apply == nil {
		return errors.New("the Apply function is required")
	}

	return nil
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Locker == nil {
		c.Locker = &sync.Mutex{}
	}
	if c.Ready == nil {
		c.Ready = func() bool { return true }
	}
	if c.OnCameraChanged == nil {
		c.OnCameraChanged = func(string, string) {}
	}
	if c.OnError == nil {
		c.OnError = func(error) {}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewNop()
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
}

// Detector filters scene-change noise down to active camera switches.
//
// It implements types.SceneSubscriber. Handling never panics into the host
// dispatcher: failures are recovered, logged, counted and passed to
// Config.OnError.
type Detector struct {
	cfg Config

	mu          sync.Mutex
	last        string
	unsubscribe func()
}

// Compile-time assertion that Detector implements SceneSubscriber.
var _ types.SceneSubscriber = (*Detector)(nil)

// New creates a detector.
//
// Parameters:
//   - cfg: Detector configuration
//
// Returns:
//   - *Detector: Unregistered detector with no last camera
//   - error: Validation error
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	return &Detector{cfg: cfg}, nil
}

// OnSceneChanged handles one scene-change notification.
//
// Not ready, no active camera, or an unchanged camera are no-ops. A new
// camera is applied first; the redraw request follows once Apply returned.
func (d *Detector) OnSceneChanged(event types.SceneEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(event, fmt.Errorf("%w: scene change: %v", types.ErrHandlerPanic, r))
		}
	}()

	from, to, switched, err := d.check()
	if err != nil {
		d.fail(event, err)
		return
	}

	d.cfg.Metrics.RecordSceneEvent(switched)
	if !switched {
		return
	}

	d.cfg.Logger.Info("active camera changed", "from", from, "to", to, "source", event.Source)
	d.cfg.Host.RequestRedraw()
	d.cfg.OnCameraChanged(from, to)
}

func (d *Detector) check() (string, string, bool, error) {
	d.cfg.Locker.Lock()
	defer d.cfg.Locker.Unlock()

	if !d.cfg.Ready() {
		return "", "", false, nil
	}

	scene, err := d.cfg.Host.Scene()
	if err != nil {
		if errors.Is(err, types.ErrInvalidEnvironment) {
			d.cfg.Logger.Debug("scene change ignored, environment not ready")
			return "", "", false, nil
		}

		return "", "", false, fmt.Errorf("failed to read scene: %w", err)
	}

	cam, ok := scene.ActiveCamera()
	if !ok {
		return "", "", false, nil
	}

	from := d.Last()
	if cam == from {
		return "", "", false, nil
	}

	// last is committed after Apply so a failed apply is retried on the next event.
	d.cfg.Apply(scene, cam)
	d.Prime(cam)

	return from, cam, true, nil
}

func (d *Detector) fail(event types.SceneEvent, err error) {
	d.cfg.Logger.Error("scene change handling failed", "source", event.Source, "error", err)
	d.cfg.Metrics.RecordHandlerFailure("detector")
	d.cfg.OnError(err)
}

// Register subscribes the detector to the host. Repeated calls are no-ops.
func (d *Detector) Register() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.unsubscribe != nil {
		return
	}
	d.unsubscribe = d.cfg.Host.Subscribe(d)
}

// Unregister removes the host subscription. Repeated calls are no-ops.
func (d *Detector) Unregister() {
	d.mu.Lock()
	unsubscribe := d.unsubscribe
	d.unsubscribe = nil
	d.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Registered reports whether the detector is subscribed.
func (d *Detector) Registered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.unsubscribe != nil
}

// Prime records cameraID as the last known active camera.
func (d *Detector) Prime(cameraID string) {
	d.mu.Lock()
	d.last = cameraID
	d.mu.Unlock()
}

// Reset forgets the last known active camera.
func (d *Detector) Reset() {
	d.Prime("")
}

// Last returns the last known active camera, empty when none.
func (d *Detector) Last() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.last
}
