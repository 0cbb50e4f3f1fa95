package camlight

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/camlight/internal/assignment"
	"github.com/arloliu/camlight/internal/detector"
	"github.com/arloliu/camlight/internal/hooks"
	"github.com/arloliu/camlight/internal/logging"
	"github.com/arloliu/camlight/internal/metrics"
	"github.com/arloliu/camlight/internal/namecodec"
	"github.com/arloliu/camlight/internal/schedule"
	"github.com/arloliu/camlight/internal/visibility"
)

// Manager keeps the lights of a scene in sync with its active camera.
//
// Manager is the main entry point of the camlight library. It handles:
//   - Enable/disable lifecycle with a one-shot visibility backup
//   - Deferred, cancellable initialization while the host is not ready
//   - Camera switch detection from generic scene-change notifications
//   - Camera assignment of lights through their identifiers
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Scene access is serialized behind one mutex
//   - Hooks and redraw requests run after the mutex is released, so hooks
//     may call back into the Manager
//
// Lifecycle:
//   - Create with NewManager()
//   - Call Enable() when the host loads the integration
//   - Call OnLightCreated(), Assign() and Unassign() from the host UI
//   - Call Disable() to restore the original light flags
type Manager struct {
	cfg       Config
	host      Host
	hooks     Hooks
	metrics   MetricsCollector
	logger    Logger
	scheduler Scheduler

	// Internal components
	codec      *namecodec.Codec
	store      *assignment.Store
	visibility *visibility.Controller
	detector   *detector.Detector

	// State management
	state atomic.Int32 // State

	// Guarded by mu
	mu          sync.Mutex
	backup      visibility.Backup
	retryCancel CancelFunc
	generation  uint64
	attempts    int
	pending     []func()
	redraw      bool

	ctx context.Context
}

// NewManager creates a new Manager instance with the provided configuration.
//
// Returns a concrete *Manager struct following the "accept interfaces, return structs" principle.
// Consumers can define their own interfaces for testing if needed.
//
// Parameters:
//   - cfg: Configuration (missing values are filled with defaults)
//   - host: Host exposing the scene, notifications and redraw
//   - opts: Optional configuration (hooks, metrics, logger, scheduler)
//
// Returns:
//   - *Manager: Manager in StateUninitialized
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := camlight.DefaultConfig()
//	mgr, err := camlight.NewManager(&cfg, host, camlight.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	mgr.Enable()
//	defer mgr.Disable()
func NewManager(cfg *Config, host Host, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if host == nil {
		return nil, ErrHostRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &managerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	schedulerInstance := options.scheduler
	if schedulerInstance == nil {
		schedulerInstance = schedule.NewTimer()
	}

	codec := namecodec.New(cfg.DefaultCameraName)
	store := assignment.NewStore(codec, loggerInstance, metricsCollector)

	m := &Manager{
		cfg:        *cfg,
		host:       host,
		hooks:      hooks.Fill(options.hooks),
		metrics:    metricsCollector,
		logger:     loggerInstance,
		scheduler:  schedulerInstance,
		codec:      codec,
		store:      store,
		visibility: visibility.NewController(store, loggerInstance, metricsCollector),
		ctx:        context.Background(),
	}

	det, err := detector.New(detector.Config{
		Host:            host,
		Apply:           m.applyLocked,
		Locker:          &m.mu,
		Ready:           func() bool { return m.State() == StateReady },
		OnCameraChanged: m.cameraChanged,
		OnError:         m.reportError,
		Metrics:         metricsCollector,
		Logger:          loggerInstance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create change detector: %w", err)
	}
	m.detector = det

	m.state.Store(int32(StateUninitialized))

	return m, nil
}

// Enable starts managing light visibility.
//
// When the host environment is ready, Enable backs up every light's flags
// (unless an earlier Disable could not restore its backup),
// loads the assignment cache, applies visibility for the active camera and
// subscribes to scene changes. Otherwise it schedules a retry after
// Config.RetryDelay and enters StateDeferred; the retry re-arms until the
// environment becomes ready, Config.MaxRetries is reached, or Disable is
// called. Enable is a no-op when already Ready and restarts the retry cycle
// when Deferred.
func (m *Manager) Enable() {
	m.mu.Lock()
	defer m.unlockAndFlush()

	if m.State() == StateReady {
		return
	}

	m.cancelRetryLocked()
	m.attempts = 0
	m.initializeLocked()
}

// Disable stops managing light visibility.
//
// A pending retry is always cancelled. When Ready, Disable restores the
// backed-up flags (lights removed meanwhile are skipped), unsubscribes from
// scene changes and forgets the backup and the last camera. The assignment
// cache is kept.
//
// When the environment is not ready, the backup is kept instead: the next
// Enable reuses it rather than taking a new snapshot, and the following
// Disable restores the original flags.
func (m *Manager) Disable() {
	m.mu.Lock()
	defer m.unlockAndFlush()

	m.cancelRetryLocked()

	switch cur := m.State(); cur {
	case StateDeferred:
		m.transitionState(cur, StateUninitialized)
		return
	case StateReady:
	default:
		return
	}

	if scene, err := m.host.Scene(); err != nil {
		m.logger.Warn("cannot restore light visibility, backup kept for the next cycle", "error", err)
	} else {
		restored, skipped := visibility.Restore(scene, m.backup)
		m.logger.Info("light visibility restored", "restored", restored, "skipped", skipped)
		m.backup = nil
		m.redraw = true
	}

	m.detector.Unregister()
	m.detector.Reset()

	m.transitionState(StateReady, StateUninitialized)
}

// Reload rescans light identifiers, e.g. after the host opened a file.
//
// Hooks.OnAssignmentsChanged fires when the rescan changed the cache. When
// Ready, visibility is re-applied for the active camera.
//
// Returns:
//   - error: ErrInvalidEnvironment when the scene is not available
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.unlockAndFlush()

	scene, err := m.host.Scene()
	if err != nil {
		return fmt.Errorf("failed to reload assignments: %w", err)
	}

	before := m.store.Fingerprint()
	m.store.Load(scene)
	if m.store.Fingerprint() != before {
		m.logger.Info("assignments changed on reload")
		m.queue(func() {
			m.runHook("OnAssignmentsChanged", func() error { return m.hooks.OnAssignmentsChanged(m.ctx) })
		})
	}

	m.reapplyLocked(scene)

	return nil
}

// Assign binds a light to a camera, renaming the light to carry the camera ordinal.
//
// Parameters:
//   - cameraID: Camera identifier
//   - lightID: Current light identifier
//
// Returns:
//   - string: The light's identifier after the rename
//   - error: ErrCameraRequired, ErrLightNotFound, ErrInvalidEnvironment or a rename failure
func (m *Manager) Assign(cameraID, lightID string) (string, error) {
	m.mu.Lock()
	defer m.unlockAndFlush()

	scene, err := m.host.Scene()
	if err != nil {
		return "", fmt.Errorf("failed to assign light: %w", err)
	}

	newID, err := m.store.Assign(scene, cameraID, lightID)
	if err != nil {
		return "", err
	}

	m.backup.Rename(lightID, newID)
	m.notifyAssignmentsLocked()
	m.reapplyLocked(scene)

	return newID, nil
}

// Unassign removes a light from a camera's cached set.
//
// The light identifier is not rewritten: the next Reload or Enable derives
// the assignment from the identifier again. Removing the last light of a
// camera leaves its set empty, so the next re-apply reloads the set and the
// light stays visible.
//
// Returns:
//   - error: ErrCameraRequired, or ErrInvalidEnvironment when re-applying failed
func (m *Manager) Unassign(cameraID, lightID string) error {
	if cameraID == "" {
		return ErrCameraRequired
	}

	m.mu.Lock()
	defer m.unlockAndFlush()

	if !m.store.Unassign(cameraID, lightID) {
		return nil
	}
	m.notifyAssignmentsLocked()

	if m.State() != StateReady {
		return nil
	}

	scene, err := m.host.Scene()
	if err != nil {
		return fmt.Errorf("failed to re-apply visibility: %w", err)
	}
	m.reapplyLocked(scene)

	return nil
}

// AssignedLights returns the sorted identifiers of the lights visible for a camera.
//
// A cold cache is loaded from the scene once.
//
// Returns:
//   - []string: Assigned lights, camera-specific and global
//   - error: ErrInvalidEnvironment when the scene is not available
func (m *Manager) AssignedLights(cameraID string) ([]string, error) {
	m.mu.Lock()
	defer m.unlockAndFlush()

	scene, err := m.host.Scene()
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}

	return m.store.AssignedLights(scene, cameraID), nil
}

// OnLightCreated labels a newly created light according to mode.
//
// ModeScene renames the light with the global prefix and assigns it to every
// camera. ModeCamera renames it for activeCameraID and assigns it to that
// camera; without an active camera the light gets the "00" prefix and stays
// unassigned. When Ready, visibility is re-applied for the host's active camera.
//
// Parameters:
//   - lightID: Identifier of the new light
//   - mode: Assignment mode selected in the host UI
//   - activeCameraID: Active camera at creation time, empty when none
//
// Returns:
//   - string: The light's identifier after the rename
//   - error: ErrLightNotFound, ErrInvalidEnvironment or a rename failure
func (m *Manager) OnLightCreated(lightID string, mode AssignmentMode, activeCameraID string) (string, error) {
	m.mu.Lock()
	defer m.unlockAndFlush()

	scene, err := m.host.Scene()
	if err != nil {
		return "", fmt.Errorf("failed to label new light: %w", err)
	}

	var newID string
	switch mode {
	case ModeScene:
		newID, err = m.store.AssignGlobal(scene, lightID)
	case ModeCamera:
		if activeCameraID == "" {
			if _, ok := scene.Visibility(lightID); !ok {
				return "", fmt.Errorf("%w: %s", ErrLightNotFound, lightID)
			}
			newID, err = m.store.Relabel(scene, lightID, namecodec.Camera(namecodec.DefaultOrdinal))
		} else {
			newID, err = m.store.Assign(scene, activeCameraID, lightID)
		}
	default:
		return "", fmt.Errorf("unknown assignment mode %d", mode)
	}
	if err != nil {
		return "", err
	}

	m.logger.Info("light labeled", "light", newID, "mode", mode.String(), "camera", activeCameraID)
	m.backup.Rename(lightID, newID)
	m.notifyAssignmentsLocked()
	m.reapplyLocked(scene)

	return newID, nil
}

// State returns the current manager state.
//
// This method is thread-safe and can be called concurrently.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// ActiveCamera returns the last camera visibility was applied for.
//
// Returns:
//   - string: Camera identifier
//   - bool: false when not Ready or no camera has been active
func (m *Manager) ActiveCamera() (string, bool) {
	cam := m.detector.Last()
	return cam, cam != ""
}

// WaitState waits for the Manager to reach a specific state.
//
// Parameters:
//   - expectedState: Target state to wait for
//   - timeout: Maximum time to wait
//
// Returns:
//   - <-chan error: Receives nil on success or context.DeadlineExceeded on timeout; closed afterwards
//
// Example:
//
//	mgr.Enable()
//	if err := <-mgr.WaitState(camlight.StateReady, 5*time.Second); err != nil {
//	    log.Printf("host never became ready: %v", err)
//	}
func (m *Manager) WaitState(expectedState State, timeout time.Duration) <-chan error {
	ch := make(chan error, 1) // Buffered to prevent goroutine leak

	go func() {
		defer close(ch)

		// Check if already in expected state
		if m.State() == expectedState {
			ch <- nil
			return
		}

		// Poll for state changes
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()

		timeoutTimer := time.NewTimer(timeout)
		defer timeoutTimer.Stop()

		for {
			select {
			case <-ticker.C:
				if m.State() == expectedState {
					ch <- nil
					return
				}
			case <-timeoutTimer.C:
				ch <- context.DeadlineExceeded
				return
			}
		}
	}()

	return ch
}

// initializeLocked performs one initialization attempt.
func (m *Manager) initializeLocked() {
	if cur := m.State(); cur != StateInitializing {
		m.transitionState(cur, StateInitializing)
	}

	scene, err := m.host.Scene()
	if err != nil {
		m.deferLocked(err)
		return
	}

	// An unrestored backup still holds the flags from before the first Enable.
	if m.backup == nil {
		m.backup = visibility.Snapshot(scene)
	} else {
		m.logger.Info("reusing unrestored visibility backup", "lights", len(m.backup))
	}
	m.store.Load(scene)

	cam, ok := scene.ActiveCamera()
	if ok {
		m.applyLocked(scene, cam)
		m.redraw = true
	}
	m.detector.Prime(cam)
	m.detector.Register()

	m.transitionState(StateInitializing, StateReady)

	if ok {
		m.queue(func() { m.cameraChanged("", cam) })
	}
}

// deferLocked schedules the next initialization attempt or gives up.
func (m *Manager) deferLocked(cause error) {
	if m.cfg.MaxRetries > 0 && m.attempts >= m.cfg.MaxRetries {
		m.transitionState(StateInitializing, StateUninitialized)
		m.logger.Warn("deferred initialization gave up", "retries", m.attempts, "error", cause)

		err := fmt.Errorf("%w after %d retries: %w", ErrRetriesExhausted, m.attempts, cause)
		m.queue(func() { m.reportError(err) })

		return
	}

	m.attempts++
	m.generation++
	gen, attempt := m.generation, m.attempts

	m.retryCancel = m.scheduler.Schedule(m.cfg.RetryDelay, func() { m.retry(gen) })
	m.metrics.RecordDeferredRetry(attempt)
	m.logger.Info("environment not ready, initialization deferred",
		"attempt", attempt,
		"delay", m.cfg.RetryDelay,
		"error", cause,
	)

	m.transitionState(StateInitializing, StateDeferred)
}

// retry runs a scheduled initialization attempt.
//
// Callbacks from a superseded schedule are ignored.
func (m *Manager) retry(gen uint64) {
	m.mu.Lock()
	defer m.unlockAndFlush()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: deferred initialization: %v", ErrHandlerPanic, r)
			m.logger.Error("deferred initialization failed", "error", err)
			m.metrics.RecordHandlerFailure("retry")
			if cur := m.State(); cur == StateInitializing {
				m.transitionState(cur, StateUninitialized)
			}
			m.queue(func() { m.reportError(err) })
		}
	}()

	if gen != m.generation || m.State() != StateDeferred {
		m.logger.Debug("stale retry ignored", "generation", gen)
		return
	}

	m.retryCancel = nil
	m.initializeLocked()
}

func (m *Manager) cancelRetryLocked() {
	if m.retryCancel != nil {
		m.retryCancel()
		m.retryCancel = nil
	}
	m.generation++
}

// applyLocked applies visibility for cameraID.
func (m *Manager) applyLocked(scene Scene, cameraID string) {
	m.visibility.Apply(scene, cameraID)
}

// reapplyLocked re-applies visibility for the host's active camera when Ready.
func (m *Manager) reapplyLocked(scene Scene) {
	if m.State() != StateReady {
		return
	}

	cam, ok := scene.ActiveCamera()
	if !ok {
		return
	}

	m.applyLocked(scene, cam)
	if !m.cfg.DisableAssignRedraw {
		m.redraw = true
	}

	if prev := m.detector.Last(); prev != cam {
		m.detector.Prime(cam)
		m.queue(func() { m.cameraChanged(prev, cam) })
	}
}

func (m *Manager) notifyAssignmentsLocked() {
	m.queue(func() {
		m.runHook("OnAssignmentsChanged", func() error { return m.hooks.OnAssignmentsChanged(m.ctx) })
	})
}

// transitionState moves the state machine, queuing the state hook.
func (m *Manager) transitionState(from, to State) {
	if !m.isValidTransition(from, to) {
		m.logger.Error("invalid state transition attempted",
			"from", from.String(),
			"to", to.String(),
		)

		return
	}

	m.state.Store(int32(to)) //nolint:gosec // State values are controlled enum

	m.logger.Info("state transition",
		"from", from.String(),
		"to", to.String(),
	)

	m.queue(func() {
		m.runHook("OnStateChanged", func() error { return m.hooks.OnStateChanged(m.ctx, from, to) })
	})

	// Record metrics (always non-nil, defaults to nopMetrics)
	m.metrics.RecordStateTransition(from, to)
}

// isValidTransition validates that a state transition is allowed.
//
// Returns:
//   - bool: true if transition is valid, false otherwise
func (m *Manager) isValidTransition(from, to State) bool {
	validTransitions := map[State][]State{
		StateUninitialized: {StateInitializing},
		StateInitializing:  {StateDeferred, StateReady, StateUninitialized},
		StateDeferred:      {StateInitializing, StateUninitialized},
		StateReady:         {StateUninitialized},
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return true
		}
	}

	return false
}

// queue defers fn until the mutex is released. Callers must hold mu.
func (m *Manager) queue(fn func()) {
	m.pending = append(m.pending, fn)
}

// unlockAndFlush releases mu, then runs the redraw request and queued hooks in order.
func (m *Manager) unlockAndFlush() {
	pending := m.pending
	redraw := m.redraw
	m.pending = nil
	m.redraw = false
	m.mu.Unlock()

	if redraw {
		m.host.RequestRedraw()
	}
	for _, fn := range pending {
		fn()
	}
}

func (m *Manager) cameraChanged(from, to string) {
	m.runHook("OnActiveCameraChanged", func() error { return m.hooks.OnActiveCameraChanged(m.ctx, from, to) })
}

// reportError forwards a recovered failure to Hooks.OnError.
func (m *Manager) reportError(err error) {
	if hookErr := hooks.Invoke(m.logger, "OnError", func() error { return m.hooks.OnError(m.ctx, err) }); hookErr != nil {
		m.metrics.RecordHandlerFailure("hook")
	}
}

func (m *Manager) runHook(name string, fn func() error) {
	if err := hooks.Invoke(m.logger, name, fn); err != nil {
		m.metrics.RecordHandlerFailure("hook")
		m.reportError(err)
	}
}
