// Package scene provides an in-memory Host and Scene implementation.
//
// Memory is the reference host used by tests and the examples. It keeps
// objects in insertion order, never notifies subscribers on its own, and
// dispatches notifications only when Notify is called, so callers control
// exactly when a scene-change event fires.
package scene

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/camlight/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Kind is the type of a scene object.
type Kind int

const (
	// KindOther is any object that is neither a camera nor a light.
	KindOther Kind = iota
	// KindCamera is a camera object.
	KindCamera
	// KindLight is a light object.
	KindLight
)

type object struct {
	id   string
	kind Kind
	vis  types.Visibility
}

// Memory is an in-memory scene graph that also acts as its own Host.
//
// All methods are safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects []*object
	index   map[string]*object
	active  string

	restricted atomic.Bool

	subscribers *xsync.Map[uint64, types.SceneSubscriber]
	nextSubID   atomic.Uint64
	sequence    atomic.Uint64

	redraws        atomic.Int64
	dispatchPanics atomic.Int64
}

// Compile-time assertions that Memory implements Host and Scene.
var (
	_ types.Host  = (*Memory)(nil)
	_ types.Scene = (*Memory)(nil)
)

// NewMemory creates an empty scene.
func NewMemory() *Memory {
	return &Memory{
		index:       make(map[string]*object),
		subscribers: xsync.NewMap[uint64, types.SceneSubscriber](),
	}
}

// Host implementation

// Scene returns the scene itself, or ErrInvalidEnvironment while restricted.
func (m *Memory) Scene() (types.Scene, error) {
	if m.restricted.Load() {
		return nil, types.ErrInvalidEnvironment
	}

	return m, nil
}

// Subscribe registers a subscriber for Notify.
//
// Returns:
//   - func(): Unsubscribe function; safe to call more than once
func (m *Memory) Subscribe(sub types.SceneSubscriber) func() {
	id := m.nextSubID.Add(1)
	m.subscribers.Store(id, sub)

	var once sync.Once

	return func() {
		once.Do(func() { m.subscribers.Delete(id) })
	}
}

// RequestRedraw counts a redraw request.
func (m *Memory) RequestRedraw() {
	m.redraws.Add(1)
}

// Test and driver helpers

// SetRestricted toggles the restricted mode in which Scene fails.
func (m *Memory) SetRestricted(restricted bool) {
	m.restricted.Store(restricted)
}

// Notify dispatches one scene-change event to every subscriber.
//
// Subscribers run synchronously on the caller goroutine, outside any scene
// lock, so they may read and mutate the scene. A panicking subscriber is
// recovered and counted; it does not stop delivery to the others.
//
// Returns:
//   - types.SceneEvent: The dispatched event
func (m *Memory) Notify(source string) types.SceneEvent {
	event := types.SceneEvent{
		Source:   source,
		Sequence: m.sequence.Add(1),
		Time:     time.Now(),
	}

	m.Dispatch(event)

	return event
}

// Dispatch delivers an existing event to every subscriber.
func (m *Memory) Dispatch(event types.SceneEvent) {
	m.subscribers.Range(func(_ uint64, sub types.SceneSubscriber) bool {
		m.deliver(sub, event)
		return true
	})
}

func (m *Memory) deliver(sub types.SceneSubscriber, event types.SceneEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.dispatchPanics.Add(1)
		}
	}()

	sub.OnSceneChanged(event)
}

// Subscribers returns the number of registered subscribers.
func (m *Memory) Subscribers() int {
	return m.subscribers.Size()
}

// Redraws returns the number of redraw requests received.
func (m *Memory) Redraws() int64 {
	return m.redraws.Load()
}

// DispatchPanics returns the number of panics that escaped a subscriber.
func (m *Memory) DispatchPanics() int64 {
	return m.dispatchPanics.Load()
}

// AddCamera adds a camera object.
func (m *Memory) AddCamera(id string) error {
	return m.add(id, KindCamera, types.Visibility{})
}

// AddLight adds a light object with the given flags.
func (m *Memory) AddLight(id string, vis types.Visibility) error {
	return m.add(id, KindLight, vis)
}

// AddObject adds an object that is neither camera nor light.
func (m *Memory) AddObject(id string) error {
	return m.add(id, KindOther, types.Visibility{})
}

func (m *Memory) add(id string, kind Kind, vis types.Visibility) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[id]; ok {
		return fmt.Errorf("%w: %s", types.ErrObjectExists, id)
	}

	obj := &object{id: id, kind: kind, vis: vis}
	m.objects = append(m.objects, obj)
	m.index[id] = obj

	return nil
}

// Remove deletes an object. Removing the active camera clears it.
//
// Returns:
//   - bool: false when the object does not exist
func (m *Memory) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.index[id]
	if !ok {
		return false
	}

	delete(m.index, id)
	for i, o := range m.objects {
		if o == obj {
			m.objects = append(m.objects[:i], m.objects[i+1:]...)
			break
		}
	}
	if m.active == id {
		m.active = ""
	}

	return true
}

// SetActiveCamera makes a camera the active one.
func (m *Memory) SetActiveCamera(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.index[id]
	if !ok || obj.kind != KindCamera {
		return fmt.Errorf("%w: camera %s", types.ErrObjectNotFound, id)
	}
	m.active = id

	return nil
}

// ClearActiveCamera leaves the scene without an active camera.
func (m *Memory) ClearActiveCamera() {
	m.mu.Lock()
	m.active = ""
	m.mu.Unlock()
}

// LightStates returns the flags of every light keyed by identifier.
func (m *Memory) LightStates() map[string]types.Visibility {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]types.Visibility)
	for _, obj := range m.objects {
		if obj.kind == KindLight {
			out[obj.id] = obj.vis
		}
	}

	return out
}

// Scene implementation

// Cameras returns camera identifiers in insertion order.
func (m *Memory) Cameras() []string {
	return m.list(KindCamera)
}

// Lights returns light identifiers in insertion order.
func (m *Memory) Lights() []string {
	return m.list(KindLight)
}

func (m *Memory) list(kind Kind) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.objects))
	for _, obj := range m.objects {
		if obj.kind == kind {
			out = append(out, obj.id)
		}
	}

	return out
}

// ActiveCamera returns the active camera.
func (m *Memory) ActiveCamera() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.active, m.active != ""
}

// Visibility returns the flags of a light.
func (m *Memory) Visibility(lightID string) (types.Visibility, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.index[lightID]
	if !ok || obj.kind != KindLight {
		return types.Visibility{}, false
	}

	return obj.vis, true
}

// SetVisibility writes both flags of a light.
func (m *Memory) SetVisibility(lightID string, v types.Visibility) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.index[lightID]
	if !ok || obj.kind != KindLight {
		return false
	}
	obj.vis = v

	return true
}

// HasObject reports whether any object uses the identifier.
func (m *Memory) HasObject(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.index[id]

	return ok
}

// RenameObject changes an object identifier, following the active camera.
func (m *Memory) RenameObject(oldID, newID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.index[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrObjectNotFound, oldID)
	}
	if oldID == newID {
		return nil
	}
	if _, taken := m.index[newID]; taken {
		return fmt.Errorf("%w: %s", types.ErrObjectExists, newID)
	}

	delete(m.index, oldID)
	obj.id = newID
	m.index[newID] = obj
	if m.active == oldID {
		m.active = newID
	}

	return nil
}
