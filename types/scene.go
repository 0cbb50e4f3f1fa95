package types

import "time"

// Visibility holds the two hide flags of a light.
//
// The manager always writes both flags together, so a light it controls is
// never visible in the viewport while hidden in the render, or the reverse.
type Visibility struct {
	HiddenInViewport bool `json:"hiddenInViewport"`
	HiddenInRender   bool `json:"hiddenInRender"`
}

// Hidden returns a Visibility with both flags set to hidden.
func Hidden(hidden bool) Visibility {
	return Visibility{HiddenInViewport: hidden, HiddenInRender: hidden}
}

// Scene is a live, mutable view of the host's scene graph.
//
// Object identifiers are unique across the whole scene (cameras, lights and
// any other object), mirroring hosts where the object name is the identity.
// Implementations are not required to be safe for concurrent use; the Manager
// serializes every call it makes.
type Scene interface {
	// Cameras returns the identifiers of all camera objects.
	Cameras() []string

	// Lights returns the identifiers of all light objects.
	Lights() []string

	// ActiveCamera returns the camera used for viewport and render.
	//
	// Returns:
	//   - string: Active camera identifier
	//   - bool: false when no camera is active
	ActiveCamera() (string, bool)

	// Visibility returns the hide flags of a light.
	//
	// Returns:
	//   - Visibility: Current flags
	//   - bool: false when the light does not exist
	Visibility(lightID string) (Visibility, bool)

	// SetVisibility writes both hide flags of a light.
	//
	// Returns:
	//   - bool: false when the light does not exist
	SetVisibility(lightID string, v Visibility) bool

	// HasObject reports whether any object uses the identifier.
	HasObject(id string) bool

	// RenameObject changes an object's identifier.
	//
	// Returns:
	//   - error: ErrObjectNotFound when oldID is unknown, ErrObjectExists when newID is taken
	RenameObject(oldID, newID string) error
}

// SceneEvent describes one generic "scene changed" notification.
//
// Hosts emit it for almost every edit; it carries no indication of what changed.
type SceneEvent struct {
	// Source names the emitter (e.g. "depsgraph", "nats").
	Source string `json:"source,omitempty"`

	// Sequence is an optional monotonically increasing counter set by the emitter.
	Sequence uint64 `json:"sequence,omitempty"`

	// Time is when the event was emitted.
	Time time.Time `json:"time"`
}

// SceneSubscriber receives scene-change notifications from a Host.
type SceneSubscriber interface {
	// OnSceneChanged is invoked synchronously by the host dispatcher.
	//
	// Implementations must not panic into the dispatcher, which serves
	// many unrelated subscribers.
	OnSceneChanged(event SceneEvent)
}

// SceneSubscriberFunc adapts a function to SceneSubscriber.
type SceneSubscriberFunc func(event SceneEvent)

// OnSceneChanged calls f(event).
func (f SceneSubscriberFunc) OnSceneChanged(event SceneEvent) {
	f(event)
}

// Host is the execution environment the Manager runs in.
type Host interface {
	// Scene returns the live scene.
	//
	// Returns:
	//   - Scene: Mutable scene view
	//   - error: ErrInvalidEnvironment (possibly wrapped) while only a restricted
	//     or read-only context is available
	Scene() (Scene, error)

	// Subscribe registers a subscriber for scene-change notifications.
	//
	// Hosts must not dispatch synchronously from inside Subscribe or from
	// inside Scene mutations performed by the subscriber.
	//
	// Returns:
	//   - func(): Unsubscribe function; safe to call more than once
	Subscribe(sub SceneSubscriber) func()

	// RequestRedraw asks the host to redraw its viewports.
	RequestRedraw()
}
