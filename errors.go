package camlight

import "github.com/arloliu/camlight/types"

// Sentinel errors returned by the Manager and host implementations.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrHostRequired is returned when the host is nil.
	ErrHostRequired = types.ErrHostRequired

	// ErrCameraRequired is returned when an operation needs a camera identifier.
	ErrCameraRequired = types.ErrCameraRequired

	// ErrLightNotFound is returned when the light does not exist in the scene.
	ErrLightNotFound = types.ErrLightNotFound

	// ErrRetriesExhausted is reported through Hooks.OnError when deferred
	// initialization gave up.
	ErrRetriesExhausted = types.ErrRetriesExhausted

	// ErrHandlerPanic wraps a panic recovered from a host callback or hook.
	ErrHandlerPanic = types.ErrHandlerPanic

	// ErrInvalidEnvironment is returned by hosts that expose no live scene yet.
	ErrInvalidEnvironment = types.ErrInvalidEnvironment

	// ErrObjectNotFound is returned by Scene.RenameObject for unknown objects.
	ErrObjectNotFound = types.ErrObjectNotFound

	// ErrObjectExists is returned by Scene.RenameObject when the target is taken.
	ErrObjectExists = types.ErrObjectExists
)
