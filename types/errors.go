package types

import "errors"

// Sentinel errors for the camlight library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Manager errors - Public API errors returned by Manager component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrHostRequired is returned when the host is nil.
	ErrHostRequired = errors.New("host is required")

	// ErrCameraRequired is returned when an operation needs a camera identifier.
	ErrCameraRequired = errors.New("camera identifier is required")

	// ErrLightNotFound is returned when the light does not exist in the scene.
	ErrLightNotFound = errors.New("light not found")

	// ErrRetriesExhausted is reported through OnError when deferred
	// initialization gave up after the configured number of retries.
	ErrRetriesExhausted = errors.New("deferred initialization retries exhausted")

	// ErrHandlerPanic wraps a panic recovered from a host callback.
	ErrHandlerPanic = errors.New("handler panicked")
)

// Host errors - Returned by Host and Scene implementations.
var (
	// ErrInvalidEnvironment indicates the host exposes no live, mutable scene yet
	// (e.g. a restricted context during startup). The Manager retries later.
	ErrInvalidEnvironment = errors.New("execution environment not ready")

	// ErrObjectNotFound is returned when renaming an unknown object.
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectExists is returned when an identifier is already taken.
	ErrObjectExists = errors.New("object identifier already in use")
)
