package types

import "context"

// Hooks defines callbacks for Manager lifecycle events.
//
// All hooks are optional. They are called synchronously after the Manager
// releases its internal lock, so a hook may call back into the Manager.
// Hooks receive the manager's context.
//
// IMPORTANT: Hook execution behavior:
//   - Hook errors are logged but don't fail manager operations
//   - Panics inside hooks are recovered and logged
//   - OnError is never re-invoked for its own failures
//
// Example:
//
//	hooks := &camlight.Hooks{
//	    OnActiveCameraChanged: func(ctx context.Context, from, to string) error {
//	        log.Printf("camera %q -> %q", from, to)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnStateChanged is called when the manager state transitions.
	OnStateChanged func(ctx context.Context, from, to State) error

	// OnActiveCameraChanged is called after visibility has been applied for a new active camera.
	// from is empty on the first camera observed in a session.
	OnActiveCameraChanged func(ctx context.Context, from, to string) error

	// OnAssignmentsChanged is called when a reload found a different assignment table.
	OnAssignmentsChanged func(ctx context.Context) error

	// OnError is called when a recoverable error occurs, including recovered
	// panics in scene-change handling and exhausted initialization retries.
	OnError func(ctx context.Context, err error) error
}
