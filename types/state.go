package types

// State represents the manager lifecycle state.
//
// States follow a defined progression:
//
//	StateUninitialized → StateInitializing → StateReady
//
// When the host environment is not yet usable, initialization parks in
// StateDeferred until a scheduled retry succeeds:
//
//	StateInitializing → StateDeferred → StateInitializing → StateReady
//
// Disable returns the manager to StateUninitialized from StateReady or StateDeferred.
type State int

const (
	// StateUninitialized is the initial state; no hook is registered and no backup exists.
	StateUninitialized State = iota

	// StateInitializing indicates an enable attempt is in progress.
	StateInitializing

	// StateDeferred indicates the environment was invalid and a retry is scheduled.
	StateDeferred

	// StateReady indicates visibility is managed and the change hook is registered.
	StateReady
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateDeferred:
		return "Deferred"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}
