package types

import "time"

// CancelFunc cancels a scheduled task. Calling it after the task ran, or more
// than once, is a no-op.
type CancelFunc func()

// Scheduler runs one-shot tasks after a delay.
//
// Hosts with their own timer facility (an application main loop, an editor
// timer API) can supply a Scheduler so retries run on the host thread.
type Scheduler interface {
	// Schedule runs fn once after delay.
	//
	// Parameters:
	//   - delay: Time to wait before running fn
	//   - fn: Task to run
	//
	// Returns:
	//   - CancelFunc: Cancels the task if it has not started yet
	Schedule(delay time.Duration, fn func()) CancelFunc
}
