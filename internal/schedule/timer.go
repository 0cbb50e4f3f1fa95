// Package schedule provides the default types.Scheduler.
package schedule

import (
	"sync"
	"time"

	"github.com/arloliu/camlight/types"
)

// Timer schedules tasks with time.AfterFunc. Tasks run on their own goroutine.
type Timer struct{}

// Compile-time assertion that Timer implements Scheduler.
var _ types.Scheduler = Timer{}

// NewTimer returns the default scheduler.
func NewTimer() Timer {
	return Timer{}
}

// Schedule runs fn once after delay.
//
// The returned CancelFunc is idempotent. Cancelling after fn started does not
// interrupt it.
func (Timer) Schedule(delay time.Duration, fn func()) types.CancelFunc {
	t := time.AfterFunc(delay, fn)

	var once sync.Once

	return func() {
		once.Do(func() { t.Stop() })
	}
}
