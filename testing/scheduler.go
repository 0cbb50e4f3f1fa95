package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/arloliu/camlight/types"
)

// ManualScheduler is a types.Scheduler driven by the test instead of a clock.
//
// Scheduled tasks only run when the test calls Advance or RunNext, on the
// calling goroutine, which makes deferred initialization deterministic.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	tasks  map[uint64]*manualTask
	delays []time.Duration
}

type manualTask struct {
	id  uint64
	at  time.Duration
	fn  func()
	seq uint64
}

// Compile-time assertion that ManualScheduler implements Scheduler.
var _ types.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[uint64]*manualTask)}
}

// Schedule queues fn to run once virtual time reaches now+delay.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) types.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.tasks[id] = &manualTask{id: id, at: s.now + delay, fn: fn, seq: id}
	s.delays = append(s.delays, delay)

	return func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
	}
}

// Pending returns the number of tasks that have not run or been cancelled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

// Delays returns the delay of every Schedule call, in call order.
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)

	return out
}

// Advance moves virtual time forward by d and runs every task that became due.
//
// Tasks scheduled by running tasks are included when they fall within the
// advanced window.
//
// Returns:
//   - int: Number of tasks run
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		task := s.popDue(target)
		if task == nil {
			break
		}
		task.fn()
		ran++
	}

	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()

	return ran
}

// RunNext runs the earliest pending task regardless of its due time.
//
// Returns:
//   - bool: false when nothing is pending
func (s *ManualScheduler) RunNext() bool {
	task := s.popDue(-1)
	if task == nil {
		return false
	}
	task.fn()

	return true
}

// popDue removes and returns the earliest task due at or before target.
// A negative target selects the earliest task unconditionally.
func (s *ManualScheduler) popDue(target time.Duration) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return nil
	}

	due := make([]*manualTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		if target < 0 || task.at <= target {
			due = append(due, task)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})

	task := due[0]
	delete(s.tasks, task.id)
	if task.at > s.now {
		s.now = task.at
	}

	return task
}
