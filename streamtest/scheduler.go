package streamtest

import (
	"sync/atomic"

	"github.com/kbukum/streamext/stream"
)

// Scheduler is a Waker that counts wake-ups.
type Scheduler struct {
	wakes atomic.Int64
	total atomic.Int64
}

// NewScheduler returns a Scheduler and a Task bound to it.
func NewScheduler() (*Scheduler, *stream.Task) {
	s := &Scheduler{}
	return s, stream.NewTask(s)
}

// Wake implements stream.Waker.
func (s *Scheduler) Wake() {
	s.wakes.Add(1)
	s.total.Add(1)
}

// TakeWake reports whether a wake-up arrived since the last call, and
// clears it.
func (s *Scheduler) TakeWake() bool {
	return s.wakes.Swap(0) > 0
}

// Woken reports whether a wake-up is outstanding, without clearing it.
func (s *Scheduler) Woken() bool {
	return s.wakes.Load() > 0
}

// Total returns the number of wake-ups received so far.
func (s *Scheduler) Total() int64 {
	return s.total.Load()
}
