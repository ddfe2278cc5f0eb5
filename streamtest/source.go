package streamtest

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/stream"
)

// Schedule returns the arrival offset of item i from the start.
type Schedule func(i int) time.Duration

// Periodic schedules item i at i*period. With a zero period every item is
// ready immediately.
func Periodic(period time.Duration) Schedule {
	return func(i int) time.Duration {
		return period * time.Duration(i)
	}
}

// Alternating schedules the first item immediately and then alternates the
// gap between items: first, second, first, second, ...
func Alternating(first, second time.Duration) Schedule {
	return func(i int) time.Duration {
		return first*time.Duration((i+1)/2) + second*time.Duration(i/2)
	}
}

// Offsets schedules item i at offsets[i]; the stream ends after the last.
func Offsets(offsets ...time.Duration) (Schedule, int) {
	return func(i int) time.Duration { return offsets[i] }, len(offsets)
}

type timedSource struct {
	clock    clockz.Clock
	start    time.Time
	schedule Schedule
	limit    int
	next     int
	sleep    *stream.Sleep
}

// TimedSource yields the integers 0, 1, 2, ... with item i becoming ready
// at schedule(i) after the current clock time. A negative limit makes the
// source infinite; otherwise it ends after limit items.
func TimedSource(clock clockz.Clock, schedule Schedule, limit int) stream.Stream[int] {
	return &timedSource{
		clock:    clock,
		start:    clock.Now(),
		schedule: schedule,
		limit:    limit,
	}
}

func (s *timedSource) PollNext(t *stream.Task) stream.Poll[int] {
	if s.limit >= 0 && s.next >= s.limit {
		return stream.Done[int]()
	}
	if s.sleep == nil {
		at := s.start.Add(s.schedule(s.next))
		s.sleep = stream.NewSleep(s.clock, at.Sub(s.clock.Now()))
	}
	if !s.sleep.Poll(t) {
		return stream.Pending[int]()
	}
	s.sleep = nil
	i := s.next
	s.next++
	return stream.Ready(i)
}

func (s *timedSource) Close() error {
	if s.sleep != nil {
		s.sleep.Stop()
		s.sleep = nil
	}
	return nil
}

// Pending returns a stream that never yields and never wakes.
func Pending[T any]() stream.Stream[T] {
	return stream.StreamFunc[T](func(*stream.Task) stream.Poll[T] {
		return stream.Pending[T]()
	})
}
