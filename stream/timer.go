package stream

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
)

// wakeSlot is the hand-off between a clock callback goroutine and the
// polling task: it remembers the most recent waker and whether the timer
// has fired.
type wakeSlot struct {
	mu    sync.Mutex
	waker Waker
	fired bool
}

func (s *wakeSlot) register(w Waker) {
	s.mu.Lock()
	s.waker = w
	s.mu.Unlock()
}

func (s *wakeSlot) hasFired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

func (s *wakeSlot) fire() {
	s.mu.Lock()
	s.fired = true
	w := s.waker
	s.waker = nil
	s.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}

// Sleep is a one-shot delay. It becomes ready once the clock reaches its
// deadline and wakes the last task that polled it.
type Sleep struct {
	clock    clockz.Clock
	deadline time.Time
	timer    clockz.Timer
	slot     *wakeSlot
}

// NewSleep starts a delay of d on clock. A non-positive d is ready at once.
func NewSleep(clock clockz.Clock, d time.Duration) *Sleep {
	s := &Sleep{
		clock:    clock,
		deadline: clock.Now().Add(d),
		slot:     &wakeSlot{},
	}
	if d > 0 {
		s.timer = clock.AfterFunc(d, s.slot.fire)
	}
	return s
}

// Deadline returns the instant the sleep completes.
func (s *Sleep) Deadline() time.Time { return s.deadline }

// Elapsed reports whether the delay is over.
func (s *Sleep) Elapsed() bool {
	return s.slot.hasFired() || !s.clock.Now().Before(s.deadline)
}

// Poll reports whether the delay is over, registering t for a wake-up if not.
func (s *Sleep) Poll(t *Task) bool {
	if s.Elapsed() {
		return true
	}
	s.slot.register(t.Waker())
	// The timer may have fired between the check and the registration.
	return s.Elapsed()
}

// Stop cancels the underlying timer. A stopped sleep never wakes anyone.
func (s *Sleep) Stop() {
	if s.timer != nil {
		s.timer.Stop()
	}
}

// Interval produces at most one pending tick per period. Missed ticks are
// skipped: a late poll yields a single tick and the next deadline snaps to
// the next point of the original period grid after now.
//
// The first tick is due immediately after construction.
type Interval struct {
	clock    clockz.Clock
	period   time.Duration
	deadline time.Time
	timer    clockz.Timer
	armedFor time.Time
	slot     *wakeSlot
}

// NewInterval creates an interval ticking every period. It panics if period
// is not positive, like time.NewTicker.
func NewInterval(clock clockz.Clock, period time.Duration) *Interval {
	if period <= 0 {
		panic(errors.InvalidConfig("period", "interval period must be positive"))
	}
	return &Interval{
		clock:    clock,
		period:   period,
		deadline: clock.Now(),
		slot:     &wakeSlot{},
	}
}

// Period returns the tick period.
func (iv *Interval) Period() time.Duration { return iv.period }

// Deadline returns the instant of the next tick.
func (iv *Interval) Deadline() time.Time { return iv.deadline }

// PollTick consumes the pending tick if one is due, otherwise registers t
// to be woken at the next deadline.
func (iv *Interval) PollTick(t *Task) bool {
	if iv.tick() {
		return true
	}
	iv.slot.register(t.Waker())
	iv.arm()
	return iv.tick()
}

// Reset moves the next tick one full period away from now.
func (iv *Interval) Reset() {
	iv.deadline = iv.clock.Now().Add(iv.period)
}

// ResetImmediately makes the next tick due now; later ticks follow at the
// normal cadence from this point.
func (iv *Interval) ResetImmediately() {
	iv.deadline = iv.clock.Now()
}

// Stop cancels any armed timer.
func (iv *Interval) Stop() {
	if iv.timer != nil {
		iv.timer.Stop()
		iv.timer = nil
	}
}

func (iv *Interval) tick() bool {
	now := iv.clock.Now()
	if now.Before(iv.deadline) {
		return false
	}
	late := now.Sub(iv.deadline)
	iv.deadline = now.Add(iv.period - late%iv.period)
	return true
}

// arm makes sure a clock callback fires at the current deadline.
func (iv *Interval) arm() {
	if iv.timer != nil && iv.armedFor.Equal(iv.deadline) {
		return
	}
	if iv.timer != nil {
		iv.timer.Stop()
	}
	wait := iv.deadline.Sub(iv.clock.Now())
	if wait < 0 {
		wait = 0
	}
	iv.armedFor = iv.deadline
	iv.timer = iv.clock.AfterFunc(wait, iv.slot.fire)
}
