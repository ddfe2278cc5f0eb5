package stream

import (
	"fmt"
	"strings"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
)

// IntervalEdge selects when an interval throttler releases the first item
// of a burst.
type IntervalEdge uint8

const (
	// Leading releases the first item of a burst immediately, then at most
	// one item per period.
	Leading IntervalEdge = iota
	// Trailing holds the first item of a burst for a full period.
	Trailing
)

func (e IntervalEdge) String() string {
	switch e {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return fmt.Sprintf("IntervalEdge(%d)", uint8(e))
	}
}

// ParseEdge parses "leading" or "trailing", case-insensitively.
func ParseEdge(s string) (IntervalEdge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading":
		return Leading, nil
	case "trailing":
		return Trailing, nil
	default:
		return Leading, errors.InvalidConfig("edge", fmt.Sprintf("unknown interval edge %q", s))
	}
}

// ThrottleIntervalConfig configures an IntervalThrottler.
type ThrottleIntervalConfig struct {
	// Period is the minimum distance between two released items.
	// Zero disables throttling.
	Period time.Duration
	Edge   IntervalEdge
}

type gatePhase uint8

const (
	gateIdle gatePhase = iota
	gatePending
)

// IntervalThrottler opens the gate at most once per period while items are
// waiting. It goes idle when a tick finds nothing to release, so an idle
// stream costs no timer wake-ups.
type IntervalThrottler[T any] struct {
	interval *Interval // nil when Period is zero
	edge     IntervalEdge
	phase    gatePhase
}

// NewIntervalThrottler creates a throttler for cfg on clock.
func NewIntervalThrottler[T any](clock clockz.Clock, cfg ThrottleIntervalConfig) *IntervalThrottler[T] {
	it := &IntervalThrottler[T]{edge: cfg.Edge}
	if cfg.Period > 0 {
		it.interval = NewInterval(clock, cfg.Period)
	}
	return it
}

// PollTick implements Throttler.
func (it *IntervalThrottler[T]) PollTick(t *Task) bool {
	if it.phase == gateIdle {
		return false
	}
	if it.interval == nil {
		return true
	}
	return it.interval.PollTick(t)
}

// ItemPending implements Throttler.
func (it *IntervalThrottler[T]) ItemPending(_ *Task) {
	if it.phase != gateIdle {
		return
	}
	it.phase = gatePending
	if it.interval == nil {
		return
	}
	switch it.edge {
	case Leading:
		it.interval.ResetImmediately()
	default:
		it.interval.Reset()
	}
}

// GateOpened implements Throttler.
func (it *IntervalThrottler[T]) GateOpened(_ *Task, _ T, ok bool) {
	if it.phase == gateIdle {
		panic(errors.ContractViolation("interval throttler", "gate opened while idle"))
	}
	if !ok {
		it.phase = gateIdle
	}
}

// Close stops the interval timer.
func (it *IntervalThrottler[T]) Close() error {
	if it.interval != nil {
		it.interval.Stop()
	}
	return nil
}

// ThrottleInterval throttles source to at most one item per cfg.Period.
func ThrottleInterval[T any](source Stream[T], clock clockz.Clock, cfg ThrottleIntervalConfig, maxReadyCount int, opts ...Option) *Throttle[T] {
	return NewThrottle[T](source, NewIntervalThrottler[T](clock, cfg), maxReadyCount, opts...)
}
