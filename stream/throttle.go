package stream

import (
	stderrors "errors"

	"github.com/kbukum/streamext/errors"
	"github.com/kbukum/streamext/logger"
)

// Throttler is the timing policy behind Throttle.
//
// Throttle calls ItemPending when its buffer goes from empty to holding an
// item, polls PollTick while something may be released, and calls
// GateOpened right after every tick with the item that was buffered at
// that moment (ok is false if nothing was).
type Throttler[T any] interface {
	// PollTick reports whether the gate is open now. While the policy is
	// idle it returns false without arranging any wake-up.
	PollTick(t *Task) bool

	// ItemPending arms the gate for a newly buffered item. It is not called
	// again until a tick has released the buffer.
	ItemPending(t *Task)

	// GateOpened reports the outcome of a tick: the released item, or
	// ok == false if the buffer was empty.
	GateOpened(t *Task, item T, ok bool)
}

type throttleState uint8

const (
	throttleStreaming throttleState = iota
	throttleFinishing
	throttleFinished
)

func (s throttleState) String() string {
	switch s {
	case throttleStreaming:
		return "streaming"
	case throttleFinishing:
		return "finishing"
	default:
		return "finished"
	}
}

// Throttle releases the most recent source item whenever its Throttler
// opens the gate. Items arriving between two gate openings are coalesced:
// only the latest survives. The last source item is always released,
// subject to one more tick, before Throttle reports Done.
type Throttle[T any] struct {
	source        Stream[T]
	throttler     Throttler[T]
	maxReadyCount int
	state         throttleState
	pending       T
	hasPending    bool
	opts          options
}

// NewThrottle wraps source. maxReadyCount bounds how many ready items are
// pulled from source per poll before the throttler is consulted; 1 is the
// safe default, larger values skip bursts faster. Values below 1 are
// treated as 1.
func NewThrottle[T any](source Stream[T], throttler Throttler[T], maxReadyCount int, opts ...Option) *Throttle[T] {
	if maxReadyCount < 1 {
		maxReadyCount = 1
	}
	return &Throttle[T]{
		source:        source,
		throttler:     throttler,
		maxReadyCount: maxReadyCount,
		opts:          buildOptions("throttle", opts),
	}
}

// PollNext implements Stream.
func (th *Throttle[T]) PollNext(t *Task) Poll[T] {
	if th.state == throttleStreaming {
		th.drain(t)
	}

	switch th.state {
	case throttleStreaming:
		if !th.throttler.PollTick(t) {
			return Pending[T]()
		}
		item, ok := th.take()
		th.throttler.GateOpened(t, item, ok)
		if !ok {
			// Gate opened on an empty buffer; the source will wake us.
			return Pending[T]()
		}
		th.opts.observer.ItemEmitted()
		return Ready(item)

	case throttleFinishing:
		if !th.hasPending {
			th.state = throttleFinished
			th.opts.observer.Finished()
			th.logTransition("finished")
			return Done[T]()
		}
		if !th.throttler.PollTick(t) {
			return Pending[T]()
		}
		item, _ := th.take()
		th.opts.observer.ItemEmitted()
		// Nothing external will wake us for the final transition.
		t.Wake()
		return Ready(item)

	default:
		panic(errors.ContractViolation("throttle", "polled after completion"))
	}
}

// drain pulls ready items from the source, keeping only the latest.
func (th *Throttle[T]) drain(t *Task) {
	for readyCount := 0; ; {
		p := th.source.PollNext(t)
		item, ok := p.Item()
		if !ok {
			if p.IsDone() {
				th.state = throttleFinishing
				th.logTransition("source exhausted")
			}
			return
		}

		th.opts.observer.ItemReceived()
		if th.hasPending {
			th.opts.observer.ItemDropped()
		} else {
			th.throttler.ItemPending(t)
		}
		th.pending = item
		th.hasPending = true

		readyCount++
		if readyCount >= th.maxReadyCount {
			// The source may be always ready: stop here and come back
			// after the throttler had its say.
			t.Wake()
			return
		}
	}
}

func (th *Throttle[T]) take() (T, bool) {
	var zero T
	if !th.hasPending {
		return zero, false
	}
	item := th.pending
	th.pending = zero
	th.hasPending = false
	return item, true
}

func (th *Throttle[T]) logTransition(msg string) {
	if !th.opts.log.DebugEnabled() {
		return
	}
	th.opts.log.Debug(msg, logger.Fields(
		logger.FieldState, th.state.String(),
		"pending", th.hasPending,
	))
}

// Close stops the throttler's timers and releases the source. Both are
// closed even if one fails.
func (th *Throttle[T]) Close() error {
	var errThrottler error
	if c, ok := th.throttler.(closer); ok {
		errThrottler = c.Close()
	}
	return stderrors.Join(errThrottler, closeStream(th.source))
}
