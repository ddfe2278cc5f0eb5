package stream

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/logger"
)

// Debounce releases the latest source item once the source has been quiet
// for the configured delay. Every new item restarts the delay. When the
// source ends, the item still pending is released after its delay and the
// stream then reports Done.
type Debounce[T any] struct {
	source  Stream[T] // nil once exhausted
	clock   clockz.Clock
	delay   time.Duration
	pending *Delayed[T]
	done    bool
	opts    options
}

// NewDebounce wraps source.
func NewDebounce[T any](source Stream[T], clock clockz.Clock, delay time.Duration, opts ...Option) *Debounce[T] {
	return &Debounce[T]{
		source: source,
		clock:  clock,
		delay:  delay,
		opts:   buildOptions("debounce", opts),
	}
}

// PollNext implements Stream.
func (d *Debounce[T]) PollNext(t *Task) Poll[T] {
	if d.source != nil {
		var (
			last    T
			hasLast bool
		)
		for {
			p := d.source.PollNext(t)
			item, ok := p.Item()
			if ok {
				d.opts.observer.ItemReceived()
				if hasLast {
					d.opts.observer.ItemDropped()
				}
				last, hasLast = item, true
				continue
			}
			if p.IsDone() {
				if err := closeStream(d.source); err != nil {
					d.opts.log.Warn("closing exhausted source failed", logger.ErrorFields("close source", err))
				}
				d.source = nil
				d.logTransition("source exhausted")
			}
			break
		}

		if hasLast {
			if d.pending != nil {
				d.pending.Stop()
				d.opts.observer.ItemDropped()
			}
			d.pending = NewDelayed(d.clock, last, d.delay)
		}
	}

	if d.pending == nil {
		if d.source == nil {
			d.finish()
			return Done[T]()
		}
		return Pending[T]()
	}

	item, ok := d.pending.Poll(t)
	if !ok {
		return Pending[T]()
	}
	d.pending = nil
	d.opts.observer.ItemEmitted()
	return Ready(item)
}

func (d *Debounce[T]) finish() {
	if d.done {
		return
	}
	d.done = true
	d.opts.observer.Finished()
	d.logTransition("finished")
}

func (d *Debounce[T]) logTransition(msg string) {
	if !d.opts.log.DebugEnabled() {
		return
	}
	d.opts.log.Debug(msg, logger.Fields(
		logger.FieldDelay, d.delay.String(),
		"pending", d.pending != nil,
	))
}

// Close stops the pending delay and releases the source.
func (d *Debounce[T]) Close() error {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	if d.source == nil {
		return nil
	}
	err := closeStream(d.source)
	d.source = nil
	return err
}
