package stream

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
)

// Delayed holds a value until a one-shot delay has elapsed.
//
// Once Poll has returned the value, the Delayed is spent and polling it
// again panics. Stop cancels the delay; a Delayed that is replaced before
// it resolves must be stopped by its owner.
type Delayed[T any] struct {
	output T
	taken  bool
	sleep  *Sleep
}

// NewDelayed wraps value behind a delay of d on clock.
func NewDelayed[T any](clock clockz.Clock, value T, d time.Duration) *Delayed[T] {
	return &Delayed[T]{
		output: value,
		sleep:  NewSleep(clock, d),
	}
}

// Poll returns the value once the delay has elapsed.
func (d *Delayed[T]) Poll(t *Task) (T, bool) {
	var zero T
	if d.taken {
		panic(errors.ContractViolation("delayed", "polled again after ready"))
	}
	if !d.sleep.Poll(t) {
		return zero, false
	}
	out := d.output
	d.output = zero
	d.taken = true
	return out, true
}

// Deadline returns the instant the value becomes available.
func (d *Delayed[T]) Deadline() time.Time { return d.sleep.Deadline() }

// Stop cancels the delay.
func (d *Delayed[T]) Stop() { d.sleep.Stop() }
