package streamtest

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/stream"
)

// Emission is an item together with the virtual time it was emitted at,
// relative to the start of Run.
type Emission[T any] struct {
	At   time.Duration
	Item T
}

// RunConfig bounds a Run.
type RunConfig struct {
	// Step is how far the clock advances while the stream is idle.
	// Defaults to 1ms.
	Step time.Duration
	// Limit is the virtual time after which Run gives up. Defaults to 10s.
	Limit time.Duration
	// MaxItems stops the run after that many emissions. Zero means no limit.
	MaxItems int
}

// Result is the outcome of Run.
type Result[T any] struct {
	Emissions []Emission[T]
	// Done is true if the stream reported exhaustion.
	Done bool
	// Polls counts PollNext calls.
	Polls int
	// Elapsed is the virtual time consumed.
	Elapsed time.Duration
}

// Items returns the emitted items without timestamps.
func (r Result[T]) Items() []T {
	items := make([]T, len(r.Emissions))
	for i, e := range r.Emissions {
		items[i] = e.Item
	}
	return items
}

// Run drives s on clk until it is done, MaxItems were emitted or Limit
// elapsed. The stream is polled once up front, again right after each
// Ready, and otherwise only after a wake-up.
func Run[T any](clk *clockz.FakeClock, s stream.Stream[T], cfg RunConfig) Result[T] {
	if cfg.Step <= 0 {
		cfg.Step = time.Millisecond
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10 * time.Second
	}

	sched, task := NewScheduler()
	start := clk.Now()
	var res Result[T]

	poll := true
	for {
		res.Elapsed = clk.Now().Sub(start)
		if poll {
			sched.TakeWake()
			res.Polls++
			p := s.PollNext(task)
			if item, ok := p.Item(); ok {
				res.Emissions = append(res.Emissions, Emission[T]{At: res.Elapsed, Item: item})
				if cfg.MaxItems > 0 && len(res.Emissions) >= cfg.MaxItems {
					return res
				}
				continue
			}
			if p.IsDone() {
				res.Done = true
				return res
			}
		}

		if sched.Woken() {
			poll = true
			continue
		}
		if res.Elapsed >= cfg.Limit {
			return res
		}
		clk.Advance(cfg.Step)
		clk.BlockUntilReady()
		poll = sched.Woken()
	}
}
