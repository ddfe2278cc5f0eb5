package stream

import (
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
	"golang.org/x/time/rate"

	"github.com/kbukum/streamext/errors"
)

// TokenBucketConfig configures a TokenBucketThrottler.
type TokenBucketConfig struct {
	// Rate is the number of items released per second on average.
	Rate float64
	// Burst is the number of items that may be released back to back
	// after a quiet period. Defaults to 1.
	Burst int
}

// TokenBucketThrottler opens the gate whenever the limiter grants a token.
// Tokens refill continuously at Rate up to Burst. Unlike IntervalThrottler
// it lets short bursts through unthrottled.
//
// The limiter is always consulted with the throttler's clock, so a fake
// clock drives it deterministically.
type TokenBucketThrottler[T any] struct {
	clock clockz.Clock
	lim   *rate.Limiter
	phase gatePhase

	// res is the reservation behind the current or last tick; actAt is
	// the instant it was granted.
	res   *rate.Reservation
	actAt time.Time
	sleep *Sleep
}

// NewTokenBucketThrottler creates a full bucket. It panics if cfg.Rate is
// not positive.
func NewTokenBucketThrottler[T any](clock clockz.Clock, cfg TokenBucketConfig) *TokenBucketThrottler[T] {
	if cfg.Rate <= 0 {
		panic(errors.InvalidConfig("rate", fmt.Sprintf("must be positive, got %v", cfg.Rate)))
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &TokenBucketThrottler[T]{
		clock: clock,
		lim:   rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
	}
}

// Tokens returns the number of tokens currently available.
func (tb *TokenBucketThrottler[T]) Tokens() float64 {
	return tb.lim.TokensAt(tb.clock.Now())
}

// PollTick implements Throttler.
func (tb *TokenBucketThrottler[T]) PollTick(t *Task) bool {
	if tb.phase == gateIdle {
		return false
	}

	if tb.sleep == nil {
		now := tb.clock.Now()
		tb.res = tb.lim.ReserveN(now, 1)
		wait := tb.res.DelayFrom(now)
		if wait <= 0 {
			tb.actAt = now
			return true
		}
		tb.actAt = now.Add(wait)
		tb.sleep = NewSleep(tb.clock, wait)
	}

	if !tb.sleep.Poll(t) {
		return false
	}
	tb.sleep = nil
	return true
}

// ItemPending implements Throttler.
func (tb *TokenBucketThrottler[T]) ItemPending(_ *Task) {
	if tb.phase == gateIdle {
		tb.phase = gatePending
	}
}

// GateOpened implements Throttler. A tick that found nothing to release
// gives its token back.
func (tb *TokenBucketThrottler[T]) GateOpened(_ *Task, _ T, ok bool) {
	if tb.phase == gateIdle {
		panic(errors.ContractViolation("token bucket throttler", "gate opened while idle"))
	}
	if ok {
		tb.res = nil
		return
	}
	if tb.res != nil {
		tb.res.CancelAt(tb.actAt)
		tb.res = nil
	}
	tb.phase = gateIdle
}

// Close stops any pending refill timer and returns its reserved token.
func (tb *TokenBucketThrottler[T]) Close() error {
	if tb.sleep != nil {
		tb.sleep.Stop()
		tb.sleep = nil
		if tb.res != nil {
			tb.res.CancelAt(tb.clock.Now())
		}
	}
	tb.res = nil
	return nil
}

// ThrottleTokenBucket throttles source with a token bucket.
func ThrottleTokenBucket[T any](source Stream[T], clock clockz.Clock, cfg TokenBucketConfig, maxReadyCount int, opts ...Option) *Throttle[T] {
	return NewThrottle[T](source, NewTokenBucketThrottler[T](clock, cfg), maxReadyCount, opts...)
}
