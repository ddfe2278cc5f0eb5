package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/stream"
)

// DefaultBuffer is the queue size between an upstream iterator and a
// shaping stage.
const DefaultBuffer = 16

// Through runs the values of p through a stream combinator built by shape.
// Upstream errors are returned after the combinator released what it was
// holding.
func Through[I, O any](p *Pipeline[I], shape func(stream.Stream[I]) stream.Stream[O]) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			src := ToStream(ctx, p.create(ctx), DefaultBuffer)
			return &shapedIter[I, O]{
				src:    src,
				driver: stream.NewDriver(shape(src)),
			}
		},
	}
}

type shapedIter[I, O any] struct {
	src    *Source[I]
	driver *stream.Driver[O]
}

func (it *shapedIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	val, ok, err := it.driver.Next(ctx)
	if err != nil || ok {
		return val, ok, err
	}
	if err := it.src.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return val, false, err
	}
	return val, false, nil
}

func (it *shapedIter[I, O]) Close() error {
	err := it.driver.Close()
	return errors.Join(err, it.src.Close())
}

// Throttle releases at most one value per cfg.Period, keeping the latest
// value of every burst.
func Throttle[T any](p *Pipeline[T], clock clockz.Clock, cfg stream.ThrottleIntervalConfig, maxReadyCount int, opts ...stream.Option) *Pipeline[T] {
	return Through(p, func(s stream.Stream[T]) stream.Stream[T] {
		return stream.ThrottleInterval(s, clock, cfg, maxReadyCount, opts...)
	})
}

// ThrottleTokenBucket releases values at cfg.Rate, letting bursts of up to
// cfg.Burst through, and keeps the latest value while throttled.
func ThrottleTokenBucket[T any](p *Pipeline[T], clock clockz.Clock, cfg stream.TokenBucketConfig, maxReadyCount int, opts ...stream.Option) *Pipeline[T] {
	return Through(p, func(s stream.Stream[T]) stream.Stream[T] {
		return stream.ThrottleTokenBucket(s, clock, cfg, maxReadyCount, opts...)
	})
}

// Debounce releases the latest value once no newer value arrived for delay.
func Debounce[T any](p *Pipeline[T], clock clockz.Clock, delay time.Duration, opts ...stream.Option) *Pipeline[T] {
	return Through(p, func(s stream.Stream[T]) stream.Stream[T] {
		return stream.NewDebounce(s, clock, delay, opts...)
	})
}

// Dedup drops values equal to the value before.
func Dedup[T comparable](p *Pipeline[T]) *Pipeline[T] {
	return Through(p, stream.Dedup[T])
}

// DistinctUntilChanged drops values whose key equals the key of the value
// before.
func DistinctUntilChanged[T any, K comparable](p *Pipeline[T], key func(T) K) *Pipeline[T] {
	return Through(p, func(s stream.Stream[T]) stream.Stream[T] {
		return stream.DistinctUntilChangedMap(s, key)
	})
}
