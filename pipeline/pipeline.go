package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kbukum/streamext/logger"
	"github.com/kbukum/streamext/observability"
)

// Iterator provides pull-based sequential access to a sequence of values.
// stream.Driver satisfies it.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy, pull-based data pipeline.
// No work happens until values are pulled via Collect, Drain, or ForEach.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// Runnable is a fully-configured pipeline ready to execute.
type Runnable struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Named sets the name recorded on the run span.
func (r *Runnable) Named(name string) *Runnable {
	r.name = name
	return r
}

// Run executes the pipeline until completion or context cancellation.
// Each run is recorded as a "pipeline.run" span.
func (r *Runnable) Run(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "pipeline.run",
		attribute.String("pipeline.name", r.name))
	defer span.End()

	start := time.Now()
	n, err := r.run(ctx)
	span.SetAttributes(attribute.Int("pipeline.items", n))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if log := logger.Get("pipeline"); log.DebugEnabled() {
		log.Debug("pipeline finished",
			logger.DurationFields(r.name, time.Since(start)),
			logger.Fields(logger.FieldCount, n))
	}
	return err
}

// --- Constructors ---

// From creates a pipeline from an existing Iterator.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// FromSlice creates a pipeline from a slice of values.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// FromFunc creates a pipeline from a factory that produces an Iterator.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: fn}
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](p *Pipeline[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		name: "drain",
		run: func(ctx context.Context) (int, error) {
			iter := p.create(ctx)
			defer iter.Close()
			n := 0
			for {
				val, ok, err := iter.Next(ctx)
				if err != nil || !ok {
					return n, err
				}
				if err := sink(ctx, val); err != nil {
					return n, err
				}
				n++
			}
		},
	}
}

// Collect runs the pipeline and returns all values as a slice.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := Drain(p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	}).Named("collect").Run(ctx)
	return out, err
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	return Drain(p, fn).Run(ctx)
}

// Iter returns the raw Iterator for this pipeline. The caller must Close() it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
