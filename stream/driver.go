package stream

import "context"

// Driver polls a single stream on the calling goroutine and parks between
// polls until the stream's waker fires. Its Next method matches the
// pipeline.Iterator contract, so a Driver plugs directly into pipelines.
//
// A Driver is not safe for concurrent use.
type Driver[T any] struct {
	stream Stream[T]
	task   *Task
	wake   chan struct{}
	done   bool
	polls  int
}

// NewDriver returns a Driver for s.
func NewDriver[T any](s Stream[T]) *Driver[T] {
	d := &Driver[T]{
		stream: s,
		wake:   make(chan struct{}, 1),
	}
	d.task = NewTask(WakerFunc(d.signal))
	return d
}

func (d *Driver[T]) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Next polls until the stream yields an item, finishes or ctx is cancelled.
// It returns (zero, false, nil) once the stream is exhausted.
func (d *Driver[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if d.done {
		return zero, false, nil
	}
	for {
		d.polls++
		p := d.stream.PollNext(d.task)
		if item, ok := p.Item(); ok {
			return item, true, nil
		}
		if p.IsDone() {
			d.done = true
			return zero, false, nil
		}
		select {
		case <-d.wake:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
}

// Polls returns how many times the stream has been polled.
func (d *Driver[T]) Polls() int { return d.polls }

// Close releases timers held by the driven stream.
func (d *Driver[T]) Close() error {
	return closeStream(d.stream)
}

// Collect drives s to completion and returns every item it yielded.
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	d := NewDriver(s)
	defer d.Close()
	var items []T
	for {
		item, ok, err := d.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}
