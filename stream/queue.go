package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Send after CloseSend.
var ErrQueueClosed = errors.New("stream: send on closed queue")

// Queue is a bounded hand-off between producer goroutines and a single
// polling consumer. Producers block in Send while the queue is full; the
// consumer side is a Stream that wakes its task whenever an item or the
// close signal arrives.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	waker  Waker
	slots  chan struct{}
}

// NewQueue creates a queue holding at most capacity unconsumed items.
// Capacity below 1 is treated as 1.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{slots: make(chan struct{}, capacity)}
}

// Send enqueues v, blocking while the queue is full.
func (q *Queue[T]) Send(ctx context.Context, v T) error {
	select {
	case q.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return q.push(v)
}

// TrySend enqueues v if there is room and reports whether it did.
func (q *Queue[T]) TrySend(v T) bool {
	select {
	case q.slots <- struct{}{}:
	default:
		return false
	}
	return q.push(v) == nil
}

func (q *Queue[T]) push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.slots
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	w := q.waker
	q.waker = nil
	q.mu.Unlock()

	if w != nil {
		w.Wake()
	}
	return nil
}

// CloseSend marks the end of the sequence. Items already queued are still
// delivered before the consumer sees Done.
func (q *Queue[T]) CloseSend() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	w := q.waker
	q.waker = nil
	q.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}

// PollNext implements Stream for the consumer side.
func (q *Queue[T]) PollNext(t *Task) Poll[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) > 0 {
		item := q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		<-q.slots
		return Ready(item)
	}
	if q.closed {
		return Done[T]()
	}
	q.waker = t.Waker()
	return Pending[T]()
}
