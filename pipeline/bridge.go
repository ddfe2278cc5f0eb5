package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kbukum/streamext/stream"
)

// FromStream creates a pipeline that polls s. The stream is single-use:
// running the pipeline twice continues where the first run stopped.
func FromStream[T any](s stream.Stream[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return stream.NewDriver(s)
		},
	}
}

// ErrCloseTimeout is returned by Source.Close when the upstream iterator
// did not return from Next after its context was cancelled.
var ErrCloseTimeout = errors.New("pipeline: source iterator ignored cancellation")

// closeWait bounds how long Source.Close waits for the pump to stop.
var closeWait = 5 * time.Second

// Source is a stream fed by an Iterator on a background goroutine.
type Source[T any] struct {
	queue  *stream.Queue[T]
	cancel context.CancelFunc
	done   chan struct{}
	iter   Iterator[T]

	mu  sync.Mutex
	err error

	closeOnce sync.Once
	closeErr  error
}

// ToStream pumps it into a stream through a queue holding up to buffer
// items. The pump stops when it is exhausted, fails, or ctx is cancelled;
// the failure is available from Err once the stream reported Done.
//
// it.Next must return once its context is cancelled. An iterator that
// keeps blocking makes Close give up with ErrCloseTimeout.
func ToStream[T any](ctx context.Context, it Iterator[T], buffer int) *Source[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Source[T]{
		queue:  stream.NewQueue[T](buffer),
		cancel: cancel,
		done:   make(chan struct{}),
		iter:   it,
	}
	go s.pump(ctx)
	return s
}

func (s *Source[T]) pump(ctx context.Context) {
	defer close(s.done)
	defer s.queue.CloseSend()
	for {
		val, ok, err := s.iter.Next(ctx)
		if err != nil {
			s.setErr(err)
			return
		}
		if !ok {
			return
		}
		if err := s.queue.Send(ctx, val); err != nil {
			s.setErr(err)
			return
		}
	}
}

func (s *Source[T]) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// PollNext implements stream.Stream.
func (s *Source[T]) PollNext(t *stream.Task) stream.Poll[T] {
	return s.queue.PollNext(t)
}

// Err returns the error that stopped the pump, if any.
func (s *Source[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the pump and closes the underlying iterator. It is safe to
// call more than once. If the pump does not stop within closeWait, Close
// returns ErrCloseTimeout and the iterator is closed once Next returns.
func (s *Source[T]) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		timer := time.NewTimer(closeWait)
		defer timer.Stop()
		select {
		case <-s.done:
			s.closeErr = s.iter.Close()
		case <-timer.C:
			s.closeErr = ErrCloseTimeout
			go func() {
				<-s.done
				_ = s.iter.Close()
			}()
		}
	})
	return s.closeErr
}
