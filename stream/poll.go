package stream

type pollState uint8

const (
	statePending pollState = iota
	stateReady
	stateDone
)

// Poll is the outcome of polling a Stream once.
type Poll[T any] struct {
	item  T
	state pollState
}

// Ready returns a Poll carrying item.
func Ready[T any](item T) Poll[T] {
	return Poll[T]{item: item, state: stateReady}
}

// Done returns a Poll signalling permanent exhaustion.
func Done[T any]() Poll[T] {
	return Poll[T]{state: stateDone}
}

// Pending returns a Poll signalling that no item is available yet.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// IsReady reports whether the poll carries an item.
func (p Poll[T]) IsReady() bool { return p.state == stateReady }

// IsDone reports whether the stream is exhausted.
func (p Poll[T]) IsDone() bool { return p.state == stateDone }

// IsPending reports whether the stream has nothing to offer yet.
func (p Poll[T]) IsPending() bool { return p.state == statePending }

// Item returns the carried item and whether the poll was Ready.
func (p Poll[T]) Item() (T, bool) {
	return p.item, p.state == stateReady
}

func (p Poll[T]) String() string {
	switch p.state {
	case stateReady:
		return "Ready"
	case stateDone:
		return "Done"
	default:
		return "Pending"
	}
}

// Waker schedules a task to be polled again. Wake may be called from any
// goroutine, any number of times.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to the Waker interface.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

type noopWaker struct{}

func (noopWaker) Wake() {}

// Task is the polling context passed to every PollNext call.
type Task struct {
	waker Waker
}

// NewTask returns a Task whose wake-ups are delivered to w.
func NewTask(w Waker) *Task {
	if w == nil {
		w = noopWaker{}
	}
	return &Task{waker: w}
}

// Waker returns the waker to store when returning Pending.
func (t *Task) Waker() Waker { return t.waker }

// Wake requests that the task be polled again right away, without waiting
// for any external event.
func (t *Task) Wake() { t.waker.Wake() }

// Stream is a pull-based, non-blocking sequence of items.
//
// PollNext must not block. It returns Pending after arranging for the
// task's waker to be called, Ready with the next item, or Done once the
// sequence is exhausted. A stream that returned Done must not be polled again.
type Stream[T any] interface {
	PollNext(t *Task) Poll[T]
}

// StreamFunc adapts a poll function to the Stream interface.
type StreamFunc[T any] func(t *Task) Poll[T]

// PollNext calls f.
func (f StreamFunc[T]) PollNext(t *Task) Poll[T] { return f(t) }

// closer is implemented by streams that hold timers or goroutines.
type closer interface {
	Close() error
}

// closeStream releases s if it holds resources.
func closeStream(s any) error {
	if c, ok := s.(closer); ok {
		return c.Close()
	}
	return nil
}
