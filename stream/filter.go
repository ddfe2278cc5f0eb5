package stream

// Last holds the previous value seen by a stateful filter.
type Last[T any] struct {
	Value T
	Valid bool
}

// Set records v.
func (l *Last[T]) Set(v T) {
	l.Value = v
	l.Valid = true
}

// Clear forgets the recorded value.
func (l *Last[T]) Clear() {
	var zero T
	l.Value = zero
	l.Valid = false
}

type filterStream[T, S any] struct {
	source Stream[T]
	state  S
	keep   func(*S, T) bool
}

// FilterStateful passes through the source items for which keep returns
// true. keep may update the filter state, which starts as init.
func FilterStateful[T, S any](source Stream[T], init S, keep func(state *S, item T) bool) Stream[T] {
	return &filterStream[T, S]{source: source, state: init, keep: keep}
}

func (f *filterStream[T, S]) PollNext(t *Task) Poll[T] {
	for {
		p := f.source.PollNext(t)
		item, ok := p.Item()
		if !ok || f.keep(&f.state, item) {
			return p
		}
	}
}

func (f *filterStream[T, S]) Close() error {
	return closeStream(f.source)
}
