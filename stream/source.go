package stream

// FromSlice returns a stream that is always ready and yields items in order.
func FromSlice[T any](items []T) Stream[T] {
	return &sliceStream[T]{items: items}
}

type sliceStream[T any] struct {
	items []T
	index int
}

func (s *sliceStream[T]) PollNext(_ *Task) Poll[T] {
	if s.index >= len(s.items) {
		return Done[T]()
	}
	item := s.items[s.index]
	s.index++
	return Ready(item)
}

// Empty returns a stream that is exhausted from the start.
func Empty[T any]() Stream[T] {
	return StreamFunc[T](func(_ *Task) Poll[T] { return Done[T]() })
}

// Once returns a stream yielding a single item.
func Once[T any](item T) Stream[T] {
	return FromSlice([]T{item})
}

// Take yields at most n items of s and then reports Done without polling
// s any further.
func Take[T any](s Stream[T], n int) Stream[T] {
	return &takeStream[T]{source: s, remaining: n}
}

type takeStream[T any] struct {
	source    Stream[T]
	remaining int
}

func (s *takeStream[T]) PollNext(t *Task) Poll[T] {
	if s.remaining <= 0 || s.source == nil {
		return Done[T]()
	}
	p := s.source.PollNext(t)
	switch {
	case p.IsReady():
		s.remaining--
	case p.IsDone():
		s.source = nil
	}
	return p
}

func (s *takeStream[T]) Close() error {
	if s.source == nil {
		return nil
	}
	return closeStream(s.source)
}
