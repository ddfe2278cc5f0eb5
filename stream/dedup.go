package stream

import "errors"

// DedupMemo drops items whose memo equals the memo of the item before.
// An item mapped to ignore is always passed through and resets the
// comparison, so the item after it is passed through as well.
func DedupMemo[T any, M comparable](source Stream[T], ignore M, memo func(T) M) Stream[T] {
	return FilterStateful(source, ignore, func(last *M, item T) bool {
		next := memo(item)
		if *last != ignore && *last == next {
			return false
		}
		*last = next
		return true
	})
}

// memoOf makes the zero value distinguishable from any recorded value.
type memoOf[T comparable] struct {
	value T
	set   bool
}

// Dedup drops items equal to the item before.
func Dedup[T comparable](source Stream[T]) Stream[T] {
	return DedupMemo(source, memoOf[T]{}, func(item T) memoOf[T] {
		return memoOf[T]{value: item, set: true}
	})
}

// DedupOk drops successful results whose value equals the value of the
// result before. Failed results pass through and reset the comparison.
func DedupOk[T comparable](source Stream[Result[T]]) Stream[Result[T]] {
	return DedupMemo(source, memoOf[T]{}, func(r Result[T]) memoOf[T] {
		if r.Err != nil {
			return memoOf[T]{}
		}
		return memoOf[T]{value: r.Value, set: true}
	})
}

// DedupErr drops failed results whose error matches the error of the
// result before, as reported by errors.Is. Successful results pass through
// and reset the comparison.
func DedupErr[T any](source Stream[Result[T]]) Stream[Result[T]] {
	return FilterStateful(source, Last[error]{}, func(last *Last[error], r Result[T]) bool {
		if r.Err == nil {
			last.Clear()
			return true
		}
		if last.Valid && errors.Is(r.Err, last.Value) {
			return false
		}
		last.Set(r.Err)
		return true
	})
}
