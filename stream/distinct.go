package stream

import "errors"

// FilterDistinctUntilChanged reports whether next differs from the item
// recorded in last, recording next if so.
//
// See https://rxmarbles.com/#distinctUntilChanged.
func FilterDistinctUntilChanged[T comparable](last *Last[T], next T) bool {
	if last.Valid && last.Value == next {
		return false
	}
	last.Set(next)
	return true
}

// FilterMapDistinctUntilChanged is FilterDistinctUntilChanged on the value
// mapFn computes for each item. mapFn is called once per item.
func FilterMapDistinctUntilChanged[T any, U comparable](mapFn func(T) U, last *Last[U], next T) bool {
	return FilterDistinctUntilChanged(last, mapFn(next))
}

// FilterDistinctUntilChangedOk applies FilterDistinctUntilChanged to
// successful results. Failed results are kept and reset last.
func FilterDistinctUntilChangedOk[T comparable](last *Last[T], next Result[T]) bool {
	if next.Err != nil {
		last.Clear()
		return true
	}
	return FilterDistinctUntilChanged(last, next.Value)
}

// FilterDistinctUntilChangedErr drops failed results whose error matches
// the previous one by errors.Is. Successful results are kept and reset last.
func FilterDistinctUntilChangedErr[T any](last *Last[error], next Result[T]) bool {
	if next.Err == nil {
		last.Clear()
		return true
	}
	if last.Valid && errors.Is(next.Err, last.Value) {
		return false
	}
	last.Set(next.Err)
	return true
}

// DistinctUntilChanged drops items equal to the item before.
func DistinctUntilChanged[T comparable](source Stream[T]) Stream[T] {
	return FilterStateful(source, Last[T]{}, FilterDistinctUntilChanged[T])
}

// DistinctUntilChangedMap drops items whose mapped value equals the mapped
// value of the item before.
func DistinctUntilChangedMap[T any, U comparable](source Stream[T], mapFn func(T) U) Stream[T] {
	return FilterStateful(source, Last[U]{}, func(last *Last[U], next T) bool {
		return FilterMapDistinctUntilChanged(mapFn, last, next)
	})
}

// DistinctUntilChangedOk drops successful results equal to the previous
// successful result. Failed results pass through.
func DistinctUntilChangedOk[T comparable](source Stream[Result[T]]) Stream[Result[T]] {
	return FilterStateful(source, Last[T]{}, FilterDistinctUntilChangedOk[T])
}

// DistinctUntilChangedErr drops failed results matching the previous
// failed result. Successful results pass through.
func DistinctUntilChangedErr[T any](source Stream[Result[T]]) Stream[Result[T]] {
	return FilterStateful(source, Last[error]{}, FilterDistinctUntilChangedErr[T])
}
