package stream

// Result pairs a value with an error, for streams whose items can fail
// individually without ending the stream.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Result.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Err returns a failed Result.
func Err[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsOk reports whether r carries a value.
func (r Result[T]) IsOk() bool { return r.Err == nil }
