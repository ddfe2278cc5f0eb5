// Package stream provides poll-based sequences and the combinators that shape
// how fast and how redundantly items leave them.
//
// A Stream is polled, never blocked on. Each call to PollNext returns one of
// three outcomes: an item is Ready, the stream is Done for good, or the stream
// is Pending. A Pending stream has stored the Task's Waker and will call it
// once polling again can make progress. A driver (see Driver) owns the loop:
// poll, and on Pending park until woken.
//
// # Combinators
//
//   - Throttle: keeps the latest pending item and releases it when a
//     Throttler opens the gate (IntervalThrottler, TokenBucketThrottler)
//   - Debounce: keeps the latest item and releases it once no newer item
//     arrived for a fixed delay
//   - FilterStateful, Dedup, DistinctUntilChanged: adjacent-duplicate filters
//
// # Usage
//
//	clock := clockz.RealClock
//	src := stream.FromSlice([]int{1, 2, 3, 4, 5})
//	th := stream.ThrottleInterval(src, clock, stream.ThrottleIntervalConfig{
//	    Period: 100 * time.Millisecond,
//	    Edge:   stream.Leading,
//	}, 1)
//	items, err := stream.Collect(ctx, th)
//
// Timers come from a clockz.Clock, so tests drive time with clockz.NewFakeClock.
package stream
