// Package streamtest provides deterministic, virtual-time helpers for
// testing poll-based streams.
//
// Time is driven by a clockz fake clock. Run polls a stream only when it
// has been woken and advances the clock otherwise, so a stream that forgets
// to register its waker stalls instead of passing by accident.
//
//	clk := clockz.NewFakeClock()
//	src := streamtest.TimedSource(clk, streamtest.Periodic(17*time.Millisecond), 10)
//	got := streamtest.Run(clk, stream.NewDebounce[int](src, clk, 10*time.Millisecond), streamtest.RunConfig{})
package streamtest
