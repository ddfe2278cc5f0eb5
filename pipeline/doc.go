// Package pipeline provides lazy, pull-based pipelines and bridges them to
// poll-based streams.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand.
//
// The shaping stages (Throttle, ThrottleTokenBucket, Debounce, Dedup,
// DistinctUntilChanged) hand the upstream iterator to a background pump
// feeding a stream.Queue and drive the stream combinator with a
// stream.Driver. Any other combinator plugs in through Through.
//
// # Usage
//
//	src := pipeline.FromSlice(events)
//	shaped := pipeline.Throttle(src, clockz.RealClock, stream.ThrottleIntervalConfig{
//	    Period: time.Second,
//	    Edge:   stream.Leading,
//	}, 1)
//	err := pipeline.Drain(shaped, publish).Named("events").Run(ctx)
package pipeline
