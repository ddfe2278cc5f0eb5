package stream_test

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
	"github.com/kbukum/streamext/stream"
	"github.com/kbukum/streamext/streamtest"
)

func TestTokenBucket_BurstThenRate(t *testing.T) {
	clk := clockz.NewFakeClock()
	src := streamtest.TimedSource(clk, streamtest.Periodic(tick), -1)
	cfg := stream.TokenBucketConfig{Rate: 100, Burst: 2}
	th := stream.ThrottleTokenBucket(src, clk, cfg, 1)
	defer th.Close()

	res := streamtest.Run[int](clk, th, streamtest.RunConfig{MaxItems: 5})
	assertTimeline(t, res, []at{{0, 0}, {1, 1}, {10, 10}, {20, 20}, {30, 30}})
}

func TestTokenBucket_SlowSourcePassesThrough(t *testing.T) {
	clk := clockz.NewFakeClock()
	src := streamtest.TimedSource(clk, streamtest.Periodic(100*tick), 3)
	th := stream.ThrottleTokenBucket(src, clk, stream.TokenBucketConfig{Rate: 100}, 1)

	res := streamtest.Run[int](clk, th, streamtest.RunConfig{})
	if !res.Done {
		t.Fatal("expected throttle to finish")
	}
	assertTimeline(t, res, []at{{0, 0}, {100, 1}, {200, 2}})
}

func TestTokenBucket_EmptyGateRefunds(t *testing.T) {
	_, task := streamtest.NewScheduler()
	clk := clockz.NewFakeClock()
	tb := stream.NewTokenBucketThrottler[int](clk, stream.TokenBucketConfig{Rate: 1, Burst: 3})

	tb.ItemPending(task)
	if !tb.PollTick(task) {
		t.Fatal("expected token from a full bucket")
	}
	tb.GateOpened(task, 0, false)
	if got := tb.Tokens(); got != 3 {
		t.Errorf("expected refunded bucket of 3, got %v", got)
	}
	if tb.PollTick(task) {
		t.Error("idle bucket must not tick")
	}
}

func TestTokenBucket_RefundAfterWait(t *testing.T) {
	_, task := streamtest.NewScheduler()
	clk := clockz.NewFakeClock()
	tb := stream.NewTokenBucketThrottler[int](clk, stream.TokenBucketConfig{Rate: 100, Burst: 1})

	tb.ItemPending(task)
	if !tb.PollTick(task) {
		t.Fatal("expected token from a full bucket")
	}
	tb.GateOpened(task, 1, true)
	if tb.PollTick(task) {
		t.Fatal("empty bucket must wait for a refill")
	}

	clk.Advance(10 * time.Millisecond)
	clk.BlockUntilReady()
	if !tb.PollTick(task) {
		t.Fatal("expected token after one refill period")
	}
	tb.GateOpened(task, 0, false)
	if got := tb.Tokens(); got != 1 {
		t.Errorf("expected the unused token back, got %v", got)
	}
}

func TestTokenBucket_CloseReturnsReservedToken(t *testing.T) {
	_, task := streamtest.NewScheduler()
	clk := clockz.NewFakeClock()
	tb := stream.NewTokenBucketThrottler[int](clk, stream.TokenBucketConfig{Rate: 100, Burst: 1})

	tb.ItemPending(task)
	tb.PollTick(task)
	tb.GateOpened(task, 1, true)
	if tb.PollTick(task) {
		t.Fatal("empty bucket must wait for a refill")
	}
	if got := tb.Tokens(); got >= 0 {
		t.Fatalf("expected the waiting tick to hold a reservation, got %v tokens", got)
	}

	if err := tb.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := tb.Tokens(); got != 0 {
		t.Errorf("expected reservation returned on close, got %v tokens", got)
	}
}

func TestTokenBucket_InvalidRatePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Fatalf("expected invalid config panic, got %v", r)
		}
	}()
	stream.NewTokenBucketThrottler[int](clockz.NewFakeClock(), stream.TokenBucketConfig{})
}
