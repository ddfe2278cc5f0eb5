package streamtest

import (
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestSchedules(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name     string
		schedule Schedule
		want     []time.Duration
	}{
		{"periodic", Periodic(10 * ms), []time.Duration{0, 10 * ms, 20 * ms, 30 * ms}},
		{"periodic zero", Periodic(0), []time.Duration{0, 0, 0, 0}},
		{"alternating", Alternating(10*ms, 20*ms), []time.Duration{0, 10 * ms, 30 * ms, 40 * ms, 60 * ms}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i, want := range tc.want {
				if got := tc.schedule(i); got != want {
					t.Errorf("schedule(%d) = %v, want %v", i, got, want)
				}
			}
		})
	}

	s, n := Offsets(5*ms, 7*ms)
	if n != 2 || s(0) != 5*ms || s(1) != 7*ms {
		t.Errorf("unexpected offsets schedule: n=%d", n)
	}
}

func TestRun_TimedSource(t *testing.T) {
	clk := clockz.NewFakeClock()
	res := Run(clk, TimedSource(clk, Periodic(10*time.Millisecond), 3), RunConfig{})

	if !res.Done {
		t.Fatal("expected the source to finish")
	}
	want := []time.Duration{0, 10 * time.Millisecond, 20 * time.Millisecond}
	if len(res.Emissions) != len(want) {
		t.Fatalf("expected %d emissions, got %v", len(want), res.Emissions)
	}
	for i, e := range res.Emissions {
		if e.At != want[i] || e.Item != i {
			t.Errorf("emission %d = {%v, %d}, want {%v, %d}", i, e.At, e.Item, want[i], i)
		}
	}
	if items := res.Items(); len(items) != 3 || items[2] != 2 {
		t.Errorf("unexpected items %v", items)
	}
}

func TestRun_MaxItems(t *testing.T) {
	clk := clockz.NewFakeClock()
	res := Run(clk, TimedSource(clk, Periodic(time.Millisecond), -1), RunConfig{MaxItems: 5})

	if res.Done {
		t.Error("an infinite source must not finish")
	}
	if len(res.Emissions) != 5 {
		t.Errorf("expected 5 emissions, got %d", len(res.Emissions))
	}
}

func TestRun_PendingHitsLimit(t *testing.T) {
	clk := clockz.NewFakeClock()
	res := Run(clk, Pending[int](), RunConfig{Limit: 50 * time.Millisecond, Step: 5 * time.Millisecond})

	if res.Done || len(res.Emissions) != 0 {
		t.Fatalf("expected nothing, got %+v", res)
	}
	if res.Polls != 1 {
		t.Errorf("a stream that never wakes is polled once, got %d", res.Polls)
	}
	if res.Elapsed != 50*time.Millisecond {
		t.Errorf("expected 50ms elapsed, got %v", res.Elapsed)
	}
}

func TestScheduler(t *testing.T) {
	s, task := NewScheduler()
	if s.Woken() {
		t.Fatal("fresh scheduler must not be woken")
	}

	task.Wake()
	task.Waker().Wake()
	if !s.Woken() {
		t.Fatal("expected an outstanding wake")
	}
	if !s.TakeWake() {
		t.Fatal("TakeWake should report the wake")
	}
	if s.TakeWake() {
		t.Error("TakeWake should clear the wake")
	}
	if s.Total() != 2 {
		t.Errorf("expected 2 total wakes, got %d", s.Total())
	}
}
