package stream

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
)

type countingWaker struct{ n atomic.Int64 }

func (w *countingWaker) Wake() { w.n.Add(1) }

func advance(clk *clockz.FakeClock, d time.Duration) {
	clk.Advance(d)
	clk.BlockUntilReady()
}

func TestSleep_WakesAtDeadline(t *testing.T) {
	clk := clockz.NewFakeClock()
	w := &countingWaker{}
	task := NewTask(w)

	s := NewSleep(clk, 10*time.Millisecond)
	if s.Poll(task) {
		t.Fatal("expected sleep to be pending")
	}
	advance(clk, 9*time.Millisecond)
	if w.n.Load() != 0 {
		t.Fatal("woken too early")
	}
	advance(clk, time.Millisecond)
	if w.n.Load() != 1 {
		t.Fatalf("expected one wake-up, got %d", w.n.Load())
	}
	if !s.Poll(task) {
		t.Fatal("expected sleep to be elapsed")
	}
}

func TestSleep_ZeroIsReady(t *testing.T) {
	s := NewSleep(clockz.NewFakeClock(), 0)
	if !s.Poll(NewTask(nil)) {
		t.Fatal("expected zero sleep to be ready")
	}
}

func TestSleep_Stop(t *testing.T) {
	clk := clockz.NewFakeClock()
	w := &countingWaker{}
	s := NewSleep(clk, time.Millisecond)
	s.Poll(NewTask(w))
	s.Stop()
	advance(clk, 5*time.Millisecond)
	if w.n.Load() != 0 {
		t.Fatal("stopped sleep must not wake")
	}
}

func TestInterval_FirstTickImmediate(t *testing.T) {
	clk := clockz.NewFakeClock()
	iv := NewInterval(clk, 10*time.Millisecond)
	task := NewTask(nil)
	if !iv.PollTick(task) {
		t.Fatal("expected immediate first tick")
	}
	if iv.PollTick(task) {
		t.Fatal("expected second tick to wait a period")
	}
}

func TestInterval_SkipsMissedTicks(t *testing.T) {
	clk := clockz.NewFakeClock()
	start := clk.Now()
	iv := NewInterval(clk, 10*time.Millisecond)
	task := NewTask(nil)
	iv.PollTick(task)

	advance(clk, 35*time.Millisecond)
	if !iv.PollTick(task) {
		t.Fatal("expected a tick after being late")
	}
	if iv.PollTick(task) {
		t.Fatal("missed ticks must not be delivered in a burst")
	}
	if got, want := iv.Deadline().Sub(start), 40*time.Millisecond; got != want {
		t.Errorf("expected next deadline on the grid at %v, got %v", want, got)
	}
}

func TestInterval_Reset(t *testing.T) {
	clk := clockz.NewFakeClock()
	iv := NewInterval(clk, 10*time.Millisecond)
	task := NewTask(nil)

	iv.Reset()
	if iv.PollTick(task) {
		t.Fatal("expected Reset to delay the next tick by a period")
	}
	advance(clk, 10*time.Millisecond)
	if !iv.PollTick(task) {
		t.Fatal("expected tick one period after Reset")
	}

	iv.ResetImmediately()
	if !iv.PollTick(task) {
		t.Fatal("expected tick right after ResetImmediately")
	}
}

func TestInterval_WakesRegisteredTask(t *testing.T) {
	clk := clockz.NewFakeClock()
	w := &countingWaker{}
	task := NewTask(w)
	iv := NewInterval(clk, 10*time.Millisecond)
	iv.PollTick(task)

	if iv.PollTick(task) {
		t.Fatal("expected pending tick")
	}
	advance(clk, 5*time.Millisecond)
	// Moving the deadline re-arms the timer for the new instant.
	iv.Reset()
	if iv.PollTick(task) {
		t.Fatal("expected pending tick after Reset")
	}
	advance(clk, 5*time.Millisecond)
	if got := w.n.Load(); got != 0 {
		t.Fatalf("expected no wake-up at the stale deadline, got %d", got)
	}
	advance(clk, 5*time.Millisecond)
	if got := w.n.Load(); got != 1 {
		t.Fatalf("expected exactly one wake-up, got %d", got)
	}
	iv.Stop()
}

func TestInterval_PanicsOnNonPositivePeriod(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Fatalf("expected invalid config panic, got %v", r)
		}
	}()
	NewInterval(clockz.NewFakeClock(), 0)
}

func TestDelayed_PollTwicePanics(t *testing.T) {
	clk := clockz.NewFakeClock()
	d := NewDelayed(clk, "v", 0)
	task := NewTask(nil)

	v, ok := d.Poll(task)
	if !ok || v != "v" {
		t.Fatalf("expected ready value, got %q %v", v, ok)
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeContractViolation) {
			t.Fatalf("expected contract violation, got %v", r)
		}
	}()
	d.Poll(task)
}

func TestDelayed_WaitsForDelay(t *testing.T) {
	clk := clockz.NewFakeClock()
	task := NewTask(nil)
	d := NewDelayed(clk, 3, 5*time.Millisecond)

	if _, ok := d.Poll(task); ok {
		t.Fatal("expected value to be delayed")
	}
	advance(clk, 5*time.Millisecond)
	if v, ok := d.Poll(task); !ok || v != 3 {
		t.Fatalf("expected 3, got %d %v", v, ok)
	}
}

func TestIntervalThrottler_GateOpenedWhileIdlePanics(t *testing.T) {
	it := NewIntervalThrottler[int](clockz.NewFakeClock(), ThrottleIntervalConfig{Period: time.Millisecond})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeContractViolation) {
			t.Fatalf("expected contract violation, got %v", r)
		}
	}()
	it.GateOpened(NewTask(nil), 0, false)
}

func TestIntervalThrottler_IdleNeverTicks(t *testing.T) {
	clk := clockz.NewFakeClock()
	task := NewTask(nil)
	for _, period := range []time.Duration{0, time.Millisecond} {
		it := NewIntervalThrottler[int](clk, ThrottleIntervalConfig{Period: period})
		if it.PollTick(task) {
			t.Errorf("period %v: idle throttler must not tick", period)
		}
		it.ItemPending(task)
		if !it.PollTick(task) {
			t.Errorf("period %v: expected leading tick", period)
		}
		it.GateOpened(task, 1, false)
		if it.PollTick(task) {
			t.Errorf("period %v: expected idle after empty gate", period)
		}
		_ = it.Close()
	}
}

func TestParseEdge(t *testing.T) {
	tests := []struct {
		in      string
		want    IntervalEdge
		wantErr bool
	}{
		{"leading", Leading, false},
		{"Trailing", Trailing, false},
		{" trailing ", Trailing, false},
		{"middle", Leading, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEdge(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
