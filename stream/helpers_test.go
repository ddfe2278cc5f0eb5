package stream_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/streamext/errors"
	"github.com/kbukum/streamext/streamtest"
)

const tick = time.Millisecond

type at struct {
	ms   int64
	item int
}

func (a at) String() string { return fmt.Sprintf("%dms:%d", a.ms, a.item) }

func timeline(res streamtest.Result[int]) []at {
	out := make([]at, len(res.Emissions))
	for i, e := range res.Emissions {
		out[i] = at{ms: e.At.Milliseconds(), item: e.Item}
	}
	return out
}

func assertTimeline(t *testing.T, got streamtest.Result[int], want []at) {
	t.Helper()
	if g := timeline(got); !slices.Equal(g, want) {
		t.Errorf("timeline mismatch\n got: %v\nwant: %v", g, want)
	}
}

func assertItems(t *testing.T, got, want []int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// expectContractViolation runs fn and fails unless it panics with a
// CONTRACT_VIOLATION error.
func expectContractViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.HasCode(err, errors.ErrCodeContractViolation) {
			t.Fatalf("expected contract violation, got %v", r)
		}
	}()
	fn()
}
