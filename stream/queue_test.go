package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueue_DeliversInOrderThenDone(t *testing.T) {
	q := NewQueue[int](4)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if err := q.Send(ctx, i); err != nil {
			t.Fatal(err)
		}
	}
	q.CloseSend()

	task := NewTask(nil)
	var got []int
	for {
		p := q.PollNext(task)
		if p.IsDone() {
			break
		}
		item, ok := p.Item()
		if !ok {
			t.Fatal("unexpected Pending on a closed queue")
		}
		got = append(got, item)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestQueue_WakesConsumerOnSend(t *testing.T) {
	q := NewQueue[string](1)
	w := &countingWaker{}
	task := NewTask(w)

	if p := q.PollNext(task); !p.IsPending() {
		t.Fatalf("expected Pending, got %v", p)
	}
	if !q.TrySend("a") {
		t.Fatal("expected room in queue")
	}
	if w.n.Load() != 1 {
		t.Fatalf("expected wake-up on send, got %d", w.n.Load())
	}
	if q.TrySend("b") {
		t.Fatal("expected full queue to reject")
	}
}

func TestQueue_SendBlocksUntilConsumed(t *testing.T) {
	q := NewQueue[int](1)
	ctx := context.Background()
	if err := q.Send(ctx, 1); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	sent := make(chan struct{})
	go func() {
		defer wg.Done()
		if err := q.Send(ctx, 2); err != nil {
			t.Error(err)
		}
		close(sent)
	}()

	select {
	case <-sent:
		t.Fatal("send should block while full")
	case <-time.After(20 * time.Millisecond):
	}

	q.PollNext(NewTask(nil))
	wg.Wait()
}

func TestQueue_SendAfterClose(t *testing.T) {
	q := NewQueue[int](2)
	q.CloseSend()
	if err := q.Send(context.Background(), 1); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("expected ErrQueueClosed, got %v", err)
	}
	if p := q.PollNext(NewTask(nil)); !p.IsDone() {
		t.Errorf("expected Done, got %v", p)
	}
}

func TestQueue_SendCancelled(t *testing.T) {
	q := NewQueue[int](1)
	q.TrySend(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Send(ctx, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
