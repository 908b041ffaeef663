package packet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vuthanhtrung2010/judge-server/core/grading"
)

func TestDispatcherFlushesOnTicker(t *testing.T) {
	var mu sync.Mutex
	var batches [][]TestCaseStatus

	d := NewDispatcher(5*time.Millisecond, 16, func(batch []TestCaseStatus) {
		mu.Lock()
		defer mu.Unlock()
		cp := make([]TestCaseStatus, len(batch))
		copy(cp, batch)
		batches = append(batches, cp)
	})

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)

	for i := 1; i <= 3; i++ {
		if err := d.Enqueue(ctx, TestCaseStatus{CaseNumber: i, Result: &grading.Result{}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) == 0 {
		t.Fatalf("expected at least one flushed batch")
	}
	var seen []int
	for _, b := range batches {
		for _, s := range b {
			seen = append(seen, s.CaseNumber)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 enqueued statuses to be flushed, got %v", seen)
	}
	for i, c := range seen {
		if c != i+1 {
			t.Fatalf("expected enqueue order to be preserved, got %v", seen)
		}
	}
}

func TestDispatcherFlushesOnCancel(t *testing.T) {
	var mu sync.Mutex
	flushed := false

	d := NewDispatcher(time.Hour, 4, func(batch []TestCaseStatus) {
		mu.Lock()
		defer mu.Unlock()
		flushed = len(batch) > 0
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	if err := d.Enqueue(context.Background(), TestCaseStatus{CaseNumber: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if !flushed {
		t.Fatalf("expected a final flush on context cancellation")
	}
}
