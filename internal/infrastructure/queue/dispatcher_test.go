package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

// recordingProcessor collects processed notifications, optionally failing
// specific SKUs.
type recordingProcessor struct {
	mu        sync.Mutex
	processed []ports.Notification
	failSKU   string
	done      chan struct{} // receives one tick per Process call
}

func newRecordingProcessor(expected int) *recordingProcessor {
	return &recordingProcessor{done: make(chan struct{}, expected)}
}

func (p *recordingProcessor) Process(_ context.Context, n ports.Notification) error {
	p.mu.Lock()
	p.processed = append(p.processed, n)
	p.mu.Unlock()
	p.done <- struct{}{}
	if n.SKU == p.failSKU {
		return errors.New("processing failed")
	}
	return nil
}

func (p *recordingProcessor) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_ProcessesEnqueuedNotifications(t *testing.T) {
	processor := newRecordingProcessor(3)
	d := NewDispatcher(2, processor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 3; i++ {
		d.Enqueue(ports.Notification{
			Kind: ports.NotificationProductUpdate,
			SKU:  fmt.Sprintf("SKU-%03d", i),
		})
	}
	processor.wait(t, 3)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	if len(processor.processed) != 3 {
		t.Fatalf("expected 3 processed notifications, got %d", len(processor.processed))
	}
}

func TestDispatcher_PerSKUOrdering(t *testing.T) {
	const count = 20
	processor := newRecordingProcessor(count)
	d := NewDispatcher(4, processor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Same SKU lands on the same worker, so processing order must match
	// enqueue order.
	for i := 0; i < count; i++ {
		d.Enqueue(ports.Notification{
			Kind:     ports.NotificationLowStock,
			SKU:      "SKU-001",
			Quantity: i,
		})
	}
	processor.wait(t, count)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	for i, n := range processor.processed {
		if n.Quantity != i {
			t.Fatalf("out of order at position %d: got quantity %d", i, n.Quantity)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingProcessor(0), zerolog.Nop())

	first := d.shardIndex("SKU-001")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("SKU-001"); got != first {
			t.Fatalf("shard index must be stable: got %d, want %d", got, first)
		}
	}
}

func TestDispatcher_ProcessingFailureDoesNotStopWorker(t *testing.T) {
	processor := newRecordingProcessor(2)
	processor.failSKU = "SKU-BAD"
	d := NewDispatcher(1, processor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.Notification{Kind: ports.NotificationLowStock, SKU: "SKU-BAD"})
	d.Enqueue(ports.Notification{Kind: ports.NotificationLowStock, SKU: "SKU-OK"})
	processor.wait(t, 2)

	processor.mu.Lock()
	defer processor.mu.Unlock()
	if len(processor.processed) != 2 {
		t.Fatalf("worker must survive a failure and keep processing, got %d", len(processor.processed))
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Workers are never started, so the single channel fills up; the surplus
	// must be dropped, not block the caller.
	d := NewDispatcher(1, newRecordingProcessor(0), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.Notification{Kind: ports.NotificationLowStock, SKU: "SKU-001"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full worker channel")
	}
}
