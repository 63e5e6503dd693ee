package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the product SKU, guaranteeing per-product notification ordering.
// Delivery is at-most-once: a full worker channel drops the notification, and
// processing failures are logged and counted, never returned to the caller.
type Dispatcher struct {
	workers   []chan ports.Notification
	processor ports.NotificationProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.NotificationProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.Notification, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its SKU without
// blocking the caller. When the worker channel is full the notification is
// dropped and logged.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	idx := d.shardIndex(n.SKU)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("kind", string(n.Kind)).
			Str("sku", n.SKU).
			Int("worker_id", idx).
			Msg("notification dropped, worker queue full")
		metrics.NotificationsErrorsTotal.WithLabelValues(string(n.Kind)).Inc()
	}
}

// shardIndex maps a SKU deterministically to a worker index.
func (d *Dispatcher) shardIndex(sku string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sku))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.processor.Process(ctx, n); err != nil {
				metrics.NotificationsErrorsTotal.WithLabelValues(string(n.Kind)).Inc()
				d.log.Error().Err(err).
					Str("kind", string(n.Kind)).
					Str("sku", n.SKU).
					Int("worker_id", id).
					Msg("notification processing failed")
				continue
			}
			metrics.NotificationsProcessedTotal.WithLabelValues(string(n.Kind)).Inc()
		}
	}
}
