package notify

import (
	"context"
	"log/slog"
	"sync"
)

type envelope struct {
	topic   string
	payload any
}

// Dispatcher decouples publishers from the hub with a buffered queue and a
// small worker pool. Publish never blocks: when the queue is full the event is
// dropped and logged, never propagated back to the caller.
type Dispatcher struct {
	sink    Publisher
	workers int
	logger  *slog.Logger

	queue  chan envelope
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs dispatcher feeding the given sink.
func NewDispatcher(sink Publisher, queueSize, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		sink:    sink,
		workers: workers,
		logger:  logger,
		queue:   make(chan envelope, queueSize),
	}
}

// Start launches delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains workers. Queued events that were not delivered yet are lost,
// which is acceptable for a best-effort channel.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Publish enqueues the event for asynchronous delivery.
func (d *Dispatcher) Publish(topic string, payload any) {
	select {
	case d.queue <- envelope{topic: topic, payload: payload}:
	default:
		d.logger.Warn("notification queue full, dropping event", slog.String("topic", topic))
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.sink.Publish(ev.topic, ev.payload)
		}
	}
}
