package notification

import (
	"context"
	"log/slog"
	"time"
)

type pendingDeliverer interface {
	DeliverPending(ctx context.Context, limit int) (int, error)
}

// Relay periodically delivers outbox events the request path left pending,
// which makes delivery at-least-once.
type Relay struct {
	deliverer pendingDeliverer
	interval  time.Duration
	batchSize int
}

func NewRelay(deliverer pendingDeliverer, interval time.Duration, batchSize int) *Relay {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{deliverer: deliverer, interval: interval, batchSize: batchSize}
}

// Run blocks until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("notification relay started", slog.Duration("interval", r.interval), slog.Int("batch_size", r.batchSize))

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification relay stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce drains full batches until a short batch signals the backlog is empty.
func (r *Relay) RunOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := r.deliverer.DeliverPending(ctx, r.batchSize)
		if err != nil {
			slog.Error("notification relay batch failed", slog.Any("error", err))
			return total
		}
		total += n
		if n < r.batchSize {
			break
		}
	}
	if total > 0 {
		slog.Info("notification relay delivered events", slog.Int("count", total))
	}
	return total
}
