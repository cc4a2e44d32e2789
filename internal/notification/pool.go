package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrDropped is returned by PoolNotifier.Send when every worker is busy and
// the message was discarded.
var ErrDropped = errors.New("notification dropped")

// PoolNotifier hands messages to a wrapped Notifier on a bounded worker pool
// so callers never wait on delivery. When all workers are busy the message is
// dropped rather than queued.
type PoolNotifier struct {
	next   Notifier
	pool   *ants.Pool
	logger *slog.Logger
}

// NewPoolNotifier builds a PoolNotifier with the given number of workers.
func NewPoolNotifier(next Notifier, workers int, logger *slog.Logger) (*PoolNotifier, error) {
	if next == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create notification pool: %w", err)
	}
	return &PoolNotifier{next: next, pool: pool, logger: logger}, nil
}

// Send schedules delivery and returns immediately. Delivery errors are
// logged, not returned.
func (n *PoolNotifier) Send(ctx context.Context, message Message) error {
	deliveryCtx := context.WithoutCancel(ctx)
	err := n.pool.Submit(func() {
		if err := n.next.Send(deliveryCtx, message); err != nil && n.logger != nil {
			n.logger.Warn("notification delivery failed",
				"kind", message.Kind,
				"destination", message.Destination,
				"error", err,
			)
		}
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		if n.logger != nil {
			n.logger.Warn("notification dropped",
				"kind", message.Kind,
				"destination", message.Destination,
				"transaction_id", message.TransactionID,
			)
		}
		return ErrDropped
	}
	if err != nil {
		return fmt.Errorf("submit notification: %w", err)
	}
	return nil
}

// Running returns the number of workers currently delivering.
func (n *PoolNotifier) Running() int {
	return n.pool.Running()
}

// Release waits up to timeout for queued deliveries and stops the pool.
func (n *PoolNotifier) Release(timeout time.Duration) error {
	return n.pool.ReleaseTimeout(timeout)
}
