package scheduler

import (
	"context"
	"time"

	"village_rides_backend/platform/logger"
)

const defaultExpiryInterval = time.Hour

// ExpiryEnqueuer periodically queues a listing expiry sweep so stale listings
// disappear even when nobody is browsing.
type ExpiryEnqueuer struct {
	client   *Client
	log      *logger.Logger
	interval time.Duration
}

func NewExpiryEnqueuer(client *Client, log *logger.Logger, interval time.Duration) *ExpiryEnqueuer {
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	return &ExpiryEnqueuer{client: client, log: log, interval: interval}
}

func (e *ExpiryEnqueuer) Run(ctx context.Context) {
	if e == nil || e.client == nil {
		return
	}

	e.enqueue(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.enqueue(ctx)
		}
	}
}

func (e *ExpiryEnqueuer) enqueue(ctx context.Context) {
	payload := ListingExpiryPayload{Reason: "periodic"}
	if err := e.client.EnqueueListingExpiry(ctx, payload, time.Now()); err != nil {
		e.log.Warn("failed to enqueue listing expiry sweep", "error", err)
	}
}
