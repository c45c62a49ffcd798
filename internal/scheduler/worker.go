// Package scheduler runs background jobs over asynq: the listing expiry
// sweep that deactivates rides and requests whose travel date has passed.
package scheduler

import (
	"context"
	"fmt"

	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ListingExpirer deactivates listings whose date has passed and reports how
// many were touched. The rides and requests services both implement it.
type ListingExpirer interface {
	ExpirePast(ctx context.Context) (int, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	rides    ListingExpirer
	requests ListingExpirer
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, rides, requests ListingExpirer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		rides:    rides,
		requests: requests,
		log:      log,
	}

	mux.HandleFunc(TaskListingExpiry, w.handleListingExpiry)

	return w, nil
}

func (w *Worker) handleListingExpiry(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseListingExpiryPayload(task)
	if err != nil {
		return err
	}

	ridesExpired, err := w.rides.ExpirePast(ctx)
	if err != nil {
		return err
	}
	requestsExpired, err := w.requests.ExpirePast(ctx)
	if err != nil {
		return err
	}

	if ridesExpired > 0 || requestsExpired > 0 {
		w.log.Info("listing expiry sweep finished",
			"reason", payload.Reason,
			"rides", ridesExpired,
			"requests", requestsExpired,
		)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
