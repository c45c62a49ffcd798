package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"village_rides_backend/internal/adapters"
	"village_rides_backend/internal/admin"
	"village_rides_backend/internal/audit"
	"village_rides_backend/internal/auth"
	"village_rides_backend/internal/events"
	"village_rides_backend/internal/geomap"
	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/internal/http/router"
	"village_rides_backend/internal/requests"
	"village_rides_backend/internal/rides"
	"village_rides_backend/internal/scheduler"
	"village_rides_backend/migrations"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/db"
	"village_rides_backend/platform/logger"
	"village_rides_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting api", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, cfg, migrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic("failed to run migrations: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	if err := authModule.SeedAdmin(ctx); err != nil {
		log.Error("failed to seed admin user", "error", err)
		panic("failed to seed admin user: " + err.Error())
	}

	ridesModule := rides.NewModule(pool, eventBus, cfg.GetAppBaseURL(), log)
	requestsModule := requests.NewModule(pool, eventBus, log)
	auditModule := audit.NewModule(pool, eventBus, log)

	geomapModule := geomap.NewModule(cfg,
		adapters.NewRideMapSource(ridesModule.Service()),
		adapters.NewRequestMapSource(requestsModule.Service()),
		val, log)
	defer geomapModule.Close()

	adminModule := admin.NewModule(ridesModule.Service(), requestsModule.Service(), auditModule.Service(), val)

	// The expiry sweep also runs from the API process so a deployment without
	// the worker still cleans up eventually on startup.
	if client, err := scheduler.NewClient(cfg); err == nil {
		if err := client.EnqueueListingExpiry(ctx, scheduler.ListingExpiryPayload{Reason: "api startup"}, time.Now()); err != nil {
			log.Warn("failed to enqueue startup expiry sweep", "error", err)
		}
		defer func() { _ = client.Close() }()
	} else {
		log.Warn("scheduler client unavailable", "error", err)
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			ridesModule,
			requestsModule,
			geomapModule,
			adminModule,
		},
	}

	engine := router.New(app)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
