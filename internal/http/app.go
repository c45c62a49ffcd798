// Package http assembles the HTTP server from the domain modules.
package http

import (
	"context"

	"village_rides_backend/internal/events"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router itself needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs the readiness endpoint, normally with a DB ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App carries the wired application: main builds it, the router consumes it.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
