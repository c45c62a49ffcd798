// Package auth is the admin authentication bounded context: login with
// bcrypt-verified credentials issuing short-lived JWT access tokens.
package auth

import (
	"context"

	"village_rides_backend/internal/auth/handler"
	"village_rides_backend/internal/auth/repository"
	"village_rides_backend/internal/auth/service"
	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/events"
	"village_rides_backend/platform/logger"
	"village_rides_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "auth"
}

// SeedAdmin bootstraps the admin account from the environment.
func (m *Module) SeedAdmin(ctx context.Context) error {
	return m.service.SeedAdmin(ctx)
}

// RegisterRoutes mounts the login route and the authenticated identity route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)

	ctx.Admin.GET("/me", m.handler.Me)
	ctx.Admin.POST("/logout", m.handler.Logout)
}

var _ apphttp.Module = (*Module)(nil)
