// Package requests is the ride-request bounded context: passengers post
// requests for transport that drivers can pick up.
package requests

import (
	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/internal/requests/handler"
	"village_rides_backend/internal/requests/repository"
	"village_rides_backend/internal/requests/service"
	"village_rides_backend/platform/events"
	"village_rides_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the requests bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "requests"
}

// Service returns the service layer for other modules (map scene, admin,
// expiry worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public ride-request routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/requests")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.Search)
	group.GET("/:id", m.handler.Get)
}

var _ apphttp.Module = (*Module)(nil)
