// Package rides is the ride-offer bounded context: drivers publish rides,
// villagers search them, the map scene and admin panel read them.
package rides

import (
	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/internal/rides/handler"
	"village_rides_backend/internal/rides/repository"
	"village_rides_backend/internal/rides/service"
	"village_rides_backend/platform/events"
	"village_rides_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the rides bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, appBaseURL string, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, appBaseURL, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "rides"
}

// Service returns the service layer for other modules (map scene, admin,
// expiry worker).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public ride routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/rides")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.Search)
	group.GET("/:id", m.handler.Get)
	group.GET("/:id/qr", m.handler.ShareQR)
}

var _ apphttp.Module = (*Module)(nil)
