// Package audit records auditable domain events into a persistent trail the
// admin panel can browse.
package audit

import (
	"village_rides_backend/internal/audit/repository"
	"village_rides_backend/internal/audit/service"
	"village_rides_backend/platform/events"
	"village_rides_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit bounded context. It exposes no public routes; the
// admin module serves the trail, and the event bus feeds it.
type Module struct {
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	svc.Subscribe(bus)

	return &Module{service: svc}
}

// Service returns the service layer for the admin module.
func (m *Module) Service() *service.Service {
	return m.service
}
