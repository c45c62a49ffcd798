// Package admin serves the moderation panel: dashboard counters, full listing
// views, the audit trail, and moderation actions. All routes require an admin
// access token.
package admin

import (
	"village_rides_backend/internal/admin/handler"
	auditservice "village_rides_backend/internal/audit/service"
	apphttp "village_rides_backend/internal/http"
	requestsservice "village_rides_backend/internal/requests/service"
	ridesservice "village_rides_backend/internal/rides/service"
	"village_rides_backend/platform/validator"
)

// Module is the admin panel implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(rides *ridesservice.Service, requests *requestsservice.Service, audit *auditservice.Service, val *validator.Validator) *Module {
	return &Module{handler: handler.New(rides, requests, audit, val)}
}

func (m *Module) Name() string {
	return "admin"
}

// RegisterRoutes mounts the moderation routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin

	admin.GET("/dashboard", m.handler.Dashboard)
	admin.GET("/rides", m.handler.ListRides)
	admin.GET("/requests", m.handler.ListRequests)
	admin.GET("/logs", m.handler.ListLogs)

	admin.PUT("/rides/:id/active", m.handler.SetRideActive)
	admin.PUT("/rides/:id/flag", m.handler.SetRideFlagged)
	admin.PUT("/requests/:id/active", m.handler.SetRequestActive)
	admin.PUT("/requests/:id/flag", m.handler.SetRequestFlagged)
	admin.PUT("/requests/:id/status", m.handler.SetRequestStatus)
}

var _ apphttp.Module = (*Module)(nil)
