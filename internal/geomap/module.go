// Package geomap provides the map bounded context: the shared listing map
// scene, reverse geocoding, and location-capture sessions backing the offer
// and request forms.
package geomap

import (
	"village_rides_backend/internal/geomap/engine"
	"village_rides_backend/internal/geomap/geocode"
	"village_rides_backend/internal/geomap/handler"
	"village_rides_backend/internal/geomap/service"
	apphttp "village_rides_backend/internal/http"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"
	"village_rides_backend/platform/validator"
)

// Config combines the settings the geomap module needs.
type Config interface {
	config.GeocoderConfig
	config.MapConfig
}

// Module is the geomap bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the geocoder, lookup client, and scene/session service.
func NewModule(cfg Config, rides service.RideSource, requests service.RequestSource, val *validator.Validator, log *logger.Logger) *Module {
	geocoder := geocode.New(cfg, log)
	lookup := engine.NewGeoLookupClient(geocoder, log)
	svc := service.New(cfg, rides, requests, lookup, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "geomap"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Close releases the module's background resources.
func (m *Module) Close() {
	m.service.Close()
}

// RegisterRoutes mounts the geomap routes on the public API group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geomap")
	group.GET("/scene", m.handler.Scene)
	group.GET("/reverse-geocode", ctx.GeocodeRateLimiter.RateLimit(), m.handler.ReverseGeocode)

	sessions := group.Group("/sessions")
	sessions.POST("", m.handler.CreateSession)
	sessions.GET("/:id", m.handler.SessionState)
	sessions.PUT("/:id/mode", m.handler.SelectMode)
	sessions.POST("/:id/clicks", m.handler.Click)
}

var _ apphttp.Module = (*Module)(nil)
