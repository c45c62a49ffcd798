// Package handler exposes the geomap HTTP endpoints.
package handler

import (
	"net/http"

	"village_rides_backend/internal/geomap/engine"
	"village_rides_backend/internal/geomap/service"
	"village_rides_backend/internal/geomap/transport"
	"village_rides_backend/platform/httpkit"
	"village_rides_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session ID"
)

// Handler handles HTTP requests for the map scene and capture sessions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a geomap handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Scene returns the rendered map scene.
// GET /api/v1/geomap/scene
func (h *Handler) Scene(c *gin.Context) {
	scene, err := h.svc.Scene(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, scene)
}

// ReverseGeocode resolves a coordinate to a display label. The response is
// always 200 with a label; lookup failures degrade to the coordinate text.
// GET /api/v1/geomap/reverse-geocode?lat=..&lng=..
func (h *Handler) ReverseGeocode(c *gin.Context) {
	var req transport.ReverseGeocodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'lat' and 'lng' are required", nil)
		return
	}

	label := h.svc.ResolveLabel(c.Request.Context(), *req.Lat, *req.Lng)
	httpkit.OK(c, transport.ReverseGeocodeResponse{Label: label})
}

// CreateSession starts a capture session.
// POST /api/v1/geomap/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	httpkit.Created(c, h.svc.CreateSession())
}

// SelectMode switches a session's capture mode.
// PUT /api/v1/geomap/sessions/:id/mode
func (h *Handler) SelectMode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	var req transport.SelectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	state, err := h.svc.SelectMode(id, engine.CaptureMode(req.Mode))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// Click records a map click in a session.
// POST /api/v1/geomap/sessions/:id/clicks
func (h *Handler) Click(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	var req transport.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	state, err := h.svc.Click(c.Request.Context(), id, engine.Point{Lat: *req.Lat, Lng: *req.Lng})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// SessionState returns a session's current state.
// GET /api/v1/geomap/sessions/:id
func (h *Handler) SessionState(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	state, err := h.svc.SessionState(id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}
