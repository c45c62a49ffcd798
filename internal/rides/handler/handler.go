package handler

import (
	"net/http"

	"village_rides_backend/internal/rides/service"
	"village_rides_backend/internal/rides/transport"
	"village_rides_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create publishes a ride offer.
// POST /api/v1/rides
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRideRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, resp)
}

// Search lists active upcoming rides matching the query filters.
// GET /api/v1/rides?from=&to=&date=&type=
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRidesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query", nil)
		return
	}

	rides, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rides)
}

// Get returns a single ride offer.
// GET /api/v1/rides/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid ride ID", nil)
		return
	}

	ride, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, ride)
}

// ShareQR returns a printable QR code PNG linking to the ride.
// GET /api/v1/rides/:id/qr
func (h *Handler) ShareQR(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid ride ID", nil)
		return
	}

	png, err := h.svc.ShareQR(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
