package handler

import (
	"net/http"

	admintransport "village_rides_backend/internal/admin/transport"
	auditservice "village_rides_backend/internal/audit/service"
	requestsservice "village_rides_backend/internal/requests/service"
	ridesservice "village_rides_backend/internal/rides/service"
	"village_rides_backend/platform/httpkit"
	"village_rides_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	rides    *ridesservice.Service
	requests *requestsservice.Service
	audit    *auditservice.Service
	val      *validator.Validator
}

func New(rides *ridesservice.Service, requests *requestsservice.Service, audit *auditservice.Service, val *validator.Validator) *Handler {
	return &Handler{rides: rides, requests: requests, audit: audit, val: val}
}

func actor(c *gin.Context) string {
	return c.GetString(httpkit.ContextAdminUsernameKey)
}

// Dashboard returns the listing counters.
// GET /api/v1/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	rideStats, err := h.rides.Stats(ctx)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to load ride stats", nil)
		return
	}
	requestStats, err := h.requests.Stats(ctx)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to load request stats", nil)
		return
	}

	httpkit.OK(c, admintransport.DashboardResponse{
		TotalRides:     rideStats.Total,
		RidesToday:     rideStats.Today,
		UpcomingRides:  rideStats.Upcoming,
		ActiveRequests: requestStats.Open,
		RequestsToday:  requestStats.Today,
	})
}

// ListRides returns every ride offer, moderated or not.
// GET /api/v1/admin/rides
func (h *Handler) ListRides(c *gin.Context) {
	rides, err := h.rides.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rides)
}

// ListRequests returns every ride request.
// GET /api/v1/admin/requests
func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.requests.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, requests)
}

// ListLogs returns the newest audit entries.
// GET /api/v1/admin/logs
func (h *Handler) ListLogs(c *gin.Context) {
	logs, err := h.audit.ListRecent(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, logs)
}

// SetRideActive deactivates or reactivates a ride offer.
// PUT /api/v1/admin/rides/:id/active
func (h *Handler) SetRideActive(c *gin.Context) {
	id, req, ok := h.bindActive(c)
	if !ok {
		return
	}

	ride, err := h.rides.SetActive(c.Request.Context(), id, *req.Active, actor(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, ride)
}

// SetRideFlagged flags or unflags a ride offer.
// PUT /api/v1/admin/rides/:id/flag
func (h *Handler) SetRideFlagged(c *gin.Context) {
	id, req, ok := h.bindFlagged(c)
	if !ok {
		return
	}

	ride, err := h.rides.SetFlagged(c.Request.Context(), id, *req.Flagged, actor(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, ride)
}

// SetRequestActive deactivates or reactivates a ride request.
// PUT /api/v1/admin/requests/:id/active
func (h *Handler) SetRequestActive(c *gin.Context) {
	id, req, ok := h.bindActive(c)
	if !ok {
		return
	}

	request, err := h.requests.SetActive(c.Request.Context(), id, *req.Active, actor(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, request)
}

// SetRequestFlagged flags or unflags a ride request.
// PUT /api/v1/admin/requests/:id/flag
func (h *Handler) SetRequestFlagged(c *gin.Context) {
	id, req, ok := h.bindFlagged(c)
	if !ok {
		return
	}

	request, err := h.requests.SetFlagged(c.Request.Context(), id, *req.Flagged, actor(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, request)
}

// SetRequestStatus marks a ride request open or fulfilled.
// PUT /api/v1/admin/requests/:id/status
func (h *Handler) SetRequestStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing ID", nil)
		return
	}

	var req admintransport.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	request, err := h.requests.SetStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, request)
}

func (h *Handler) bindActive(c *gin.Context) (uuid.UUID, admintransport.SetActiveRequest, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing ID", nil)
		return uuid.Nil, admintransport.SetActiveRequest{}, false
	}

	var req admintransport.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		httpkit.Error(c, http.StatusBadRequest, "body field 'active' is required", nil)
		return uuid.Nil, admintransport.SetActiveRequest{}, false
	}
	return id, req, true
}

func (h *Handler) bindFlagged(c *gin.Context) (uuid.UUID, admintransport.SetFlaggedRequest, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing ID", nil)
		return uuid.Nil, admintransport.SetFlaggedRequest{}, false
	}

	var req admintransport.SetFlaggedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Flagged == nil {
		httpkit.Error(c, http.StatusBadRequest, "body field 'flagged' is required", nil)
		return uuid.Nil, admintransport.SetFlaggedRequest{}, false
	}
	return id, req, true
}
