package handler

import (
	"net/http"

	"village_rides_backend/internal/requests/service"
	"village_rides_backend/internal/requests/transport"
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

// Create publishes a ride request.
// POST /api/v1/requests
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRequestRequest
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

// Search lists active upcoming requests matching the query filters.
// GET /api/v1/requests?from=&to=&date=&status=
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query", nil)
		return
	}

	requests, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, requests)
}

// Get returns a single ride request.
// GET /api/v1/requests/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}

	request, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, request)
}
