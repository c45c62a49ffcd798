package handler

import (
	"net/http"

	"village_rides_backend/internal/auth/service"
	"village_rides_backend/internal/auth/transport"
	"village_rides_backend/platform/httpkit"
	"village_rides_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login authenticates an admin and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Logout ends the authenticated admin's session.
// POST /api/v1/admin/logout
func (h *Handler) Logout(c *gin.Context) {
	var adminID uuid.UUID
	if v, ok := c.Get(httpkit.ContextAdminIDKey); ok {
		adminID, _ = v.(uuid.UUID)
	}
	username := c.GetString(httpkit.ContextAdminUsernameKey)

	httpkit.OK(c, h.svc.Logout(c.Request.Context(), adminID, username))
}

// Me returns the authenticated admin's identity.
// GET /api/v1/admin/me
func (h *Handler) Me(c *gin.Context) {
	adminID, _ := c.Get(httpkit.ContextAdminIDKey)
	httpkit.OK(c, gin.H{
		"id":       adminID,
		"username": c.GetString(httpkit.ContextAdminUsernameKey),
	})
}
