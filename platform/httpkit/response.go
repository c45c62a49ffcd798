// Package httpkit provides shared HTTP middleware and response helpers.
package httpkit

import (
	"net/http"

	"village_rides_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error envelope. Details carries per-field
// validation messages when present.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK writes a 200 response.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// HandleError writes the HTTP mapping of a domain error and reports whether
// err was non-nil. Untyped errors fall back to 400.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	return true
}
