package handler

import (
	"net/http"

	"gatekeeper/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// StatusHandler serves the public API status endpoint.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler instance.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Status returns the API status payload.
func (h *StatusHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status": "OK",
	}, "Service is running")
}
