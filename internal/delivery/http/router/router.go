// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	StatusHandler  *handler.StatusHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	statusHandler  *handler.StatusHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		statusHandler:  params.StatusHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// The authorization policy runs globally; which routes skip it is decided by
// the configured excluded paths, not by route grouping.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.authMiddleware.Authorize)

	// Health check endpoint
	e.GET("/health/", handler.HealthCheck)

	api := e.Group("/api/v1")
	{
		api.GET("/status/", r.statusHandler.Status)
		api.POST("/users/", r.authHandler.Register)
		api.POST("/sessions/", r.authHandler.Login)
		api.DELETE("/sessions/", r.authHandler.Logout)
		api.GET("/profile/", r.authHandler.Profile)
		api.POST("/reset_token/", r.authHandler.ResetPasswordToken)
		api.PUT("/reset_password/", r.authHandler.UpdatePassword)
	}
}
