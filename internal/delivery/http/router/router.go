// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"roster/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	HealthHandler  *handler.HealthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	healthHandler  *handler.HealthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		healthHandler:  params.HealthHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health probes
	e.GET("/health", r.healthHandler.Live)
	e.GET("/health/db", r.healthHandler.Database)

	// Account routes
	userGroup := e.Group("/user")
	{
		userGroup.POST("/register", r.accountHandler.Register)
		userGroup.POST("/login", r.accountHandler.Login)
	}
}
