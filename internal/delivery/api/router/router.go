// Package router registers the API routes.
package router

import (
	"bulletin/internal/delivery/api/middleware"
	"bulletin/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	EventHandler   *handler.EventHandler
	JobHandler     *handler.JobHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	eventHandler   *handler.EventHandler
	jobHandler     *handler.JobHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		eventHandler:   params.EventHandler,
		jobHandler:     params.JobHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes mounts the public reads, the login endpoints and the authenticated writes.
// Trailing slashes are stripped before routing.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.authMiddleware.Authenticate

	e.GET("/health", handler.HealthCheck)

	e.POST("/login", r.authHandler.Login)
	e.POST("/token", r.authHandler.Token)

	usersGroup := e.Group("/users")
	{
		usersGroup.POST("", r.userHandler.Register)
		usersGroup.GET("", r.userHandler.List)
		usersGroup.GET("/me", r.userHandler.Me, authenticate)
		usersGroup.GET("/:id", r.userHandler.Get)
		usersGroup.PUT("/:id", r.userHandler.Update, authenticate)
		usersGroup.DELETE("/:id", r.userHandler.Delete, authenticate)
	}

	eventsGroup := e.Group("/events")
	{
		eventsGroup.POST("", r.eventHandler.Create, authenticate)
		eventsGroup.GET("", r.eventHandler.List)
		eventsGroup.GET("/:id", r.eventHandler.Get)
		eventsGroup.PUT("/:id", r.eventHandler.Update, authenticate)
		eventsGroup.DELETE("/:id", r.eventHandler.Delete, authenticate)
	}

	jobsGroup := e.Group("/jobs")
	{
		jobsGroup.POST("", r.jobHandler.Create, authenticate)
		jobsGroup.GET("", r.jobHandler.List)
		jobsGroup.GET("/:id", r.jobHandler.Get)
		jobsGroup.PUT("/:id", r.jobHandler.Update, authenticate)
		jobsGroup.DELETE("/:id", r.jobHandler.Delete, authenticate)
	}
}
