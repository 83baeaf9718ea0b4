package routes

import (
	"github.com/gin-gonic/gin"

	userhandlers "fieldops/internal/interfaces/http/handlers/user"
	"fieldops/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *userhandlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	users := engine.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", config.UserHandler.Me)
		users.GET("/assignable",
			config.PermissionMiddleware.RequirePermission("profiles", "read"),
			config.UserHandler.Assignable)
	}
}
