package routes

import (
	"github.com/gin-gonic/gin"

	notificationhandlers "fieldops/internal/interfaces/http/handlers/notification"
	"fieldops/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *notificationhandlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	perm := config.PermissionMiddleware

	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	notifications.Use(perm.RequirePermission("notifications", "read"))
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		notifications.GET("", config.NotificationHandler.List)

		// Using PATCH for batch state changes as per RESTful best practices
		notifications.PATCH("/read-all", config.NotificationHandler.MarkAllRead)

		// Generic parameterized route (must come LAST)
		notifications.PATCH("/:id/read", config.NotificationHandler.MarkRead)
	}
}
