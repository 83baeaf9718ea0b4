package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "fieldops/internal/interfaces/http/handlers/ticket"
	"fieldops/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	FeedHandler          *tickethandlers.FeedHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware

	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			perm.RequirePermission("tickets", "create"),
			config.TicketHandler.Create)
		tickets.GET("",
			perm.RequirePermission("tickets", "read"),
			config.TicketHandler.List)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.GET("/stats",
			perm.RequirePermission("stats", "read"),
			config.TicketHandler.Stats)
		tickets.GET("/feed",
			perm.RequirePermission("tickets", "read"),
			config.FeedHandler.Stream)
		tickets.GET("/feed/snapshot",
			perm.RequirePermission("tickets", "read"),
			config.FeedHandler.Snapshot)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.GET("/:id/activities",
			perm.RequirePermission("tickets", "read"),
			config.TicketHandler.Activities)
		tickets.POST("/:id/assign",
			perm.RequirePermission("tickets", "assign"),
			config.TicketHandler.Assign)
		tickets.POST("/:id/comments",
			perm.RequirePermission("tickets", "comment"),
			config.TicketHandler.AddComment)
		tickets.POST("/:id/media",
			perm.RequirePermission("tickets", "media"),
			config.TicketHandler.AddMedia)
		// Using PATCH for state changes as per RESTful best practices
		tickets.PATCH("/:id/status",
			perm.RequirePermission("tickets", "status"),
			config.TicketHandler.ChangeStatus)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			perm.RequirePermission("tickets", "read"),
			config.TicketHandler.Get)
		tickets.PATCH("/:id",
			perm.RequirePermission("tickets", "update"),
			config.TicketHandler.Update)
		tickets.DELETE("/:id",
			perm.RequirePermission("tickets", "delete"),
			config.TicketHandler.Delete)
	}
}
