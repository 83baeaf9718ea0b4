package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/interfaces/http/middleware"
	"fieldops/internal/shared/logger"
)

type RouterConfig struct {
	Mode           string
	AllowedOrigins []string
	Logger         logger.Interface

	Ticket       *TicketRouteConfig
	Notification *NotificationRouteConfig
	User         *UserRouteConfig
}

// NewRouter builds the gin engine with global middleware and all route groups.
func NewRouter(config *RouterConfig) *gin.Engine {
	gin.SetMode(config.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(config.Logger))
	engine.Use(middleware.CORS(config.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupTicketRoutes(engine, config.Ticket)
	SetupNotificationRoutes(engine, config.Notification)
	SetupUserRoutes(engine, config.User)

	return engine
}
