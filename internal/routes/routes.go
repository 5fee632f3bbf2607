package routes

import (
	"assetdesk/internal/container"
	"assetdesk/internal/middleware"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes mounts the REST API under /api. Login and registration
// stay public; everything else requires a valid token.
func RegisterAPIRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api")
	c.AuthHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(security.JWTMiddleware())

	c.AuthHandler.RegisterRoutes(protected)
	c.AssetsHandler.RegisterRoutes(protected)
	c.RequestsHandler.RegisterRoutes(protected)
	c.MaintenanceHandler.RegisterRoutes(protected)
	c.UserHandler.RegisterRoutes(protected)
	c.DashboardHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
}
