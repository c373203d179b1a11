package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
	"github.com/cashbook-app/cashbook-sync/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// All v1 routes require a caller identity
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerSyncRoutes(v1, services.Sync)
	registerMemberRoutes(v1, services.Membership)
	registerNotificationRoutes(v1, services.Membership)
}
