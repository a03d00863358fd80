package handlers

import (
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/atticuslegal/practice_mgmt_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Public authentication routes for staff and portal clients.
	registerAuthRoutes(r, services)
	registerPortalLoginRoute(r, services)

	setupAPIV1Routes(r, cfg, services)
	setupPortalRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the staff-facing /api/v1 group behind the auth
// middleware and delegates to per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerClientRoutes(v1, services.Client)
	registerMatterRoutes(v1, services.Matter)
	registerPartyRoutes(v1, services.Party)
	registerConflictRoutes(v1, services.Conflict)
	registerTrustRoutes(v1, services.Trust)
}

// setupPortalRoutes configures the client-facing /portal group behind the
// portal auth middleware. Portal tokens never grant access to /api/v1.
func setupPortalRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	portal := r.Group("/portal", middleware.PortalAuthMiddleware(cfg.PortalJWTSecret))
	registerPortalRoutes(portal, services)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
