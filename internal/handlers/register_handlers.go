package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/propfolio/realty_ledger/cmd/docs"
	portssvc "github.com/propfolio/realty_ledger/internal/core/ports/services"
	"github.com/propfolio/realty_ledger/internal/middleware"
	"github.com/propfolio/realty_ledger/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerOrganizationRoutes(v1, services.Organization)

	// Everything below is scoped to one organization; OrgGuard rejects any
	// request whose path organization differs from the token organization.
	org := v1.Group("/organizations/:orgID", middleware.OrgGuard())
	registerAccountGroupRoutes(org, services.AccountGroup)
	registerChartAccountRoutes(org, services.ChartAccount, services.Ledger)
	registerOrgAccountRoutes(org, services.OrgAccount)
	registerTransactionRoutes(org, services.Ledger)
	registerTransferRoutes(org, services.Transfer)
	registerReportingRoutes(org, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
