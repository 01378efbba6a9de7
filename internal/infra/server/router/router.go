// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/finance-tracker/pnl/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	importController     *controller.ImportController
	reportController     *controller.ReportController
	taxonomyController   *controller.TaxonomyController
	settingsController   *controller.SettingsController
	sourceSyncController *controller.SourceSyncController
	syncRateLimiter      *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
	metricsHandler       http.Handler
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	importController *controller.ImportController,
	reportController *controller.ReportController,
	taxonomyController *controller.TaxonomyController,
	settingsController *controller.SettingsController,
	sourceSyncController *controller.SourceSyncController,
	syncRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:     healthController,
		importController:     importController,
		reportController:     reportController,
		taxonomyController:   taxonomyController,
		settingsController:   settingsController,
		sourceSyncController: sourceSyncController,
		syncRateLimiter:      syncRateLimiter,
		authMiddleware:       authMiddleware,
		metricsHandler:       metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Raw row values keep their exact decimal text.
	binding.EnableDecoderUseNumber = true

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and scrape endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Import routes (require authentication)
		if r.importController != nil && r.authMiddleware != nil {
			imports := v1.Group("/imports")
			imports.Use(r.authMiddleware.Authenticate())
			{
				imports.POST("", r.importController.Import)
				imports.POST("/preview", r.importController.Preview)
				imports.POST("/file", r.importController.ImportFile)
			}
		}

		// Source sync routes (require authentication, rate limited per tenant)
		if r.sourceSyncController != nil && r.authMiddleware != nil {
			sources := v1.Group("/sources")
			sources.Use(r.authMiddleware.Authenticate())
			if r.syncRateLimiter != nil {
				sources.POST("/sync", r.syncRateLimiter.Middleware(), r.sourceSyncController.Sync)
			} else {
				sources.POST("/sync", r.sourceSyncController.Sync)
			}
		}

		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/profit-and-loss", r.reportController.ProfitAndLoss)
			}
		}

		// Taxonomy routes (require authentication)
		if r.taxonomyController != nil && r.authMiddleware != nil {
			taxonomy := v1.Group("/taxonomy")
			taxonomy.Use(r.authMiddleware.Authenticate())
			{
				taxonomy.GET("", r.taxonomyController.List)
				taxonomy.POST("", r.taxonomyController.Create)
				taxonomy.POST("/seed", r.taxonomyController.Seed)
				taxonomy.PATCH("/:id", r.taxonomyController.Update)
				taxonomy.DELETE("/:id", r.taxonomyController.Delete)
			}
		}

		// Settings routes (require authentication)
		if r.settingsController != nil && r.authMiddleware != nil {
			settings := v1.Group("/settings")
			settings.Use(r.authMiddleware.Authenticate())
			{
				settings.GET("/mapping", r.settingsController.GetMapping)
				settings.PUT("/mapping", r.settingsController.UpdateMapping)
			}
		}
	}
}
