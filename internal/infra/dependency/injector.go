// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"slices"

	"gorm.io/gorm"

	"github.com/finance-tracker/pnl/config"
	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/application/usecase/importing"
	"github.com/finance-tracker/pnl/internal/application/usecase/report"
	"github.com/finance-tracker/pnl/internal/application/usecase/settings"
	"github.com/finance-tracker/pnl/internal/application/usecase/sourcesync"
	"github.com/finance-tracker/pnl/internal/application/usecase/taxonomy"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/infra/db"
	"github.com/finance-tracker/pnl/internal/infra/server/router"
	"github.com/finance-tracker/pnl/internal/integration/adapters"
	"github.com/finance-tracker/pnl/internal/integration/cache"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/pnl/internal/integration/ingest"
	"github.com/finance-tracker/pnl/internal/integration/metrics"
	"github.com/finance-tracker/pnl/internal/integration/persistence"
	"github.com/finance-tracker/pnl/internal/integration/source"
)

// Injector holds all application dependencies.
type Injector struct {
	Config          *config.Config
	DB              *gorm.DB
	Router          *router.Router
	Metrics         *metrics.PrometheusMetrics
	SyncRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisConn may be nil, in which case rollups are never cached.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisConn *db.Redis) *Injector {
	defaultDataType, ok := entity.ParseDataType(cfg.Pipeline.DefaultDataType)
	if !ok {
		slog.Warn("Unknown default data type, falling back to actual",
			"data_type", cfg.Pipeline.DefaultDataType,
		)
		defaultDataType = entity.DataTypeActual
	}

	// Create repositories
	recordRepo := persistence.NewCanonicalRecordRepository(gormDB, cfg.Pipeline.BatchSize)
	taxonomyRepo := persistence.NewTaxonomyRepository(gormDB)
	mappingRepo := persistence.NewMappingConfigRepository(gormDB)

	// Create adapters/services
	var rollupCache adapter.RollupCache
	var cacheHealthChecker controller.HealthChecker
	if redisConn != nil {
		rollupCache = cache.NewRollupCache(redisConn.Client(), cfg.Pipeline.RollupCacheTTL)
		cacheHealthChecker = redisConn.HealthCheck
	} else {
		rollupCache = cache.NewNopRollupCache()
	}
	promMetrics := metrics.NewPrometheusMetrics()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	rowParser := ingest.NewRowParser()
	seedSource := ingest.NewTaxonomySeedFile(cfg.Pipeline.TaxonomySeedFile)
	fetchers := sourceFetchers(cfg.Sources)

	// Create importing use cases
	importRecordsUseCase := importing.NewImportRecordsUseCase(recordRepo, taxonomyRepo, mappingRepo, rollupCache, promMetrics, defaultDataType)
	previewImportUseCase := importing.NewPreviewImportUseCase(taxonomyRepo, mappingRepo, defaultDataType)
	importFileUseCase := importing.NewImportFileUseCase(rowParser, importRecordsUseCase)

	// Create report use cases
	profitAndLossUseCase := report.NewGetProfitAndLossUseCase(recordRepo, rollupCache, promMetrics, cfg.Pipeline.RollupShards)

	// Create source sync use cases
	syncSourcesUseCase := sourcesync.NewSyncSourcesUseCase(fetchers, recordRepo, taxonomyRepo, mappingRepo, rollupCache, promMetrics, defaultDataType)

	// Create taxonomy use cases
	listCategoriesUseCase := taxonomy.NewListCategoriesUseCase(taxonomyRepo)
	createCategoryUseCase := taxonomy.NewCreateCategoryUseCase(taxonomyRepo)
	updateCategoryUseCase := taxonomy.NewUpdateCategoryUseCase(taxonomyRepo)
	deleteCategoryUseCase := taxonomy.NewDeleteCategoryUseCase(taxonomyRepo)
	seedDefaultsUseCase := taxonomy.NewSeedDefaultsUseCase(taxonomyRepo, seedSource)

	// Create settings use cases
	getMappingConfigUseCase := settings.NewGetMappingConfigUseCase(mappingRepo)
	updateMappingConfigUseCase := settings.NewUpdateMappingConfigUseCase(mappingRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)

	importController := controller.NewImportController(
		importRecordsUseCase,
		previewImportUseCase,
		importFileUseCase,
	)

	reportController := controller.NewReportController(profitAndLossUseCase)

	taxonomyController := controller.NewTaxonomyController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		seedDefaultsUseCase,
	)

	settingsController := controller.NewSettingsController(
		getMappingConfigUseCase,
		updateMappingConfigUseCase,
	)

	sourceSyncController := controller.NewSourceSyncController(syncSourcesUseCase)

	// Create middleware
	syncRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Server.SyncRateLimit, cfg.Server.SyncRateWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		importController,
		reportController,
		taxonomyController,
		settingsController,
		sourceSyncController,
		syncRateLimiter,
		authMiddleware,
		promMetrics.Handler(),
	)

	slog.Info("Pipeline initialized",
		"default_data_type", defaultDataType,
		"sources", len(fetchers),
		"rollup_cache", redisConn != nil,
	)

	return &Injector{
		Config:          cfg,
		DB:              gormDB,
		Router:          r,
		Metrics:         promMetrics,
		SyncRateLimiter: syncRateLimiter,
	}
}

// sourceFetchers builds one fetcher per configured integration.
func sourceFetchers(cfg config.SourcesConfig) []adapter.SourceFetcher {
	candidates := []struct {
		source entity.Source
		cfg    config.SourceConfig
	}{
		{entity.SourceSchedulingSystem, cfg.SchedulingSystem},
		{entity.SourceBankingAggregator, cfg.BankingAggregator},
	}

	var fetchers []adapter.SourceFetcher
	for _, c := range candidates {
		if !c.cfg.Enabled() {
			continue
		}
		if len(cfg.Enabled) > 0 && !slices.Contains(cfg.Enabled, string(c.source)) {
			continue
		}
		fetchers = append(fetchers, source.NewHTTPFetcher(source.Config{
			Source:  c.source,
			BaseURL: c.cfg.BaseURL,
			APIKey:  c.cfg.APIKey,
			Timeout: c.cfg.Timeout,
		}))
	}
	return fetchers
}
