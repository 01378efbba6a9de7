package dependency

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/pnl/config"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/infra/db"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(model.AllModels()...))
	return gormDB
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Sources = config.SourcesConfig{}
	return cfg
}

func TestSourceFetchers(t *testing.T) {
	both := config.SourcesConfig{
		SchedulingSystem:  config.SourceConfig{BaseURL: "http://scheduling.local"},
		BankingAggregator: config.SourceConfig{BaseURL: "http://bank.local"},
	}

	tests := []struct {
		name string
		cfg  config.SourcesConfig
		want []entity.Source
	}{
		{
			name: "none configured",
			cfg:  config.SourcesConfig{},
			want: nil,
		},
		{
			name: "only configured ones",
			cfg:  config.SourcesConfig{BankingAggregator: config.SourceConfig{BaseURL: "http://bank.local"}},
			want: []entity.Source{entity.SourceBankingAggregator},
		},
		{
			name: "all configured",
			cfg:  both,
			want: []entity.Source{entity.SourceSchedulingSystem, entity.SourceBankingAggregator},
		},
		{
			name: "enabled list filters",
			cfg: config.SourcesConfig{
				SchedulingSystem:  both.SchedulingSystem,
				BankingAggregator: both.BankingAggregator,
				Enabled:           []string{"scheduling-system"},
			},
			want: []entity.Source{entity.SourceSchedulingSystem},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetchers := sourceFetchers(tt.cfg)

			var got []entity.Source
			for _, f := range fetchers {
				got = append(got, f.Source())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewInjector_WithoutCache(t *testing.T) {
	injector := NewInjector(testConfig(), newTestDB(t), nil)
	server := httptest.NewServer(injector.Router.Setup("test"))
	defer server.Close()

	t.Run("health reports the missing cache without failing", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("api routes require a token", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/taxonomy")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestNewInjector_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	cfg.Pipeline.RollupCacheTTL = time.Minute
	cfg.Pipeline.DefaultDataType = "not-a-type"

	injector := NewInjector(cfg, newTestDB(t), db.NewRedisFromClient(client))
	require.NotNil(t, injector.Metrics)
	require.NotNil(t, injector.SyncRateLimiter)

	server := httptest.NewServer(injector.Router.Setup("test"))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
