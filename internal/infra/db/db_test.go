package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/pnl/config"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

func TestNewPostgresConnection_SQLiteURL(t *testing.T) {
	database, err := NewPostgresConnection(&config.DatabaseConfig{
		URL:             sqliteScheme + filepath.Join(t.TempDir(), "pnl.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.AutoMigrate(model.AllModels()...))
	assert.True(t, database.HealthCheck())
	assert.True(t, database.DB().Migrator().HasTable(&model.CanonicalRecordModel{}))
}

func TestNewRedisConnection(t *testing.T) {
	t.Run("connects and reports healthy", func(t *testing.T) {
		mr := miniredis.RunT(t)

		conn, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
		require.NoError(t, err)
		defer conn.Close()

		assert.True(t, conn.HealthCheck())

		mr.Close()
		assert.False(t, conn.HealthCheck())
	})

	t.Run("rejects malformed urls", func(t *testing.T) {
		_, err := NewRedisConnection(&config.RedisConfig{URL: "http://nope"})
		assert.Error(t, err)
	})

	t.Run("fails when nothing listens", func(t *testing.T) {
		_, err := NewRedisConnection(&config.RedisConfig{URL: "redis://127.0.0.1:1/0"})
		assert.Error(t, err)
	})
}
