package config_test

import (
	"testing"
	"time"

	"kanboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/board.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/board.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestMigrateURL(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "kanban",
		DBPassword: "p@ss",
		DBName:     "boards",
		DBSSLMode:  "disable",
	}

	assert.Equal(t, "pgx5://kanban:p%40ss@db:5432/boards?sslmode=disable", cfg.MigrateURL())
	assert.Equal(t, "host=db port=5432 user=kanban password=p@ss dbname=boards sslmode=disable", cfg.PostgresDSN())
}
