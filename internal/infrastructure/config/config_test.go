package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOCKIE_APP_NAME":                os.Getenv("STOCKIE_APP_NAME"),
		"STOCKIE_APP_ENV":                 os.Getenv("STOCKIE_APP_ENV"),
		"STOCKIE_APP_PORT":                os.Getenv("STOCKIE_APP_PORT"),
		"STOCKIE_DATABASE_HOST":           os.Getenv("STOCKIE_DATABASE_HOST"),
		"STOCKIE_DATABASE_PORT":           os.Getenv("STOCKIE_DATABASE_PORT"),
		"STOCKIE_DATABASE_USER":           os.Getenv("STOCKIE_DATABASE_USER"),
		"STOCKIE_DATABASE_PASSWORD":       os.Getenv("STOCKIE_DATABASE_PASSWORD"),
		"STOCKIE_DATABASE_DBNAME":         os.Getenv("STOCKIE_DATABASE_DBNAME"),
		"STOCKIE_DATABASE_SSLMODE":        os.Getenv("STOCKIE_DATABASE_SSLMODE"),
		"STOCKIE_DATABASE_MAX_OPEN_CONNS": os.Getenv("STOCKIE_DATABASE_MAX_OPEN_CONNS"),
		"STOCKIE_DATABASE_MAX_IDLE_CONNS": os.Getenv("STOCKIE_DATABASE_MAX_IDLE_CONNS"),
		"STOCKIE_SYNC_PAGE_SIZE":          os.Getenv("STOCKIE_SYNC_PAGE_SIZE"),
		"STOCKIE_TRENDYOL_API_BASE_URL":   os.Getenv("STOCKIE_TRENDYOL_API_BASE_URL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "stockie-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "stockie", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("sync pacing defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 200, cfg.Sync.PageSize)
		assert.Equal(t, 3, cfg.Sync.MaxAttempts)
		assert.Equal(t, 10*time.Second, cfg.Sync.RetryBackoff)
		assert.Equal(t, 5, cfg.Sync.CooldownEvery)
		assert.Equal(t, 5*time.Second, cfg.Sync.Cooldown)
		assert.Equal(t, 14, cfg.Sync.OrderWindowDays)
	})

	t.Run("trendyol defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://api.trendyol.com/sapigw", cfg.Trendyol.APIBaseURL)
		assert.Equal(t, "Stockie App", cfg.Trendyol.UserAgent)
		assert.Equal(t, 30, cfg.Trendyol.TimeoutSeconds)
	})

	t.Run("loads values from environment variables with STOCKIE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKIE_APP_NAME", "test-app")
		os.Setenv("STOCKIE_APP_ENV", "testing")
		os.Setenv("STOCKIE_APP_PORT", "9000")
		os.Setenv("STOCKIE_DATABASE_HOST", "testdb.local")
		os.Setenv("STOCKIE_DATABASE_PORT", "5433")
		os.Setenv("STOCKIE_DATABASE_USER", "testuser")
		os.Setenv("STOCKIE_DATABASE_PASSWORD", "testpass")
		os.Setenv("STOCKIE_DATABASE_DBNAME", "testdb")
		os.Setenv("STOCKIE_DATABASE_SSLMODE", "require")
		os.Setenv("STOCKIE_TRENDYOL_API_BASE_URL", "https://stageapi.trendyol.com/stagesapigw")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "https://stageapi.trendyol.com/stagesapigw", cfg.Trendyol.APIBaseURL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKIE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("STOCKIE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("validates page size bounds", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKIE_SYNC_PAGE_SIZE", "500")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page_size")
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOCKIE_APP_ENV", "production")
		os.Setenv("STOCKIE_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stockie",
		Password: "p@ss/word",
		DBName:   "stockie",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password survive escaping.
	assert.Contains(t, dsn, "p%40ss%2Fword")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
