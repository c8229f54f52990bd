package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, CatalogSourceStatic, cfg.Catalog.Source)
		assert.Equal(t, "5561982131123", cfg.Catalog.ContactNumber)
		assert.Equal(t, 15*time.Second, cfg.Assets.FetchTimeout)
		assert.Equal(t, 1, cfg.Assets.FetchConcurrency)
		assert.Equal(t, 600, cfg.Assets.MaxDimension)
		assert.Equal(t, 85, cfg.Assets.JPEGQuality)
		assert.Equal(t, "Catálogo", cfg.Sheet.Title)
		assert.Equal(t, "America/Sao_Paulo", cfg.Sheet.Timezone)
		assert.Equal(t, 5*time.Minute, cfg.Sheet.LockTTL)
		assert.Equal(t, "storefront-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with STOREFRONT prefix", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_NAME", "loja")
		t.Setenv("STOREFRONT_APP_PORT", "9000")
		t.Setenv("STOREFRONT_DATABASE_HOST", "db.local")
		t.Setenv("STOREFRONT_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("STOREFRONT_CATALOG_SOURCE", "database")
		t.Setenv("STOREFRONT_ASSETS_BASE_URL", "https://loja.example.com")
		t.Setenv("STOREFRONT_ASSETS_FETCH_TIMEOUT", "3s")
		t.Setenv("STOREFRONT_ASSETS_FETCH_CONCURRENCY", "4")
		t.Setenv("STOREFRONT_REDIS_ENABLED", "true")
		t.Setenv("STOREFRONT_SHEET_TIMEZONE", "UTC")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "loja", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, CatalogSourceDatabase, cfg.Catalog.Source)
		assert.Equal(t, "https://loja.example.com", cfg.Assets.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.Assets.FetchTimeout)
		assert.Equal(t, 4, cfg.Assets.FetchConcurrency)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, time.UTC, cfg.Sheet.Location())
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("STOREFRONT_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown catalog source", func(t *testing.T) {
		t.Setenv("STOREFRONT_CATALOG_SOURCE", "csv")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog.source")
	})

	t.Run("rejects invalid jpeg quality", func(t *testing.T) {
		t.Setenv("STOREFRONT_ASSETS_JPEG_QUALITY", "150")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jpeg_quality")
	})

	t.Run("rejects non http base url", func(t *testing.T) {
		t.Setenv("STOREFRONT_ASSETS_BASE_URL", "ftp://loja.example.com")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "assets.base_url")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		t.Setenv("STOREFRONT_SHEET_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sheet.timezone")
	})

	t.Run("storage requires a bucket when enabled", func(t *testing.T) {
		t.Setenv("STOREFRONT_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("database source requires a password", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_CATALOG_SOURCE", "database")
		t.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("database source requires ssl", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_CATALOG_SOURCE", "database")
		t.Setenv("STOREFRONT_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode")
	})

	t.Run("static source needs no database settings", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("swagger without ip restriction fails", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint")
	})

	t.Run("wildcard cors origin fails", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestSheetConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, SheetConfig{}.Location())
	assert.Equal(t, time.UTC, SheetConfig{Timezone: "Nowhere/City"}.Location())
	assert.Equal(t, "America/Sao_Paulo", SheetConfig{Timezone: "America/Sao_Paulo"}.Location().String())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
