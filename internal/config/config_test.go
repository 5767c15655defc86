package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "skillhub")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "skillhub")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("SEED_FILE", "")
	t.Setenv("SEED_SCHEDULE", "")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		t.Setenv("JWT_TOKEN_EXPIRY", "")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, 30*24*time.Hour, cfg.JWT.TokenExpiry)
		assert.Equal(t, 100, cfg.RateLimit.RequestsPerMinute)
		assert.Equal(t, "skillhub:secret@tcp(localhost:3306)/skillhub?parseTime=true&charset=utf8mb4&multiStatements=true", cfg.DSN())
	})

	t.Run("overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "8081")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
		t.Setenv("JWT_TOKEN_EXPIRY", "1h")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
		t.Setenv("SEED_FILE", "content.yaml")
		t.Setenv("SEED_SCHEDULE", "0 3 * * *")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, time.Hour, cfg.JWT.TokenExpiry)
		assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
		assert.Equal(t, SeedConfig{File: "content.yaml", Schedule: "0 3 * * *"}, cfg.Seed)
	})

	tests := []struct {
		name          string
		key           string
		value         string
		errorContains string
	}{
		{name: "missing db host", key: "DB_HOST", value: "", errorContains: "DB_HOST is required"},
		{name: "invalid db port", key: "DB_PORT", value: "abc", errorContains: "invalid DB_PORT"},
		{name: "missing jwt secret", key: "JWT_SECRET", value: "", errorContains: "JWT_SECRET is required"},
		{name: "invalid expiry", key: "JWT_TOKEN_EXPIRY", value: "soon", errorContains: "invalid JWT_TOKEN_EXPIRY"},
		{name: "negative expiry", key: "JWT_TOKEN_EXPIRY", value: "-1h", errorContains: "must be positive"},
		{name: "invalid server port", key: "SERVER_PORT", value: "port", errorContains: "invalid SERVER_PORT"},
		{name: "zero rate limit", key: "RATE_LIMIT_PER_MINUTE", value: "0", errorContains: "must be positive"},
		{name: "schedule without file", key: "SEED_SCHEDULE", value: "@daily", errorContains: "requires SEED_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("SKILLHUB_API_URL", "https://api.example.com/")
		t.Setenv("SKILLHUB_STATE", "/tmp/state.db")

		cfg, err := LoadClient()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.APIURL)
		assert.Equal(t, "/tmp/state.db", cfg.StatePath)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SKILLHUB_API_URL", "")
		t.Setenv("SKILLHUB_STATE", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := LoadClient()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5000", cfg.APIURL)
		assert.Equal(t, "state.db", filepath.Base(cfg.StatePath))
	})
}

func TestConfig_DSNEmptyWithoutHost(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.DSN())
}
