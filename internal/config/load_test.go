package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-32-characters!!"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TIMETABLE_DATABASE_URL", "postgres://localhost:5432/timetable_test")
	t.Setenv("TIMETABLE_AUTH_JWT_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 600, cfg.Cache.CleanupIntervalSeconds)
	assert.Equal(t, "postgres://localhost:5432/timetable_test", cfg.Database.URL)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TIMETABLE_SERVER_PORT", "9090")
	t.Setenv("TIMETABLE_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TIMETABLE_CACHE_TTL_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("TIMETABLE_AUTH_JWT_SECRET", testSecret)
	t.Setenv("TIMETABLE_DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadShortJWTSecret(t *testing.T) {
	t.Setenv("TIMETABLE_DATABASE_URL", "postgres://localhost:5432/timetable_test")
	t.Setenv("TIMETABLE_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TIMETABLE_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
