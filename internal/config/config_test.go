package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data/venues.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.GeneratedSecret)
	assert.Len(t, cfg.FlashSecret, 64)
}

func TestLoad_GeneratedSecretsDiffer(t *testing.T) {
	a, err := load(env(nil))
	require.NoError(t, err)
	b, err := load(env(nil))
	require.NoError(t, err)
	assert.NotEqual(t, a.FlashSecret, b.FlashSecret)
}

func TestLoad_FromEnvironment(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":         "9090",
		"APP_ENV":      "production",
		"DB_DRIVER":    "Postgres",
		"DATABASE_URL": "postgres://localhost/venues?sslmode=disable",
		"FLASH_SECRET": "0123456789abcdef",
		"LOG_LEVEL":    "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/venues?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "0123456789abcdef", cfg.FlashSecret)
	assert.False(t, cfg.GeneratedSecret)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"non-numeric port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"unknown env", map[string]string{"APP_ENV": "staging"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"short secret", map[string]string{"FLASH_SECRET": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.vars))
			assert.Error(t, err)
		})
	}
}
