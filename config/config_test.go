package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"SECRET_KEY": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "token_blacklist.db", cfg.TokenDBPath)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Empty(t, cfg.SuperAdmin.Email)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"SECRET_KEY":           "s3cret",
		"AWS_LWA_PORT":         "9000",
		"ENV":                  "prod",
		"AUTO_MIGRATE":         "true",
		"LOG_LEVEL":            "debug",
		"TOKEN_TTL":            "15m",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"SUPERADMIN_EMAIL":     "root@example.com",
		"SUPERADMIN_PASSWORD":  "password123",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "root@example.com", cfg.SuperAdmin.Email)
	assert.Equal(t, "Super Admin", cfg.SuperAdmin.Name)
}

func TestFromEnv_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":   {},
		"bad auto migrate": {"SECRET_KEY": "x", "AUTO_MIGRATE": "maybe"},
		"bad ttl":          {"SECRET_KEY": "x", "TOKEN_TTL": "soon"},
		"negative ttl":     {"SECRET_KEY": "x", "TOKEN_TTL": "-1m"},
		"bad log level":    {"SECRET_KEY": "x", "LOG_LEVEL": "loud"},
		"half superadmin":  {"SECRET_KEY": "x", "SUPERADMIN_EMAIL": "a@b.c"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(values))
			assert.Error(t, err)
		})
	}
}
