package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.DevMode)
	assert.Equal(t, "data/users.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "*", cfg.CORS.Origins)
	assert.Equal(t, "", cfg.Auth.Secret)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("USERAPI_SERVER_PORT", "9090")
	t.Setenv("USERAPI_SERVER_DEVMODE", "true")
	t.Setenv("USERAPI_DATABASE_PATH", "/tmp/test-users.db")
	t.Setenv("USERAPI_LOG_LEVEL", "debug")
	t.Setenv("USERAPI_CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("USERAPI_AUTH_SECRET", "reserved")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.DevMode)
	assert.Equal(t, "/tmp/test-users.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://a.example.com,https://b.example.com", cfg.CORS.Origins)
	assert.Equal(t, "reserved", cfg.Auth.Secret)
	assert.Equal(t, ":9090", cfg.Addr())
}
