package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8091", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "ROLE_ADMIN", cfg.Auth.AdminRole)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("BACKEND_BASE_URL", "https://claims.example.com")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_ADMIN_ROLE", "ROLE_SUPERVISOR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "https://claims.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "ROLE_SUPERVISOR", cfg.Auth.AdminRole)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ShortSecretRejected(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}
