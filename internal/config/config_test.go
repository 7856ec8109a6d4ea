package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "jsonfile")
	t.Setenv("ASSET_DRIVER", "local")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")
}

func TestLoad_DevelopmentDefaultsAdminPassword(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Admin.Password)
}

func TestLoad_ExplicitAdminPasswordKept(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestLoad_ProductionRequiresAdminPassword(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_SplitsCORSOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://shop.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.CORS.AllowedOrigins)
}
