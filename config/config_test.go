package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBEngine)
	assert.Equal(t, 6, cfg.PageSize)
	assert.Equal(t, 1, cfg.MinValue)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DB_ENGINE", "sqlite")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBEngine)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "9000", cfg.ServerPort)
}

func TestValidateConfigRejectsBadEngine(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DB_ENGINE", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	assert.Error(t, err)
}
