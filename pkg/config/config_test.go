package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "data", cfg.Store.DataDir)
	assert.Equal(t, ValidationLoose, cfg.Store.ValidationMode)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "pharma", cfg.Metrics.Prefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("VALIDATION_MODE", "strict")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ValidationStrict, cfg.Store.ValidationMode)
	assert.Equal(t, 2, cfg.JWT.ExpirationHours)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownValidationMode(t *testing.T) {
	t.Setenv("VALIDATION_MODE", "paranoid")

	_, err := Load()
	assert.Error(t, err)
}
