package config_test

import (
	"path/filepath"
	"testing"

	"go-minimart/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "products.bin", cfg.ProductsFile)
	assert.Equal(t, "transactions.bin", cfg.TransactionsFile)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join("./data", "minimart.log"), cfg.LogFile)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("PRODUCTS_FILE", "catalog.bin")
	t.Setenv("LOG_MODE", "production")
	t.Setenv("LOG_FILE", filepath.Join(dir, "app.log"))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "catalog.bin", cfg.ProductsFile)
	assert.Equal(t, "production", cfg.LogMode)
	assert.Equal(t, filepath.Join(dir, "app.log"), cfg.LogFile)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PRODUCTS_FILE", "../escape.bin")
	t.Setenv("TRANSACTIONS_FILE", "products.bin")
	t.Setenv("LOG_MODE", "verbose")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "products.bin", cfg.ProductsFile)
	assert.Equal(t, "transactions.bin", cfg.TransactionsFile)
	assert.Equal(t, "development", cfg.LogMode)
	assert.Equal(t, "info", cfg.LogLevel)
}
