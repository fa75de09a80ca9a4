package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "erp-private", cfg.Storage.PrivateBucket)
	assert.Equal(t, "2024-01", cfg.Platform.APIVersion)
	assert.Equal(t, 250, cfg.Platform.PageSize)
	assert.Equal(t, "Standard Selling", cfg.Sync.PriceList)
	assert.False(t, cfg.Sync.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_ENABLED", "true")
	t.Setenv("SYNC_WAREHOUSE", "Main Store")
	t.Setenv("PLATFORM_SHOP_URL", "https://demo.myshopify.com")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, "Main Store", cfg.Sync.Warehouse)
	assert.Equal(t, "https://demo.myshopify.com", cfg.Platform.ShopURL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_DRIVER=sqlite\nDATABASE_NAME=:memory:\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("DATABASE_NAME")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Name)
}
