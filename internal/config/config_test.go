package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10000, cfg.API.TimeoutMs)
	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, "auto", cfg.UI.ColorMode)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.TimeoutMs = 2500
	assert.Equal(t, "2.5s", cfg.Timeout().String())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API.BaseURL, cfg.API.BaseURL)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://dms.example.com/api"
	cfg.UI.PageSize = 25
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://dms.example.com/api", loaded.API.BaseURL)
	assert.Equal(t, 25, loaded.UI.PageSize)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://dms.example.com/api\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://dms.example.com/api", cfg.API.BaseURL)
	// Unspecified sections fall back to defaults.
	assert.Equal(t, 10000, cfg.API.TimeoutMs)
	assert.Equal(t, 10, cfg.UI.PageSize)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestGetSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("api.base_url", "https://dms.example.com/api"))
	v, err := cfg.Get("api.base_url")
	require.NoError(t, err)
	assert.Equal(t, "https://dms.example.com/api", v)

	require.NoError(t, cfg.Set("ui.page_size", "50"))
	v, err = cfg.Get("ui.page_size")
	require.NoError(t, err)
	assert.Equal(t, "50", v)

	require.NoError(t, cfg.Set("log.level", "warn"))
	require.NoError(t, cfg.Set("ui.color_mode", "never"))
	require.NoError(t, cfg.Set("api.timeout_ms", "3000"))
}

func TestSetRejectsInvalidValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Error(t, cfg.Set("api.base_url", "dms.example.com"))
	assert.Error(t, cfg.Set("api.timeout_ms", "0"))
	assert.Error(t, cfg.Set("api.timeout_ms", "soon"))
	assert.Error(t, cfg.Set("ui.color_mode", "sometimes"))
	assert.Error(t, cfg.Set("log.level", "loud"))
	assert.Error(t, cfg.Set("no.such.key", "x"))

	_, err := cfg.Get("no.such.key")
	assert.Error(t, err)
}

func TestSetClampsPageSize(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("ui.page_size", "0"))
	assert.Equal(t, 1, cfg.UI.PageSize)

	require.NoError(t, cfg.Set("ui.page_size", "500"))
	assert.Equal(t, 100, cfg.UI.PageSize)
}

func TestListKeysAllGettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DMS_API_URL", "https://env.example.com/api")
	t.Setenv("DMS_TIMEOUT_MS", "500")
	t.Setenv("DMS_PAGE_SIZE", "200")
	t.Setenv("DMS_DEBUG", "1")

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 500, cfg.API.TimeoutMs)
	assert.Equal(t, 100, cfg.UI.PageSize) // clamped
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("DMS_TIMEOUT_MS", "fast")
	t.Setenv("DMS_PAGE_SIZE", "many")
	t.Setenv("DMS_DEBUG", "perhaps")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 10000, cfg.API.TimeoutMs)
	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
}
