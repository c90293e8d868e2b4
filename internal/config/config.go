// Package config provides configuration management for dms.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the dms configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
	Log LogConfig `yaml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`   // Backend base URL
	TimeoutMs int    `yaml:"timeout_ms"` // Per-request timeout
}

// UIConfig holds table/TUI settings.
type UIConfig struct {
	PageSize  int    `yaml:"page_size"`  // Rows per table page
	ColorMode string `yaml:"color_mode"` // auto, always, or never
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8080/api",
			TimeoutMs: 10000,
		},
		UI: UIConfig{
			PageSize:  10,
			ColorMode: "auto",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFromFile(DefaultPaths().ConfigFile())
}

// LoadFromFile loads configuration from the specified file. A missing
// file yields defaults. Environment overrides are applied after file
// loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveToFile(DefaultPaths().ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Get retrieves a configuration value by dot-separated key, for
// example "api.base_url" or "ui.page_size".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.timeout_ms":
		return strconv.Itoa(c.API.TimeoutMs), nil
	case "ui.page_size":
		return strconv.Itoa(c.UI.PageSize), nil
	case "ui.color_mode":
		return c.UI.ColorMode, nil
	case "log.level":
		return c.Log.Level, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid base_url: %s (must start with http:// or https://)", value)
		}
		c.API.BaseURL = value
	case "api.timeout_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for timeout_ms: %w", err)
		}
		if v < 1 {
			return errors.New("invalid timeout_ms: must be >= 1")
		}
		c.API.TimeoutMs = v
	case "ui.page_size":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for page_size: %w", err)
		}
		c.UI.PageSize = clampPageSize(v)
	case "ui.color_mode":
		if !isValidColorMode(value) {
			return fmt.Errorf("invalid color_mode: %s (must be auto, always, or never)", value)
		}
		c.UI.ColorMode = value
	case "log.level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"api.base_url",
		"api.timeout_ms",
		"ui.page_size",
		"ui.color_mode",
		"log.level",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.TimeoutMs < 1 {
		return errors.New("api.timeout_ms must be >= 1")
	}
	c.UI.PageSize = clampPageSize(c.UI.PageSize)
	if !isValidColorMode(c.UI.ColorMode) {
		return fmt.Errorf("ui.color_mode must be auto, always, or never (got: %s)", c.UI.ColorMode)
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("DMS_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DMS_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			c.API.TimeoutMs = n
		}
	}
	if v := os.Getenv("DMS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = clampPageSize(n)
		}
	}
	if v := os.Getenv("DMS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
}

// clampPageSize keeps page size in [1, 100].
func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidColorMode(mode string) bool {
	switch mode {
	case "auto", "always", "never":
		return true
	default:
		return false
	}
}
