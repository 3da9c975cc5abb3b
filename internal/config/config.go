// Package config loads client configuration: a YAML file under
// ~/.agrigest/, a .env file in the working directory, and environment
// overrides, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env override keys.
const (
	EnvAPIURL  = "AGRIGEST_API_URL"
	EnvTimeout = "AGRIGEST_TIMEOUT"
	EnvTheme   = "AGRIGEST_THEME"
)

// Config holds all agri client settings.
type Config struct {
	// API is the backend configuration.
	API APIConfig `yaml:"api"`

	// UI settings.
	UI UIConfig `yaml:"ui"`
}

// APIConfig configures the backend transport.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the TUI.
type UIConfig struct {
	Theme string `yaml:"theme"` // "light" or "dark"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "30s",
		},
		UI: UIConfig{Theme: "dark"},
	}
}

// Path returns the config file location (~/.agrigest/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agrigest", "config.yaml"), nil
}

// Load builds the effective configuration. A missing config file or
// .env is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads from an explicit file path, then applies .env and
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	if _, err := cfg.RequestTimeout(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.UI.Theme = v
	}
}

// RequestTimeout parses the configured timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// Save writes the configuration back to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
