package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a farmdesk directory.
const FileName = "farmdesk.yaml"

// Config represents the top-level farmdesk.yaml configuration.
type Config struct {
	Business    BusinessConfig    `yaml:"business"`
	Fiscal      FiscalConfig      `yaml:"fiscal"`
	Database    DatabaseConfig    `yaml:"database"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// BusinessConfig identifies the farm.
type BusinessConfig struct {
	Name    string   `yaml:"name"`
	Profile string   `yaml:"profile"` // dairy, poultry or mixed
	Sites   []string `yaml:"sites,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// DatabaseConfig points at the store for custom roles and dynamic
// permissions. For sqlite3 a relative DSN is resolved against the
// farmdesk directory.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// PermissionsConfig tunes the permission resolver.
type PermissionsConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// ServerConfig controls farmdesk serve.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads a farmdesk.yaml file from disk. Missing values fall back to
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Permissions.CacheTTL < 0 {
		return nil, fmt.Errorf("permissions.cache_ttl must not be negative, got %s", cfg.Permissions.CacheTTL)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new farm.
func Default(businessName, profile string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:    businessName,
			Profile: profile,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "farmdesk.db",
		},
		Permissions: PermissionsConfig{
			CacheTTL: 5 * time.Minute,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
