// Package config loads serve-time options from an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the options of one sequent process.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DefaultBudget bounds step execution when a request omits a budget.
	DefaultBudget uint64 `yaml:"default_budget"`

	// HTTPAddr is the listen address of the HTTP adapter.
	HTTPAddr string `yaml:"http_addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:      "info",
		DefaultBudget: 100000,
		HTTPAddr:      ":8350",
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DefaultBudget == 0 {
		cfg.DefaultBudget = Default().DefaultBudget
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = Default().HTTPAddr
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
