package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Log       LogConfig       `mapstructure:"log"`
	Journal   JournalConfig   `mapstructure:"journal"`
}

// StoreConfig holds record store API configuration.
type StoreConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Version string        `mapstructure:"version"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabasesConfig holds the identifiers of the two databases: one listing
// seeds, one holding module pages.
type DatabasesConfig struct {
	Seeds   string `mapstructure:"seeds"`
	Modules string `mapstructure:"modules"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// JournalConfig holds run-history journal configuration.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// Validate checks that the fields required for store access are present.
func (c *Config) Validate() error {
	if c.Store.Token == "" {
		return fmt.Errorf("store.token is required (set NMDO_STORE_TOKEN)")
	}
	if c.Databases.Seeds == "" {
		return fmt.Errorf("databases.seeds is required (set NMDO_DATABASES_SEEDS)")
	}
	return nil
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("store.base_url", "https://api.notion.com")
	v.SetDefault("store.token", "")
	v.SetDefault("store.version", "2021-05-13")
	v.SetDefault("store.timeout", "30s")
	v.SetDefault("databases.seeds", "")
	v.SetDefault("databases.modules", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.dsn", "./nmdo.db")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("NMDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
