// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"booking-cost/core/rates"
	"booking-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing selects the rate table
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RatesFile is an HCL rate table; empty means the built-in table
	RatesFile string `json:"rates_file" env:"BOOKING_RATES_FILE"`

	// Currency relabels the table's currency when set
	Currency string `json:"currency,omitempty" env:"BOOKING_CURRENCY"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format" env:"BOOKING_OUTPUT_FORMAT"`

	// ShowBreakdown prints the per-band segments
	ShowBreakdown bool `json:"show_breakdown"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" env:"BOOKING_HTTP_ADDR"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// RateLimitRPS is the sustained request rate; 0 disables limiting
	RateLimitRPS float64 `json:"rate_limit_rps" env:"BOOKING_RATE_LIMIT_RPS"`

	// RateLimitBurst is the bucket size
	RateLimitBurst int `json:"rate_limit_burst"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowBreakdown: true,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			RateLimitRPS:        50,
			RateLimitBurst:      100,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath is $HOME/.booking-cost.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".booking-cost.json"
	}
	return filepath.Join(home, ".booking-cost.json")
}

// Load reads a JSON configuration file over the defaults and applies environment
// overrides. A missing file yields the defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.Validate()
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return fmt.Errorf("output.default_format: unknown format %q", c.Output.DefaultFormat)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("server.rate_limit_rps must not be negative")
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("server.rate_limit_burst must be at least 1 when limiting")
	}
	return nil
}

// RateTable loads the configured table, or the built-in one.
func (c *Config) RateTable() (*rates.Table, error) {
	table := rates.Default()
	if c.Pricing.RatesFile != "" {
		t, err := rates.LoadFile(c.Pricing.RatesFile)
		if err != nil {
			return nil, err
		}
		table = t
	}
	if c.Pricing.Currency != "" {
		table = rates.NewTable(c.Pricing.Currency, table.Bands()...)
	}
	return table, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
