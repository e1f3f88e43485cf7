// Package common provides shared utilities for Valor
package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Valor
type Config struct {
	Environment string          `toml:"environment"`
	Clients     ClientsConfig   `toml:"clients"`
	Valuation   ValuationConfig `toml:"valuation"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
	Yahoo YahooConfig `toml:"yahoo"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// YahooConfig holds fallback quote source configuration
type YahooConfig struct {
	Enabled bool `toml:"enabled"`
}

// ValuationConfig holds tunable blending parameters. Weights are
// renormalized over the models that actually ran.
type ValuationConfig struct {
	ModelWeights map[string]float64 `toml:"model_weights"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Yahoo: YahooConfig{Enabled: true},
		},
		Valuation: ValuationConfig{
			ModelWeights: map[string]float64{
				"graham":         0.25,
				"earnings_power": 0.25,
				"owner_earnings": 0.35,
				"book_anchor":    0.15,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VALOR_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("VALOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("VALOR_EODHD_BASE_URL"); url != "" {
		config.Clients.EODHD.BaseURL = url
	}

	// API key: vendor-standard name first, then the prefixed form
	for _, name := range []string{"EODHD_API_KEY", "VALOR_EODHD_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.EODHD.APIKey = key
			break
		}
	}
}
