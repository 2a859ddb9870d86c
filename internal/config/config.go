// Package config resolves medport settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIURL is the portal API origin used when MEDPORT_API_URL is unset
const DefaultAPIURL = "http://localhost:5000"

// Config holds all medport settings
type Config struct {
	// APIURL is the portal API origin
	APIURL string `env:"MEDPORT_API_URL" envDefault:"http://localhost:5000"`

	// TimeoutMS bounds each API request in milliseconds
	TimeoutMS int `env:"MEDPORT_TIMEOUT_MS" envDefault:"15000"`

	// CredentialsPath is where the auth token lives; defaults to
	// ~/.medport/credentials.json
	CredentialsPath string `env:"MEDPORT_CREDENTIALS"`

	// LogLevel is the minimum log severity (debug, info, warn, error)
	LogLevel string `env:"MEDPORT_LOG_LEVEL" envDefault:"info"`

	// LogFormat selects text or json log output
	LogFormat string `env:"MEDPORT_LOG_FORMAT" envDefault:"text"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TimeoutMS <= 0 {
		cfg.TimeoutMS = 15000
	}

	if cfg.CredentialsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.CredentialsPath = filepath.Join(home, ".medport", "credentials.json")
	}

	return cfg, nil
}

// Timeout returns the per-request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
