// Package config loads the application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"selfsvc/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	// ServiceName overrides the name derived from the executable when
	// registering or controlling the service.
	ServiceName string

	// DisplayName and Description decorate the registration where the
	// platform supports it.
	DisplayName string
	Description string

	// RunAs is the account the installed service runs under; empty
	// means the platform default.
	RunAs string

	// HeartbeatInterval is the period of the liveness record.
	HeartbeatInterval time.Duration

	Logging logger.Config
}

// rawConfig mirrors the JSON file, with durations as strings.
type rawConfig struct {
	ServiceName       string          `json:"ServiceName"`
	DisplayName       string          `json:"DisplayName"`
	Description       string          `json:"Description"`
	RunAs             string          `json:"RunAs"`
	HeartbeatInterval string          `json:"HeartbeatInterval"`
	Logging           json.RawMessage `json:"Logging"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		HeartbeatInterval: 10 * time.Second,
		Logging:           logger.DefaultConfig(),
	}
}

// Load reads configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from JSON bytes, applying defaults for
// absent fields.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := DefaultConfig()
	cfg.ServiceName = raw.ServiceName
	cfg.DisplayName = raw.DisplayName
	cfg.Description = raw.Description
	cfg.RunAs = raw.RunAs

	if raw.HeartbeatInterval != "" {
		d, err := time.ParseDuration(raw.HeartbeatInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid HeartbeatInterval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("HeartbeatInterval must be positive, got %s", d)
		}
		cfg.HeartbeatInterval = d
	}

	// Unmarshal the logging section over its defaults so omitted
	// fields keep them.
	if len(raw.Logging) > 0 {
		if err := json.Unmarshal(raw.Logging, &cfg.Logging); err != nil {
			return nil, fmt.Errorf("failed to parse Logging section: %w", err)
		}
	}

	return cfg, nil
}
