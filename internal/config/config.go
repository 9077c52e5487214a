package config

import (
	"encoding/json"
	"fmt"
)

// Config is the main serenechat configuration.
type Config struct {
	// Backend holds chat backend connection settings.
	Backend BackendConfig `json:"backend" mapstructure:"backend"`

	// DataDir is where the session identifier is persisted.
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Logging configuration.
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// BackendConfig holds chat backend connection settings.
type BackendConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	// TimeoutSeconds bounds each HTTP request. Zero means no timeout:
	// the protocol has no retry or cancellation policy of its own.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file" mapstructure:"file"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8001",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config marshal error: %v", err)
	}
	return string(data)
}
