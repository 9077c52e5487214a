package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for values the widget cannot run with.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.Backend.BaseURL); err != nil {
		return err
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend timeout cannot be negative")
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("backend base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid backend base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend base URL must use http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend base URL must include a host")
	}
	return nil
}
