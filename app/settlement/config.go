package settlement

import "errors"

var errInvalidMaxRetries = errors.New("max retries must be positive")

// Config represents the configuration for the settlement module
type Config struct {
	MaxRetries int `env:"SETTLEMENT_MAX_RETRIES"`
}

// Validate validates the settlement configuration
func (c *Config) Validate() error {
	if c.MaxRetries <= 0 {
		return errInvalidMaxRetries
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{MaxRetries: 3}
}
