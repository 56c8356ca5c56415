package accounts

import (
	"errors"
	"time"
)

// Config represents the configuration for the accounts module
type Config struct {
	SymmetricKey  string        `env:"TOKEN_SYMMETRIC_KEY"`
	TokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`
}

// Validate validates the accounts configuration
func (c *Config) Validate() error {
	if len(c.SymmetricKey) != 32 {
		return errors.New("token symmetric key must be exactly 32 characters")
	}
	if c.TokenDuration <= 0 {
		return errors.New("access token duration must be positive")
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		SymmetricKey:  "00000000000000000000000000000000",
		TokenDuration: 24 * time.Hour,
	}
}
