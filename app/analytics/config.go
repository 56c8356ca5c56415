package analytics

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errInvalidRiskThresholds = errors.New("risk thresholds must satisfy 0 < conservative < balanced")

// Config represents the configuration for the analytics module
type Config struct {
	ConservativeThreshold decimal.Decimal `env:"RISK_CONSERVATIVE_THRESHOLD"`
	BalancedThreshold     decimal.Decimal `env:"RISK_BALANCED_THRESHOLD"`
	MaxSeriesOptions      int             `env:"SERIES_MAX_OPTIONS"`
}

// Validate validates the analytics configuration
func (c *Config) Validate() error {
	if c.ConservativeThreshold.LessThanOrEqual(decimal.Zero) ||
		c.BalancedThreshold.LessThanOrEqual(c.ConservativeThreshold) {
		return errInvalidRiskThresholds
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		ConservativeThreshold: decimal.NewFromFloat(0.05),
		BalancedThreshold:     decimal.NewFromFloat(0.15),
		MaxSeriesOptions:      4,
	}
}
