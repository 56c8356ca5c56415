package stakes

import (
	"github.com/shopspring/decimal"

	"github.com/joefazee/creda/models"
)

// Config represents the configuration for the stakes module
type Config struct {
	MinStakeAmount decimal.Decimal `env:"MIN_STAKE_AMOUNT"`
	MaxStakeAmount decimal.Decimal `env:"MAX_STAKE_AMOUNT"`
}

// Validate validates the stakes configuration
func (c *Config) Validate() error {
	if c.MinStakeAmount.LessThanOrEqual(decimal.Zero) || c.MaxStakeAmount.LessThanOrEqual(c.MinStakeAmount) {
		return models.ErrInvalidStakeAmount
	}
	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinStakeAmount: decimal.NewFromInt(1),
		MaxStakeAmount: decimal.NewFromInt(10000),
	}
}
