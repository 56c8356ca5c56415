package markets

import (
	"time"

	"github.com/joefazee/creda/models"
)

// Config represents the configuration for the markets module
type Config struct {
	MinMarketDuration time.Duration `env:"MIN_MARKET_DURATION"`
	MaxMarketDuration time.Duration `env:"MAX_MARKET_DURATION"`
	ListCacheTTL      time.Duration `env:"MARKET_LIST_CACHE_TTL"`
	DetailCacheTTL    time.Duration `env:"MARKET_DETAIL_CACHE_TTL"`
	SweepInterval     time.Duration `env:"MARKET_SWEEP_INTERVAL"`
	MaxPageSize       int           `env:"MARKET_MAX_PAGE_SIZE"`
}

// Validate validates the market configuration
func (c *Config) Validate() error {
	if c.MinMarketDuration <= 0 || c.MaxMarketDuration <= c.MinMarketDuration {
		return models.ErrInvalidMarketDuration
	}

	if c.SweepInterval <= 0 {
		return models.ErrInvalidSweepInterval
	}

	if c.ListCacheTTL < 0 || c.DetailCacheTTL < 0 {
		return models.ErrInvalidCacheTTL
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinMarketDuration: 5 * time.Minute,
		MaxMarketDuration: 365 * 24 * time.Hour,
		ListCacheTTL:      15 * time.Second,
		DetailCacheTTL:    5 * time.Second,
		SweepInterval:     30 * time.Second,
		MaxPageSize:       100,
	}
}
