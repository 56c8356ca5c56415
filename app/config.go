package app

import (
	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/analytics"
	"github.com/joefazee/creda/app/database"
	"github.com/joefazee/creda/app/markets"
	"github.com/joefazee/creda/app/settlement"
	"github.com/joefazee/creda/app/stakes"
	"github.com/joefazee/creda/internal/nexus"
)

type Config struct {
	DB         database.Config
	Accounts   accounts.Config
	Markets    markets.Config
	Stakes     stakes.Config
	Settlement settlement.Config
	Analytics  analytics.Config

	AppHost string `env:"APP_HOST" default:"localhost"`
	AppPort string `env:"APP_PORT" default:"8080"`
	Env     string `env:"APP_ENV" default:"development"`

	CacheBackend  string `env:"CACHE_BACKEND" default:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
}

// LoadConfig loads the application configuration from environment variables
// or a config file. Module sections start from their defaults so only the
// overridden values need to be present in the environment.
func LoadConfig() (*Config, error) {
	c := &Config{
		Accounts:   *accounts.GetDefaultConfig(),
		Markets:    *markets.GetDefaultConfig(),
		Stakes:     *stakes.GetDefaultConfig(),
		Settlement: *settlement.GetDefaultConfig(),
		Analytics:  *analytics.GetDefaultConfig(),
	}
	err := nexus.NewLoader().Load(c)
	return c, err
}
