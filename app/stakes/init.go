package stakes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/internal/logger"
)

// Dependencies represents the dependencies needed for the stakes module
type Dependencies struct {
	DB          *gorm.DB
	Config      *Config
	AccountRepo accounts.Repository
	Watcher     *accounts.BalanceWatcher
	Logger      logger.Logger
}

// Init initializes the stakes module and mounts routes. The ledger is
// public; placing stakes and listing own stakes require authentication.
func Init(r, auth *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic("Invalid stakes configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, deps.AccountRepo, deps.DB, config, deps.Watcher, deps.Logger)
	handler := NewHandler(srvs)

	r.GET("/markets/:id/stakes", handler.GetMarketLedger)

	auth.POST("/markets/:id/stakes", handler.PlaceStake)
	auth.GET("/accounts/me/stakes", handler.GetMyStakes)
}
