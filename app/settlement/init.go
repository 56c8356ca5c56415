package settlement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/internal/logger"
)

// Dependencies represents the dependencies needed for the settlement module
type Dependencies struct {
	DB          *gorm.DB
	Config      *Config
	AccountRepo accounts.Repository
	Watcher     *accounts.BalanceWatcher
	Invalidator MarketCacheInvalidator
	Logger      logger.Logger
}

// Init initializes the settlement module and mounts routes
func Init(auth *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic("Invalid settlement configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, deps.AccountRepo, deps.DB, config, deps.Watcher, deps.Invalidator, deps.Logger)
	handler := NewHandler(srvs)

	auth.POST("/admin/markets/:id/resolve", api.Can(accounts.AdminPermission), handler.ResolveMarket)
}
