package markets

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/internal/cache"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/sanitizer"
)

// Dependencies represents the dependencies needed for the markets module
type Dependencies struct {
	DB          *gorm.DB
	Config      *Config
	Sanitizer   sanitizer.HTMLStripperer
	DetailCache cache.Cache[MarketResponse]
	ListCache   cache.Cache[MarketListResponse]
	Logger      logger.Logger
}

// Init initializes the markets module and mounts routes. Public routes go on
// r; authenticated routes go on auth. It returns the service so the sweeper
// and other modules can drive market transitions.
func Init(r, auth *gin.RouterGroup, deps Dependencies) Service {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic("Invalid markets configuration: " + err.Error())
	}

	detailCache := deps.DetailCache
	if detailCache == nil {
		detailCache = cache.NewCache[MarketResponse](cache.MemoryBackend)
	}
	listCache := deps.ListCache
	if listCache == nil {
		listCache = cache.NewCache[MarketListResponse](cache.MemoryBackend)
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, config, deps.Sanitizer, detailCache, listCache, deps.Logger)
	handler := NewHandler(srvs)

	marketsGroup := r.Group("/markets")
	marketsGroup.GET("", handler.GetMarkets)
	marketsGroup.GET("/:id", handler.GetMarketByID)

	authMarkets := auth.Group("/markets")
	authMarkets.POST("", handler.CreateMarket)

	adminGroup := auth.Group("/admin/markets")
	adminGroup.POST("/:id/end", api.Can(accounts.AdminPermission), handler.EndMarket)
	adminGroup.PATCH("/:id/feature", api.Can(accounts.AdminPermission), handler.FeatureMarket)

	return srvs
}
