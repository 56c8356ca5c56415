package analytics

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/creda/internal/logger"
)

// Dependencies represents the dependencies needed for the analytics module
type Dependencies struct {
	DB     *gorm.DB
	Config *Config
	Logger logger.Logger
}

// Init initializes the analytics module and mounts routes
func Init(r, auth *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic("Invalid analytics configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, config, deps.Logger)
	handler := NewHandler(srvs)

	r.GET("/markets/:id/series", handler.GetMarketSeries)
	auth.GET("/accounts/me/stats", handler.GetMyStats)
}
