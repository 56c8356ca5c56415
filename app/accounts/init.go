package accounts

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/sanitizer"
	"github.com/joefazee/creda/internal/security"
)

// Dependencies represents the dependencies needed for the accounts module
type Dependencies struct {
	DB         *gorm.DB
	Config     *Config
	TokenMaker security.Maker
	Watcher    *BalanceWatcher
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
}

// Init initializes the accounts module and mounts routes. Public routes go
// on r; authenticated routes go on auth (a group wrapped in AuthMiddleware).
func Init(r, auth *gin.RouterGroup, deps Dependencies) {
	config := deps.Config
	if config == nil {
		config = GetDefaultConfig()
	}

	if err := config.Validate(); err != nil {
		panic("Invalid accounts configuration: " + err.Error())
	}

	repo := NewRepository(deps.DB)
	srvs := NewService(repo, deps.DB, config, deps.TokenMaker, deps.Watcher, deps.Logger)
	handler := NewHandler(srvs, deps.Watcher, deps.Sanitizer)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", handler.Register)
	accountsGroup.POST("/login", handler.Login)

	meGroup := auth.Group("/accounts/me")
	meGroup.GET("", handler.GetProfile)
	meGroup.GET("/transactions", handler.GetTransactions)
	meGroup.GET("/balance/stream", handler.StreamBalance)

	adminGroup := auth.Group("/admin/accounts")
	adminGroup.POST("/:id/topup", api.Can(AdminPermission), handler.TopUp)
}
