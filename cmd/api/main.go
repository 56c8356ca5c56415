package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/creda/app"
	"github.com/joefazee/creda/app/accounts"
	"github.com/joefazee/creda/app/analytics"
	"github.com/joefazee/creda/app/api"
	"github.com/joefazee/creda/app/database"
	apiDoc "github.com/joefazee/creda/app/doc"
	"github.com/joefazee/creda/app/markets"
	"github.com/joefazee/creda/app/settlement"
	"github.com/joefazee/creda/app/stakes"
	"github.com/joefazee/creda/internal/cache"
	"github.com/joefazee/creda/internal/logger"
	"github.com/joefazee/creda/internal/sanitizer"
	"github.com/joefazee/creda/internal/security"
)

// @title Creda API
// @version 1.0
// @description Credit-based prediction market API: accounts, markets, stakes, settlement and analytics.
// @x-logo {"url": "https://go.dev/images/go-logo-white.svg", "altText": "Go API Logo"}

// @contact.name API Support Team
// @contact.email support@creda.dev

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	lg := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{
		"service": "creda-api",
		"env":     cfg.Env,
	})

	tokenMaker, err := security.NewPasetoMaker(cfg.Accounts.SymmetricKey)
	if err != nil {
		log.Fatal("cannot create token maker:", err)
	}

	htmlSanitizer := sanitizer.NewHTMLStripper()
	watcher := accounts.NewBalanceWatcher()
	accountRepo := accounts.NewRepository(db)

	r := gin.Default()
	r.Use(api.CorsMiddleware())

	apiV1 := r.Group("/api/v1")
	apiV1.GET("/healthz", api.HealthCheck)

	authGroup := apiV1.Group("/")
	authGroup.Use(accounts.AuthMiddleware(tokenMaker, accountRepo))

	accounts.Init(apiV1, authGroup, accounts.Dependencies{
		DB:         db,
		Config:     &cfg.Accounts,
		TokenMaker: tokenMaker,
		Watcher:    watcher,
		Sanitizer:  htmlSanitizer,
		Logger:     lg,
	})

	marketService := markets.Init(apiV1, authGroup, markets.Dependencies{
		DB:          db,
		Config:      &cfg.Markets,
		Sanitizer:   htmlSanitizer,
		DetailCache: newCache[markets.MarketResponse](cfg),
		ListCache:   newCache[markets.MarketListResponse](cfg),
		Logger:      lg,
	})

	stakes.Init(apiV1, authGroup, stakes.Dependencies{
		DB:          db,
		Config:      &cfg.Stakes,
		AccountRepo: accountRepo,
		Watcher:     watcher,
		Logger:      lg,
	})

	settlement.Init(authGroup, settlement.Dependencies{
		DB:          db,
		Config:      &cfg.Settlement,
		AccountRepo: accountRepo,
		Watcher:     watcher,
		Invalidator: marketService,
		Logger:      lg,
	})

	analytics.Init(apiV1, authGroup, analytics.Dependencies{
		DB:     db,
		Config: &cfg.Analytics,
		Logger: lg,
	})

	apiDoc.Init(r)

	sweeper := markets.NewSweeper(marketService, cfg.Markets.SweepInterval, lg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Start(ctx)

	lg.Info("starting server", logger.Fields{"host": cfg.AppHost, "port": cfg.AppPort})
	if err := r.Run(fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newCache[V any](cfg *app.Config) cache.Cache[V] {
	if cfg.CacheBackend == cache.RedisBackend {
		return cache.NewCache[V](cache.RedisBackend, &cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return cache.NewCache[V](cache.MemoryBackend)
}
