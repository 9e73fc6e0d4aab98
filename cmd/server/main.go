package main // Entry point package

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/swords14/erclat-floorplan/internal/catalog"
	"github.com/swords14/erclat-floorplan/internal/config"
	"github.com/swords14/erclat-floorplan/internal/database"
	"github.com/swords14/erclat-floorplan/internal/handler"
	"github.com/swords14/erclat-floorplan/internal/middleware"
	"github.com/swords14/erclat-floorplan/internal/queue"
	"github.com/swords14/erclat-floorplan/internal/repository"
	"github.com/swords14/erclat-floorplan/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database open failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: nil disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; response cache and rate limiting disabled")
	}

	// Asset catalog: start sprite fetches now so most image assets are
	// ready before the first render.  Objects placed earlier render with
	// an empty footprint until their sprite arrives.
	loader := catalog.NewSpriteLoader(logger)
	cat := catalog.New(loader, cfg.AssetBaseURL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cat.Prefetch(ctx)

	if cfg.RenderMaxDim > 0 {
		handler.RenderMaxDim = cfg.RenderMaxDim
	}

	layoutRepo := repository.NewLayoutRepo(db)
	h := handler.NewLayoutHandler(layoutRepo, cat, logger)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e)
	router.RegisterPublic(e, h, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterOwner(e, h, cfg.JWTSecret)

	// Audit consumer runs for the life of the process with its own
	// reconnect loop.
	go queue.StartLayoutConsumer(logger)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
