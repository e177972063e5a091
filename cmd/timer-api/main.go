package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/timerpro/timer-api/internal/handler"
	"github.com/timerpro/timer-api/internal/middleware"
	"github.com/timerpro/timer-api/internal/repository"
	"github.com/timerpro/timer-api/internal/service"
	"github.com/timerpro/timer-api/internal/ws"
	"github.com/timerpro/timer-api/pkg/config"
	"github.com/timerpro/timer-api/pkg/logger"
	corsmiddleware "github.com/timerpro/timer-api/pkg/middleware/cors"
	reqidmiddleware "github.com/timerpro/timer-api/pkg/middleware/requestid"
	"github.com/timerpro/timer-api/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	liveClient, err := store.NewRedis(cfg.Redis, cfg.Redis.LiveDB)
	if err != nil {
		logr.Sugar().Fatalw("redis connect failed", "db", cfg.Redis.LiveDB, "error", err)
	}
	configClient, err := store.NewRedis(cfg.Redis, cfg.Redis.ConfigDB)
	if err != nil {
		logr.Sugar().Fatalw("redis connect failed", "db", cfg.Redis.ConfigDB, "error", err)
	}

	storeRepo := repository.NewStoreRepository(liveClient, configClient, logr)
	defer storeRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	configSvc := service.NewConfigService(storeRepo, validate, logr)
	querySvc := service.NewTimerQueryService(storeRepo, logr)

	hub := ws.NewHub(metricsSvc, logr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	timerEvents := ws.NewTimerEvents(storeRepo, querySvc, hub, cfg.Live.TTL, metricsSvc, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	timerHandler := handler.NewTimerHandler(configSvc, querySvc)
	timerHandler.Register(r)

	r.GET("/ws", ws.Serve(hub, timerEvents, logr))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
