package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BarberProDZ/salon-scheduler/internal/config"
	dbpkg "github.com/BarberProDZ/salon-scheduler/internal/db"
	"github.com/BarberProDZ/salon-scheduler/internal/infra/slothold"
	"github.com/BarberProDZ/salon-scheduler/internal/jobs"
	"github.com/BarberProDZ/salon-scheduler/internal/logger"
	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/routes"
)

func main() {

	logger.Init()
	defer logger.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.L().Fatal("failed to connect to redis", zap.Error(err))
	}

	holder := slothold.NewRedisSlotHolder(rdb, cfg.SlotHoldTTL)

	if cfg.CronEnabled {
		scheduler := jobs.NewScheduler(db)
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, holder)

	logger.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("failed to start server", zap.Error(err))
	}
}
