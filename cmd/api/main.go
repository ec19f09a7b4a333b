package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/aulaflex/tutor-scheduler/internal/audit"
	"github.com/aulaflex/tutor-scheduler/internal/config"
	dbpkg "github.com/aulaflex/tutor-scheduler/internal/db"
	"github.com/aulaflex/tutor-scheduler/internal/expiration"
	infraRepo "github.com/aulaflex/tutor-scheduler/internal/infra/repository"
	"github.com/aulaflex/tutor-scheduler/internal/logging"
	"github.com/aulaflex/tutor-scheduler/internal/middleware"
	"github.com/aulaflex/tutor-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New(cfg.Environment)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger, auditDispatcher)

	reservationRepo := infraRepo.NewReservationGormRepository(db)
	sweeper := expiration.NewSweeper(reservationRepo, auditDispatcher, logger, redisClient)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
