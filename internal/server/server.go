package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanboard/internal/cache"
	"kanboard/internal/config"
	"kanboard/internal/handler"
	"kanboard/internal/logger"
	"kanboard/internal/middleware"
	"kanboard/internal/repository"
	"kanboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    *logrus.Logger
}

// Init connects the stores and mounts every route.
func Init(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	db, err := repository.Open(cfg, logger.Gorm(log))
	if err != nil {
		return nil, fmt.Errorf("❌ %w", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("✅ Connected to database")

	if cfg.AutoMigrate {
		if err := repository.Migrate(db, cfg); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate: %w", err)
		}
		log.Info("✅ Schema is up to date")
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.WithField("addr", cfg.RedisAddr).Info("✅ Redis cache enabled")
	}

	s := &Server{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Log:    log,
	}
	s.Engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(s.Config.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(s.Log))

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(s.DB)
	listRepo := repository.NewListRepository(s.DB)
	cardRepo := repository.NewCardRepository(s.DB)
	healthRepo := repository.NewHealthRepository(s.DB)

	// Initialize services
	var c *cache.Cache
	if s.Redis != nil {
		c = cache.New(s.Redis, s.Config.CacheTTL)
	}
	boardService := service.NewBoardService(boardRepo, c, s.Log)
	listService := service.NewListService(listRepo, boardRepo, c, s.Log)
	cardService := service.NewCardService(cardRepo, listRepo, c, s.Log)

	api := r.Group("/api")
	if s.Redis != nil {
		api.Use(middleware.Idempotency(cache.NewDeduper(s.Redis, s.Config.IdempotencyTTL), s.Log))
	}
	handler.RegisterRoutes(api,
		handler.NewBoardHandler(boardService),
		handler.NewListHandler(listService),
		handler.NewCardHandler(cardService),
		handler.NewHealthHandler(healthRepo),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("❌ failed to listen: %w", err)
	case <-quit:
	}
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Close()
		return fmt.Errorf("❌ server forced to shutdown: %w", err)
	}

	s.Close()
	s.Log.Info("✅ Server exited properly")
	return nil
}

// Close releases the database and Redis connections.
func (s *Server) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Log.WithError(err).Warn("failed to close redis")
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.Log.WithError(err).Warn("failed to close database")
		}
	}
}
