package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/internal/cache"
	"github.com/posk43/api-final-yatube/internal/config"
	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/handler"
	"github.com/posk43/api-final-yatube/internal/reconciler"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/internal/service"
	"github.com/posk43/api-final-yatube/pkg/database"
	"github.com/posk43/api-final-yatube/pkg/jwt"
	pkglog "github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/middleware"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
	"github.com/posk43/api-final-yatube/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		ServiceName: "content-api",
	})
	logger := pkglog.L()

	// Database
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Group cache (optional: the service falls back to the database)
	var groupCache cache.GroupCache
	redisCache, err := cache.NewRedisGroupCache(cache.RedisGroupCacheConfig{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, "groups", cfg.Cache.GroupTTL)
	if err != nil {
		logger.Warn().Err(err).Msg("group cache unavailable, reads go to the database")
	} else {
		groupCache = redisCache
		defer redisCache.Close()
	}

	// Event bus. The publisher side carries content events; the
	// subscriber side feeds the reconciler group events.
	var bus pubsub.PubSub
	switch cfg.Events.Backend {
	case pubsub.BackendRedis:
		ps, err := pubsub.NewRedisPubSub(cfg.Events.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis event bus")
		}
		bus = ps
	case pubsub.BackendKafka:
		ps, err := pubsub.NewKafkaPubSub(cfg.Events.Kafka)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to kafka event bus")
		}
		bus = ps
	case pubsub.BackendNone, "":
		logger.Info().Msg("event bus disabled")
	default:
		logger.Fatal().Str("backend", cfg.Events.Backend).Msg("unknown events backend")
	}

	var events pubsub.Publisher
	if bus != nil {
		defer bus.Close()
		events = bus
	}

	// Media storage
	var store storage.Storage
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialise s3 storage")
		}
	case "local", "":
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialise local storage")
		}
	default:
		logger.Fatal().Str("driver", cfg.Storage.Driver).Msg("unknown storage driver")
	}

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)

	// Services
	groupService := service.NewGroupService(groupRepo, groupCache)
	postService := service.NewPostService(postRepo, groupRepo, store, events, service.PaginationLimits{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}, cfg.Storage.URLTTL)
	commentService := service.NewCommentService(commentRepo, postRepo, events)
	followService := service.NewFollowService(followRepo, userRepo, events)

	// Auth
	jwtManager, err := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise jwt manager")
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	r.HandleMethodNotAllowed = true

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := handler.NewHandler(postService, commentService, groupService, followService, authMiddleware, cfg.Storage.MaxBytes)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: r,
	}

	// Background reconciler keeps the group cache warm
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := reconciler.New(groupService, bus, cfg.Reconciler)
	rec.Start(ctx)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("content api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	rec.Stop()
	select {
	case <-rec.Done():
	case <-time.After(5 * time.Second):
		logger.Warn().Msg("reconciler did not stop in time")
	}

	logger.Info().Msg("stopped")
}
