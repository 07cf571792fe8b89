package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/adapter/httpapi"
	"github.com/estatehub/marketplace/internal/adapter/messaging/nats"
	"github.com/estatehub/marketplace/internal/adapter/repository/cache"
	"github.com/estatehub/marketplace/internal/adapter/repository/mongodb"
	"github.com/estatehub/marketplace/internal/adapter/storage/s3"
	"github.com/estatehub/marketplace/internal/config"
	"github.com/estatehub/marketplace/internal/mailer"
	"github.com/estatehub/marketplace/internal/platform/logger"
	"github.com/estatehub/marketplace/internal/platform/tracer"
	"github.com/estatehub/marketplace/internal/property/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tp, err := tracer.Init(ctx, cfg.OTLPEndpoint, "marketplace")
		if err != nil {
			zlog.Fatal("failed to init tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				zlog.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zlog.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)

	propertyRepo := mongodb.NewPropertyRepository(db, zlog)
	favoriteRepo, err := mongodb.NewFavoriteRepository(ctx, db, zlog)
	if err != nil {
		zlog.Fatal("failed to init favorite repository", zap.Error(err))
	}
	userRepo := mongodb.NewUserRepository(db, zlog)

	propertyCache, err := cache.NewPropertyCache(ctx, cfg.RedisAddress)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer propertyCache.Close()

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		zlog.Fatal("failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	media, err := s3.NewMediaStorage(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey,
		cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, zlog)
	if err != nil {
		zlog.Fatal("failed to init media storage", zap.Error(err))
	}

	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	listingUC := usecase.NewListingUsecase(propertyRepo, userRepo, propertyCache, publisher, smtp, zlog)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, publisher, zlog)
	mediaUC := usecase.NewMediaUsecase(propertyRepo, media, propertyCache, zlog)
	statsUC := usecase.NewStatsUsecase(propertyRepo, favoriteRepo, userRepo, zlog)

	router := httpapi.NewRouter(
		httpapi.NewPropertyHandler(listingUC, mediaUC, zlog),
		httpapi.NewFavoriteHandler(favoriteUC, zlog),
		httpapi.NewAdminHandler(listingUC, statsUC, zlog),
		cfg.JWTSecret,
		zlog,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
