package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/arzan03/LandMarket/internal/auth"
	"github.com/arzan03/LandMarket/internal/config"
	"github.com/arzan03/LandMarket/internal/db"
	"github.com/arzan03/LandMarket/internal/handlers"
	"github.com/arzan03/LandMarket/internal/logger"
	"github.com/arzan03/LandMarket/internal/metrics"
	"github.com/arzan03/LandMarket/internal/repository"
	"github.com/arzan03/LandMarket/internal/repository/memory"
	"github.com/arzan03/LandMarket/internal/services"
	"github.com/arzan03/LandMarket/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const memoryURIPrefix = "memory://"

type stores struct {
	users     services.UserStore
	lands     services.LandStore
	wishlists services.WishlistStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	var client *mongo.Client
	var st stores
	if strings.HasPrefix(cfg.MongoURI, memoryURIPrefix) {
		log.Warn("using in-memory database; data is lost on exit")
		st = stores{
			users:     memory.NewUserRepository(),
			lands:     memory.NewLandRepository(),
			wishlists: memory.NewWishlistRepository(),
		}
	} else {
		client, err = db.ConnectMongoDB(ctx, cfg.MongoURI)
		if err != nil {
			log.Error("failed to connect to MongoDB", "err", err)
			os.Exit(1)
		}
		database := client.Database(cfg.MongoDB)
		if err := db.EnsureIndexes(ctx, database); err != nil {
			log.Error("failed to create indexes", "err", err)
			os.Exit(1)
		}
		log.Info("connected to MongoDB", "db", cfg.MongoDB)
		st = stores{
			users:     repository.NewUserRepository(database),
			lands:     repository.NewLandRepository(database),
			wishlists: repository.NewWishlistRepository(database),
		}
	}

	// Image host
	var objects storage.ObjectStore
	if cfg.StorageDriver == "memory" {
		log.Warn("using in-memory image store; images are lost on exit")
		objects = storage.NewMemoryStore()
	} else {
		objects, err = storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, log)
		if err != nil {
			log.Error("failed to initialize MinIO", "err", err)
			os.Exit(1)
		}
	}
	assets := storage.NewAssetManager(objects, cfg.MediaBaseURL, log)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	landSvc := services.NewLandService(st.lands, st.users, st.wishlists, assets, log)

	app := handlers.NewApp(handlers.Deps{
		Auth:         services.NewAuthService(st.users, auth.NewHasher(bcrypt.DefaultCost), tokens, log),
		Lands:        landSvc,
		Users:        services.NewUserService(st.users, st.lands, st.wishlists, landSvc, log),
		Wishlists:    services.NewWishlistService(st.wishlists, st.lands, log),
		Media:        assets,
		Tokens:       tokens,
		Log:          log,
		BodyLimitMB:  cfg.BodyLimitMB,
		RateLimitRPM: cfg.RateLimitRPM,
		AccessLog:    true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("server stopped", "err", err)
		}
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
	if client != nil {
		if err := db.Disconnect(client); err != nil {
			log.Error("failed to disconnect MongoDB", "err", err)
		}
	}
}
