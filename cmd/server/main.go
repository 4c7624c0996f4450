package main

import (
	"alcyxob/win-tracker/internal/api"
	"alcyxob/win-tracker/internal/config"
	"alcyxob/win-tracker/internal/logger"
	"alcyxob/win-tracker/internal/repository"
	"alcyxob/win-tracker/internal/repository/memory"
	"alcyxob/win-tracker/internal/repository/mongo"
	"alcyxob/win-tracker/internal/service"
	"alcyxob/win-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("could not load config", "err", err)
	}

	appLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal("could not set up logging", "err", err)
	}
	appLog.Info("starting 90 day win tracker", "driver", cfg.Database.Driver, "archive", cfg.S3.Enabled())

	// --- Snapshot Repository ---
	var snapshotRepo repository.SnapshotRepository
	switch cfg.Database.Driver {
	case config.DriverMongo:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			appLog.Fatal("could not connect to MongoDB", "err", err)
		}
		defer func() {
			appLog.Info("disconnecting MongoDB")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				appLog.Error("failed to disconnect MongoDB", "err", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongo.EnsureSnapshotIndexes(ctx, appDB.Collection(mongo.SnapshotCollectionName))
		}()
		snapshotRepo = mongo.NewMongoSnapshotRepository(appDB)
	default:
		appLog.Warn("using in-memory storage; snapshots are lost on restart")
		snapshotRepo = memory.NewSnapshotRepository()
	}

	// --- Snapshot Archive (optional) ---
	var archive storage.SnapshotArchive
	if cfg.S3.Enabled() {
		archive, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			appLog.Fatal("failed to initialize S3 archive", "err", err)
		}
	}

	// --- Services ---
	locks := service.NewUserLocks()
	syncService := service.NewSyncService(snapshotRepo, archive, locks, time.Now)
	challengeService := service.NewChallengeService(snapshotRepo, locks, time.Now)

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(appLog))
	api.SetupRoutes(router, cfg.Server.StaticDir, syncService, challengeService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// --- Graceful Shutdown ---
	go func() {
		appLog.Info("server listening", "addr", cfg.Server.Address, "static", cfg.Server.StaticDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("ListenAndServe", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Error("server forced to shutdown", "err", err)
	}

	appLog.Info("server exiting")
}
