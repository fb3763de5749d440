package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ebaylistings/database"
	"ebaylistings/internal/api"
	"ebaylistings/internal/config"
	"ebaylistings/internal/handlers"
	"ebaylistings/internal/logger"
	"ebaylistings/internal/repository"
	"ebaylistings/internal/server"
	"ebaylistings/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	log.Infow("starting", "config", cfg.String())
	if cfg.AuthToken == "" {
		log.Warn("AUTH_TOKEN is not set; /api/ebay-listings will answer 400")
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		recorder service.FetchRecorder = service.NopRecorder{}
		history  handlers.FetchHistory
	)
	if cfg.HistoryEnabled() {
		repo, closeDB, err := openHistory(cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer closeDB()
		recorder, history = repo, repo
	}

	client := api.NewTradingClient(cfg)
	listingsService := service.NewListingsService(client, recorder, log)

	router := server.NewRouter(cfg.WebDir, log,
		handlers.NewListingsHandler(listingsService, log),
		handlers.NewHistoryHandler(history),
	)

	l, err := server.Listen(ctx, cfg, log)
	if err != nil {
		return err
	}

	return server.Serve(ctx, l, router, log)
}

func openHistory(dsn string, log *zap.SugaredLogger) (*repository.FetchRepository, func(), error) {
	db, err := database.Connect(dsn)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewFetchRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("migrate fetch history: %w", err)
	}
	log.Info("fetch history enabled")

	return repo, func() {
		if err := database.Close(db); err != nil {
			log.Warnw("close database", "error", err)
		}
	}, nil
}
