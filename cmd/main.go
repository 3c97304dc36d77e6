package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/bracket-live/brackets"
	"github.com/Dosada05/bracket-live/config"
	"github.com/Dosada05/bracket-live/db"
	"github.com/Dosada05/bracket-live/handlers"
	"github.com/Dosada05/bracket-live/repositories"
	api "github.com/Dosada05/bracket-live/routes"
	"github.com/Dosada05/bracket-live/services"
	"github.com/Dosada05/bracket-live/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Duration("poll_interval", cfg.PollInterval))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	logger.Info("repositories initialized")

	// Icon resolution: plain CDN mapping, upgraded to an R2 mirror when
	// credentials are configured.
	var iconResolver services.IconResolver = services.NewCDNIconResolver(cfg.IconCDNBaseURL)
	if cfg.IconMirrorEnabled() {
		uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		iconResolver = services.NewMirroredIconResolver(iconResolver, uploader, logger)
		logger.Info("icon mirroring enabled", slog.String("bucket", cfg.R2BucketName))
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	// Инициализация сервисов
	bracketCache := brackets.NewCache()
	projectionService := services.NewProjectionService(
		tournamentRepo,
		matchRepo,
		userRepo,
		bracketCache,
		iconResolver,
		logger,
	)
	logger.Info("services initialized")

	// Фоновая рассылка снапшотов по комнатам с активными зрителями
	broadcasterCtx, stopBroadcaster := context.WithCancel(context.Background())
	defer stopBroadcaster()
	broadcaster := services.NewSnapshotBroadcaster(wsHub, projectionService, cfg.PollInterval, logger)
	go broadcaster.Run(broadcasterCtx)
	logger.Info("snapshot broadcaster started", slog.Duration("interval", cfg.PollInterval))

	// Инициализация обработчиков HTTP
	bracketHandler := handlers.NewBracketHandler(projectionService, cfg.PollInterval, logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, projectionService, logger)
	healthHandler := handlers.NewHealthHandler(dbConn)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, bracketHandler, webSocketHandler, healthHandler)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера. WriteTimeout stays zero because the
	// SSE stream holds response writers open indefinitely.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
		ErrorLog:    slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stopBroadcaster()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
