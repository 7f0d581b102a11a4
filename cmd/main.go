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

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-pairing/brackets"
	"github.com/Dosada05/tournament-pairing/broadcast"
	"github.com/Dosada05/tournament-pairing/cache"
	"github.com/Dosada05/tournament-pairing/config"
	"github.com/Dosada05/tournament-pairing/db"
	"github.com/Dosada05/tournament-pairing/handlers"
	"github.com/Dosada05/tournament-pairing/repositories"
	api "github.com/Dosada05/tournament-pairing/routes"
	"github.com/Dosada05/tournament-pairing/services"
	"github.com/Dosada05/tournament-pairing/storage"
	"github.com/Dosada05/tournament-pairing/utils"
)

// @title Tournament Pairing API
// @version 1.0
// @description Loss-bracket elimination tournaments: rosters, rounds, winners and standings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// tournament-pairing hash-password <пароль> печатает значение для ADMIN_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("cache_backend", cfg.CacheBackend),
		slog.Int("default_threshold", cfg.DefaultThreshold),
	)

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		return err
	}
	logger.Info("database connection established")

	// Кэш пар раундов
	pairingCache, closeCache, err := cache.New(ctx, cache.Options{
		Backend:  cfg.CacheBackend,
		RedisURL: cfg.RedisURL,
		Bucket:   cfg.CacheBucket,
		Gzip:     cfg.CacheGzip,
		TTL:      cfg.CacheTTL,
		Prefix:   "pairings",
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize pairing cache: %w", err)
	}
	defer func() {
		if err := closeCache(); err != nil {
			logger.Error("failed to close pairing cache", slog.Any("error", err))
		}
	}()

	// Инициализация загрузчика файлов (Cloudflare R2), если настроен
	var exporter *storage.Exporter
	r2Cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Cfg.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, r2Cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		exporter = storage.NewExporter(uploader)
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("snapshot export disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := broadcast.NewHub()
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	competitorRepo := repositories.NewPostgresCompetitorRepository(dbConn)

	// Инициализация сервисов
	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey, logger)
	tournamentService := services.NewTournamentService(services.TournamentServiceDeps{
		Tx:               services.NewSQLTxRunner(dbConn),
		TournamentRepo:   tournamentRepo,
		CompetitorRepo:   competitorRepo,
		Cache:            pairingCache,
		Rand:             brackets.NewRandomSource(cfg.RandomSeed),
		Observer:         broadcast.NewPublisher(wsHub),
		Exporter:         exporter,
		DefaultThreshold: cfg.DefaultThreshold,
		Logger:           logger,
	})
	logger.Info("Services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{JWTSecret: cfg.JWTSecretKey, AllowedOrigins: cfg.AllowedOrigins},
		handlers.NewAuthHandler(authService),
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewRoundHandler(tournamentService),
		handlers.NewRosterHandler(tournamentService),
		handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.AllowedOrigins),
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
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
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		// Закрываем WebSocket клиентов до остановки HTTP-сервера.
		stop()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
