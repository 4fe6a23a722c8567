package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnboard/pkg/logging"
	"learnboard/services/plan-service/config"
	"learnboard/services/plan-service/internal/application/usecase"
	"learnboard/services/plan-service/internal/infrastructure/generator"
	"learnboard/services/plan-service/internal/infrastructure/repository"
	"learnboard/services/plan-service/internal/infrastructure/security"
	handlers "learnboard/services/plan-service/internal/transport/http"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDB(postgres.Open(cfg.DSN()), cfg.AppEnv, logger)
	if err != nil {
		logger.Error("Failed to connect to DB", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Database connection established", slog.String("host", cfg.DBHost), slog.String("db", cfg.DBName))

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.TokenTTL)

	authUseCase := usecase.NewAuthUseCase(userRepo, hasher, tokenManager)
	planUseCase := usecase.NewPlanUseCase(planRepo, generator.NewTemplateGenerator(), cfg.MaxUnfinishedPlans)
	activityUseCase := usecase.NewActivityUseCase(planRepo, activityRepo, time.Now)
	analyticsUseCase := usecase.NewAnalyticsUseCase(planRepo, activityRepo, time.Now)

	router := handlers.NewRouter(logger, authUseCase, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authUseCase),
		Plan:      handlers.NewPlanHandler(planUseCase, activityUseCase),
		Analytics: handlers.NewAnalyticsHandler(analyticsUseCase),
	})

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Plan Service running", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to run server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
