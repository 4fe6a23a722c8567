package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnboard/pkg/logging"
	"learnboard/services/api-gateway/internal/client"
	"learnboard/services/api-gateway/internal/config"
	"learnboard/services/api-gateway/internal/middleware"
	grpc_server "learnboard/services/api-gateway/internal/transport/grpc"
	handlers "learnboard/services/api-gateway/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Config
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

	// 2. Rate limiter (optional)
	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Error("Failed to connect to Redis", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		logger.Info("Connected to Redis", slog.String("addr", cfg.RedisAddr))
		limiter = middleware.NewRateLimiter(rdb, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	// 3. Backend client
	backend, err := client.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		logger.Error("Invalid backend URL", slog.String("url", cfg.BackendURL), slog.Any("error", err))
		os.Exit(1)
	}

	// 4. Handlers + router
	router := handlers.NewRouter(logger, cfg.Origins(), limiter, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(backend),
		Plan:     handlers.NewPlanHandler(backend),
		Progress: handlers.NewProgressHandler(backend),
		Health:   handlers.NewHealthHandler(backend),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. gRPC health
	reporter := grpc_server.NewHealthReporter(backend, logger)
	grpcServer := reporter.NewServer()
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		logger.Error("Failed to listen", slog.String("port", cfg.GRPCPort), slog.Any("error", err))
		os.Exit(1)
	}
	go reporter.Run(ctx, cfg.HealthInterval)
	go func() {
		logger.Info("gRPC health service running", slog.String("port", cfg.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server stopped", slog.Any("error", err))
		}
	}()

	// 6. HTTP
	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("API Gateway running", slog.String("port", cfg.Port), slog.String("backend", cfg.BackendURL))
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
	grpcServer.GracefulStop()
}
