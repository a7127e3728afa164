package main

// @title Site Analysis Service API
// @version 1.0.0
// @description Batch analysis of geographic site datasets. Upload a CSV with site_id, lat, lon and cluster_id columns and receive per-site neighbor density, co-location groups and an area classification (Rural / Suburban / Urban / Dense), plus a download link for the full annotated result.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/site-analysis-service/docs"
	"github.com/site-analysis-service/internal/analysis"
	"github.com/site-analysis-service/internal/config"
	httpDelivery "github.com/site-analysis-service/internal/delivery/http"
	"github.com/site-analysis-service/internal/delivery/http/handler"
	"github.com/site-analysis-service/internal/observability"
	"github.com/site-analysis-service/internal/pkg/logger"
	"github.com/site-analysis-service/internal/repository/cache"
	"github.com/site-analysis-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Site Analysis Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Duration("result_ttl", cfg.Cache.ResultTTL),
	)

	// 3. Connect to Redis (result cache)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("Redis connected and healthy")

	// 4. Initialize repositories and metrics
	resultRepo := cache.NewResultRepository(redisClient)
	metrics := observability.NewMetrics()

	// 5. Initialize use cases
	analysisUC := usecase.NewAnalysisUseCase(
		analysis.NewPipeline(log),
		resultRepo,
		metrics,
		log,
		cfg.Cache.ResultTTL,
	)

	// 6. Initialize HTTP handlers
	analysisHandler := handler.NewAnalysisHandler(analysisUC, cfg.Analysis, log)
	healthHandler := handler.NewHealthHandler(redisClient.Health, log)

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		analysisHandler,
		healthHandler,
		metrics,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
