// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/api"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/cache"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/config"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/repository/postgres"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/service"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/storage"
	"github.com/JordyS97/dealer-analytics-dashboard/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	salesRepo := postgres.NewSalesRepository(db)
	txRepo := postgres.NewTransactionRepository(db)
	prospectRepo := postgres.NewProspectRepository(db)
	masterRepo := postgres.NewDealerMasterRepository(db)

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without caching")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	var archive storage.ObjectArchive = storage.NoopArchive{}
	if cfg.Archive.Enabled {
		minioArchive, err := storage.NewMinioArchive(ctx, cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Upload archive unavailable, continuing without archiving")
		} else {
			archive = minioArchive
		}
	}

	// Initialize services
	services := &api.Services{
		DashboardService: service.NewDashboardService(salesRepo, txRepo, prospectRepo, masterRepo, dashboardCache, cfg.Analytics),
		IngestService:    service.NewIngestService(salesRepo, txRepo, prospectRepo, masterRepo, dashboardCache, archive),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
