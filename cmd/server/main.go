package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jai-app/jai-backend/config"
	"github.com/jai-app/jai-backend/internal/app/controller"
	"github.com/jai-app/jai-backend/internal/app/repository"
	"github.com/jai-app/jai-backend/internal/app/service"
	"github.com/jai-app/jai-backend/internal/db"
	"github.com/jai-app/jai-backend/internal/middleware"
	"github.com/jai-app/jai-backend/internal/router"
	"github.com/jai-app/jai-backend/internal/scheduler"
	"github.com/jai-app/jai-backend/internal/storage"
	"github.com/jai-app/jai-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting JAI Onboarding Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize blob store and verify it is reachable before serving
	blobs, err := storage.NewFromConfig(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := blobs.Ping(pingCtx); err != nil {
		cancel()
		logger.Fatal("Blob storage is not reachable", err)
	}
	cancel()
	logger.Info("Blob storage ready", map[string]interface{}{
		"backend": cfg.Storage.Backend,
	})

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db.GetDB())
	attachmentRepo := repository.NewAttachmentRepository(db.GetDB())
	adminRepo := repository.NewAdminRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	companyService := service.NewCompanyService(companyRepo)
	fileService := service.NewFileService(companyRepo, attachmentRepo, blobs, cfg.Upload.MaxFileSize)
	exportService := service.NewExportService(companyRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	companyController := controller.NewCompanyController(companyService, fileService, exportService)
	fileController := controller.NewFileController(fileService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		companyController,
		fileController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the orphan sweeper when enabled
	var sweeper *scheduler.OrphanSweeper
	if cfg.Sweeper.Enabled {
		sweeper = scheduler.NewOrphanSweeper(attachmentRepo, blobs, cfg.Sweeper.Schedule)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("Failed to start orphan sweeper", err)
		}
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	if sweeper != nil {
		sweeper.Stop()
	}
	logger.Info("Server stopped successfully")
}
