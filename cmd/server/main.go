package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/api"
	"github.com/ledgerline/receipt-engine/internal/config"
	"github.com/ledgerline/receipt-engine/internal/render"
	"github.com/ledgerline/receipt-engine/internal/repository"
	"github.com/ledgerline/receipt-engine/internal/service"
	"github.com/ledgerline/receipt-engine/internal/storage"
	"github.com/ledgerline/receipt-engine/pkg/utils"
)

func main() {
	// Load .env if present; real env always wins
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting receipt rendering engine",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize collaborator stores
	templateStore := repository.NewTemplateStore(logger)
	preferencesStore := repository.NewPreferencesStore(logger)

	// Optional local archive of rendered PDFs
	var archiver service.ArchiverInterface
	if cfg.Render.ArchiveDir != "" {
		archiver = storage.NewReceiptArchive(cfg.Render.ArchiveDir, logger)
		logger.Info("PDF archiving enabled", zap.String("dir", cfg.Render.ArchiveDir))
	}

	// Initialize rendering pipeline
	logoFetcher := service.NewHTTPLogoFetcher(cfg.Render.LogoFetchTimeout, logger)
	pdfRenderer := render.NewRenderer(logger)
	renderService := service.NewRenderService(
		templateStore,
		preferencesStore,
		logoFetcher,
		pdfRenderer,
		archiver,
		logger,
	)

	handler := api.NewHandler(renderService, cfg.Render.MaxBodyBytes, logger)

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize HTTP router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.LoggingMiddleware(logger))
	router.Use(api.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "receipt-engine",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Render API endpoints
	v1 := router.Group("/api/v1")
	{
		v1.POST("/receipts/render", handler.Render)
		v1.POST("/receipts/preview", handler.Preview)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
