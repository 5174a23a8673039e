package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/signature"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/config"
	"github.com/amirhossein-jamali/payment-processor/internal/providermock"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// The mock signs with the provider key and verifies merchant signatures
	signer, err := signature.NewEngineFromFiles(
		cfg.ProviderMock.PrivateKeyPath,
		cfg.ProviderMock.PublicKeyPath,
	)
	if err != nil {
		appLogger.Error("Failed to load signing keys", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	notifier := providermock.NewNotifier(signer, cfg.ProviderMock.NotificationTimeout, appLogger)
	service := providermock.NewService(signer, notifier, appLogger, cfg.ProviderMock.RedirectBaseURL)
	mockHandler := providermock.NewHandler(service, appLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	providermock.SetupRoutes(router, mockHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ProviderMock.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting provider mock", map[string]any{
			"port": cfg.ProviderMock.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start provider mock", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down provider mock...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Provider mock forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Provider mock exited gracefully", nil)
}
