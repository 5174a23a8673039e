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
	"github.com/amirhossein-jamali/payment-processor/internal/domain/usecase/payment"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/usecase/validation"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/logger"
	providerAdapter "github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/provider"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Load signing keys. The private key signs outbound deposit requests, the
	// provider public key verifies responses and notifications.
	signer, err := signature.NewEngineFromFiles(cfg.Signing.PrivateKeyPath, cfg.Signing.PublicKeyPath)
	if err != nil {
		appLogger.Error("Failed to load signing keys", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repository
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)

	// Initialize provider gateway
	gateway := providerAdapter.NewGateway(
		cfg.Provider.DepositURL,
		cfg.Provider.ConnectTimeout,
		cfg.Provider.ReadTimeout,
		appLogger,
	)

	// Initialize validation pipeline from the configured rules
	pipeline := validation.NewPipeline(cfg.Validation.Rules, validation.NewRegistry(), appLogger)

	// Initialize the payment lifecycle service
	paymentService := payment.NewService(
		transactionRepo,
		gateway,
		signer,
		pipeline,
		appLogger,
		payment.Config{
			Username:        cfg.Merchant.Username,
			Password:        cfg.Merchant.Password,
			NotificationURL: cfg.Merchant.NotificationBaseURL,
		},
	)

	// Initialize API handler
	paymentHandler := handler.NewPaymentHandler(paymentService, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, paymentHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or PP_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or PP_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or PP_DB_NAME environment variable)")
	}

	if cfg.Provider.DepositURL == "" {
		missingConfigs = append(missingConfigs, "provider.depositUrl")
	}

	if cfg.Signing.PrivateKeyPath == "" {
		missingConfigs = append(missingConfigs, "signing.privateKeyPath")
	}

	if cfg.Merchant.Username == "" {
		missingConfigs = append(missingConfigs, "merchant.username")
	}
	if cfg.Merchant.NotificationBaseURL == "" {
		missingConfigs = append(missingConfigs, "merchant.notificationBaseUrl")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
