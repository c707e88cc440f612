package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"facturalo/internal/api"
	"facturalo/internal/api/handlers"
	"facturalo/internal/repository"
	"facturalo/internal/service"
	"facturalo/pkg/auth"
	"facturalo/pkg/config"
	"facturalo/pkg/logger"
	"facturalo/pkg/postgres"
	"facturalo/pkg/storage"

	"go.uber.org/zap"
)

// @title Facturalo API
// @version 1.0
// @description Invoicing service: form data in, durable PDF invoices out

// @contact.name API Support
// @contact.email support@facturalo.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Facturalo service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize object storage
	store, err := storage.New(ctx, &cfg.Storage, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	companyRepo := repository.NewCompanyRepository(db, appLogger)
	customerRepo := repository.NewCustomerRepository(db, appLogger)
	invoiceRepo := repository.NewInvoiceRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	companyService := service.NewCompanyService(companyRepo, store, appLogger)
	customerService := service.NewCustomerService(customerRepo, appLogger)
	invoiceService := service.NewInvoiceService(invoiceRepo, store, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	companyHandler := handlers.NewCompanyHandler(companyService, appLogger)
	customerHandler := handlers.NewCustomerHandler(customerService, appLogger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, companyService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, companyHandler, customerHandler, invoiceHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
