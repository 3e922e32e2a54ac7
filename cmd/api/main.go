package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/config"
	"github.com/cdzlabs/pos-api/internal/infrastructure/database"
	"github.com/cdzlabs/pos-api/internal/infrastructure/repository"
	"github.com/cdzlabs/pos-api/internal/presentation/http/handler"
	"github.com/cdzlabs/pos-api/internal/presentation/http/routes"
	"github.com/cdzlabs/pos-api/pkg/billing"
	"github.com/cdzlabs/pos-api/pkg/email"
	"github.com/cdzlabs/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	shiftRepo := repository.NewShiftReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize payment gateway. Without a Stripe key card payments are
	// rejected but cash and UPI flows keep working.
	var gateway billing.Gateway
	stripeGateway, err := billing.NewStripeGateway(cfg.Stripe.APIKey, cfg.Stripe.Currency)
	if err != nil {
		log.Printf("Warning: Stripe not configured, card payments disabled: %v", err)
		gateway = billing.NewNullGateway()
	} else {
		gateway = stripeGateway
	}

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, storeRepo)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, categoryRepo, storeRepo)
	categoryService := service.NewCategoryService(categoryRepo, storeRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, storeRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, userRepo, inventoryService, gateway, txManager)
	refundService := service.NewRefundService(refundRepo, orderRepo, userRepo, shiftRepo, inventoryService, gateway, cfg.Inventory.RestockOnRefund)
	shiftService := service.NewShiftService(shiftRepo, orderRepo, refundRepo, userRepo)

	// Background low-stock scanner
	stockAlerts := service.NewStockAlertService(
		inventoryRepo,
		storeRepo,
		emailService,
		cfg.Inventory.LowStockScanInterval,
		cfg.Email.AlertEmail,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stockAlerts.Run(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, categoryService),
		Customer:  handler.NewCustomerHandler(customerService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Order:     handler.NewOrderHandler(orderService),
		Refund:    handler.NewRefundHandler(refundService),
		Shift:     handler.NewShiftHandler(shiftService),
		Billing:   handler.NewBillingHandler(gateway),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
