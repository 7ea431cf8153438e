package main

import (
	"log"
	"os"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/config"
	"github.com/dcruzdev/restopos/internal/infrastructure/database"
	"github.com/dcruzdev/restopos/internal/infrastructure/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/handler"
	"github.com/dcruzdev/restopos/internal/presentation/http/routes"
	"github.com/dcruzdev/restopos/pkg/oauth"
	"github.com/dcruzdev/restopos/pkg/printer"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/gin-gonic/gin"
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
	roleRepo := repository.NewRoleRepository(db)
	categoryRepo := repository.NewMenuCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	paymentItemRepo := repository.NewPaymentItemRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	purchaseItemRepo := repository.NewPurchaseOrderItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	companyRepo := repository.NewCompanySettingsRepository(db)
	logRepo := repository.NewOperationLogRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	auditService := service.NewAuditService(logRepo)
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager, googleOAuthService)
	userService := service.NewUserService(userRepo, roleRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, menuItemRepo, auditService)
	menuService := service.NewMenuService(categoryRepo, menuItemRepo, inventoryRepo, auditService)
	tableService := service.NewTableService(tableRepo, orderRepo, auditService)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, menuItemRepo, tableRepo, customerRepo, inventoryService, auditService)
	txManager := repository.NewTransactionManager(db)
	fiscalService := service.NewFiscalService(paymentRepo, orderRepo, companyRepo, auditService, txManager)
	paymentService := service.NewPaymentService(paymentRepo, paymentItemRepo, orderRepo, orderItemRepo, registerRepo, tableRepo, fiscalService, inventoryService, auditService, txManager)
	terminalService := service.NewTerminalService(orderRepo, registerRepo, paymentService)
	registerService := service.NewCashRegisterService(registerRepo, auditService)
	supplierService := service.NewSupplierService(supplierRepo, auditService)
	purchaseService := service.NewPurchaseService(purchaseRepo, purchaseItemRepo, supplierRepo, inventoryRepo, inventoryService, auditService)
	customerService := service.NewCustomerService(customerRepo, auditService)
	companyService := service.NewCompanyService(companyRepo, auditService)
	efaturaService := service.NewEFaturaService(paymentRepo, companyRepo, cfg.Storage, auditService)
	saftService := service.NewSAFTService(paymentRepo, customerRepo, supplierRepo, companyRepo, cfg.Storage, auditService)
	reportService := service.NewReportService(reportRepo, cfg.Storage, auditService)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, paymentRepo, userRepo, companyRepo, cfg.Printer.CharWidth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Menu:         handler.NewMenuHandler(menuService),
		Table:        handler.NewTableHandler(tableService),
		Order:        handler.NewOrderHandler(orderService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Terminal:     handler.NewTerminalHandler(terminalService),
		Fiscal:       handler.NewFiscalHandler(fiscalService, efaturaService, saftService),
		CashRegister: handler.NewCashRegisterHandler(registerService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Supplier:     handler.NewSupplierHandler(supplierService),
		Purchase:     handler.NewPurchaseHandler(purchaseService),
		Customer:     handler.NewCustomerHandler(customerService),
		Report:       handler.NewReportHandler(reportService),
		Audit:        handler.NewAuditHandler(auditService),
		Company:      handler.NewCompanyHandler(companyService),
		Printer:      handler.NewPrinterHandler(printerService),
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
