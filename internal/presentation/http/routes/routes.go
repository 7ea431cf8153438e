package routes

import (
	"time"

	"github.com/dcruzdev/restopos/internal/config"
	domainRepo "github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/handler"
	"github.com/dcruzdev/restopos/internal/presentation/http/middleware"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Menu         *handler.MenuHandler
	Table        *handler.TableHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	Terminal     *handler.TerminalHandler
	Fiscal       *handler.FiscalHandler
	CashRegister *handler.CashRegisterHandler
	Inventory    *handler.InventoryHandler
	Supplier     *handler.SupplierHandler
	Purchase     *handler.PurchaseHandler
	Customer     *handler.CustomerHandler
	Report       *handler.ReportHandler
	Audit        *handler.AuditHandler
	Company      *handler.CompanyHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Menu
	registerMenuRoutes(protected, h)

	// Tables
	registerTableRoutes(protected, h)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Payments and fiscal documents
	registerPaymentRoutes(protected, h, deps)

	// Payment terminal sessions
	registerTerminalRoutes(protected, h)

	// Cash register sessions
	registerCashRegisterRoutes(protected, h)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Suppliers
	registerSupplierRoutes(protected, h)

	// Purchases
	registerPurchaseRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Operation log
	registerAuditRoutes(protected, h)

	// Company settings
	registerCompanyRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Reading the menu is open to every authenticated operator
	menu := protected.Group("/menu")
	{
		menu.GET("/categories", h.Menu.ListCategories)
		menu.GET("/items", h.Menu.ListItems)
		menu.GET("/items/available", h.Menu.ListAvailableItems)
		menu.GET("/items/:id", h.Menu.GetItem)
	}

	manage := protected.Group("/menu")
	manage.Use(middleware.RequirePermission("manage-menu"))
	{
		manage.POST("/categories", h.Menu.CreateCategory)
		manage.PUT("/categories/:id", h.Menu.UpdateCategory)
		manage.DELETE("/categories/:id", h.Menu.DeleteCategory)
		manage.POST("/items", h.Menu.CreateItem)
		manage.PUT("/items/:id", h.Menu.UpdateItem)
		manage.DELETE("/items/:id", h.Menu.DeleteItem)
	}
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers) {
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.ListTables)
		tables.GET("/:id", h.Table.GetTable)
		tables.GET("/:id/orders", h.Table.GetTableOrders)
	}

	manage := protected.Group("/tables")
	manage.Use(middleware.RequirePermission("manage-tables"))
	{
		manage.POST("", h.Table.CreateTable)
		manage.PUT("/:id", h.Table.UpdateTable)
		manage.DELETE("/:id", h.Table.DeleteTable)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.ListOrders)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.CreateOrder)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PUT("/:id/items", h.Order.UpdateItems)
		orders.POST("/:id/transfer", h.Order.Transfer)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.DELETE("/:id", h.Order.DeleteOrder)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequirePermission("process-payments"))
	{
		payments.GET("", h.Payment.ListPayments)
		// Payment submission must carry an idempotency key so a double
		// tap never produces two fiscal documents
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.ProcessPayment)
		payments.GET("/:id", h.Payment.GetPayment)
		payments.POST("/:id/credit-note", h.Fiscal.CreditNote)
		payments.POST("/:id/efatura", h.Fiscal.GenerateEFatura)
		payments.GET("/:id/efatura", h.Fiscal.DownloadEFatura)
		payments.GET("/:id/qrcode", h.Fiscal.EFaturaQRCode)
	}

	fiscal := protected.Group("/fiscal")
	fiscal.Use(middleware.RequirePermission("view-reports"))
	{
		fiscal.GET("/chain", h.Fiscal.ValidateChain)
		fiscal.GET("/saft", h.Fiscal.ExportSAFT)
	}
}

func registerTerminalRoutes(protected *gin.RouterGroup, h *Handlers) {
	terminal := protected.Group("/terminal")
	terminal.Use(middleware.RequirePermission("process-payments"))
	{
		terminal.POST("/session", h.Terminal.StartSession)
		terminal.GET("/session", h.Terminal.GetSession)
		terminal.DELETE("/session", h.Terminal.EndSession)
		terminal.POST("/session/toggle", h.Terminal.ToggleLine)
		terminal.POST("/session/quantity", h.Terminal.SetLineQuantity)
		terminal.POST("/session/select-all", h.Terminal.SelectAll)
		terminal.POST("/session/select-none", h.Terminal.SelectNone)
		terminal.POST("/session/key", h.Terminal.PressKey)
		terminal.POST("/session/quick-amount", h.Terminal.QuickAmount)
		terminal.POST("/session/mode", h.Terminal.SetMode)
		terminal.POST("/session/submit", h.Terminal.Submit)
	}
}

func registerCashRegisterRoutes(protected *gin.RouterGroup, h *Handlers) {
	register := protected.Group("/cash-register")
	register.Use(middleware.RequirePermission("manage-cash-register"))
	{
		register.POST("/open", h.CashRegister.Open)
		register.POST("/close", h.CashRegister.Close)
		register.GET("/current", h.CashRegister.Current)
		register.POST("/insert", h.CashRegister.InsertMoney)
		register.POST("/extract", h.CashRegister.ExtractMoney)
		register.GET("/sessions", h.CashRegister.ListSessions)
		register.GET("/sessions/:id", h.CashRegister.GetSession)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	inventory.Use(middleware.RequirePermission("manage-inventory"))
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/low-stock", h.Inventory.ListLowStock)
		inventory.GET("/:id", h.Inventory.Get)
		inventory.POST("/:id/adjust", h.Inventory.Adjust)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-suppliers"))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission("manage-purchases"))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/submit", h.Purchase.Submit)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.PUT("/:id/status", h.Purchase.UpdateStatus)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/sales", h.Report.SalesSummary)
		reports.GET("/sales/export", h.Report.ExportSales)
	}
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit")
	audit.Use(middleware.RequirePermission("view-audit-log"))
	{
		audit.GET("", h.Audit.List)
		audit.GET("/:entityType/:objectID", h.Audit.History)
	}
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	company := protected.Group("/settings")
	{
		company.GET("", h.Company.GetSettings)
		company.PUT("", middleware.RequirePermission("manage-settings"), h.Company.UpdateSettings)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
		users.PUT("/:id", h.User.UpdateUser)
		users.DELETE("/:id", h.User.DeleteUser)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles/:role", h.User.RemoveRole)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission("process-payments"))
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
		printerGroup.GET("/receipt/:id/preview", h.Printer.PreviewReceipt)
	}
}
