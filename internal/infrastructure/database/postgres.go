package database

import (
	"fmt"
	"log"

	"github.com/dcruzdev/restopos/internal/config"
	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Menu entities
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.Table{},

		// Sales entities
		&entity.Customer{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},
		&entity.PaymentItem{},
		&entity.CashRegister{},

		// Stock entities
		&entity.InventoryItem{},
		&entity.Supplier{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},

		// System entities
		&entity.CompanySettings{},
		&entity.OperationLog{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "manage-menu"},
		{Name: "manage-tables"},
		{Name: "manage-orders"},
		{Name: "process-payments"},
		{Name: "manage-cash-register"},
		{Name: "manage-inventory"},
		{Name: "manage-suppliers"},
		{Name: "manage-purchases"},
		{Name: "manage-customers"},
		{Name: "manage-users"},
		{Name: "view-reports"},
		{Name: "view-audit-log"},
		{Name: "manage-settings"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	seedRole := func(name string, perms []entity.Permission) {
		var existing entity.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			role := entity.Role{Name: name, Permissions: perms}
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Warning: failed to create %s role: %v", name, err)
			}
		}
	}

	seedRole("admin", allPermissions)
	seedRole("manager", pick(
		"manage-menu", "manage-tables", "manage-orders", "process-payments",
		"manage-cash-register", "manage-inventory", "manage-suppliers",
		"manage-purchases", "manage-customers", "view-reports", "view-audit-log",
	))
	seedRole("cashier", pick(
		"manage-orders", "process-payments", "manage-cash-register", "manage-customers",
	))
	seedRole("waiter", pick("manage-orders", "manage-tables"))

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", "admin").First(&adminRole).Error; err == nil {
					if adminName == "" {
						adminName = "Administrator"
					}
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	// Ensure the company settings singleton exists
	var settingsCount int64
	db.Model(&entity.CompanySettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := entity.CompanySettings{
			CompanyName:           viper.GetString("COMPANY_NAME"),
			TaxRegistrationNumber: viper.GetString("COMPANY_NIF"),
			InvoiceSeries:         "FT A",
			CreditNoteSeries:      "NC A",
			ReceiptSeries:         "TV A",
			CurrencyCode:          "CVE",
		}
		if settings.CompanyName == "" {
			settings.CompanyName = "Unconfigured"
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create company settings: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
