package database

import (
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/entity"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	"github.com/dinetrack/dinetrack-api/pkg/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.Info("Connected to PostgreSQL database", nil)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...", nil)

	err := db.AutoMigrate(
		// Staff
		&entity.Staff{},

		// Catalog (read-only for this service)
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.ModifierGroup{},
		&entity.Modifier{},

		// Core aggregates
		&entity.BusinessDay{},
		&entity.Table{},
		&entity.Session{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemModifier{},
		&entity.Bill{},
		&entity.Payment{},

		// System entities
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
		&entity.QrRequestKey{},
		&entity.QrRateWindow{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createPartialIndexes(db); err != nil {
		return err
	}

	logger.Info("Database migrations completed", nil)
	return nil
}

// createPartialIndexes adds the uniqueness guarantees AutoMigrate cannot
// express: at most one open business day system-wide, and at most one active
// session per table. Concurrent opens race on these indexes; exactly one
// insert wins and the loser surfaces as a duplicate-key error.
func createPartialIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_business_days_single_open
			ON business_days (status) WHERE status = 0`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_sessions_active_table
			ON sessions (table_id) WHERE status = 0 AND table_id IS NOT NULL AND deleted_at IS NULL`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}
	return nil
}

// SeedDefaultData seeds the owner account, a starter floor plan, and a small
// menu so a fresh install is immediately usable
func SeedDefaultData(db *gorm.DB) error {
	logger.Info("Seeding default data...", nil)

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.Staff
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				logger.Error("Failed to hash owner password", map[string]interface{}{"error": err.Error()})
			} else {
				if adminName == "" {
					adminName = "Owner"
				}
				owner := entity.Staff{
					Email:    adminEmail,
					Password: string(hashed),
					FullName: adminName,
					Role:     enum.RoleOwner,
					IsActive: true,
				}
				if err := db.Create(&owner).Error; err != nil {
					logger.Error("Failed to create owner account", map[string]interface{}{"error": err.Error()})
				} else {
					logger.Info("Owner account created", map[string]interface{}{"email": adminEmail})
				}
			}
		}
	}

	// Starter tables 1-8, created only on an empty floor plan
	var tableCount int64
	db.Model(&entity.Table{}).Count(&tableCount)
	if tableCount == 0 {
		for i := 1; i <= 8; i++ {
			table := entity.Table{
				TableNumber: fmt.Sprintf("%d", i),
				Capacity:    4,
				QREnabled:   true,
				IsActive:    true,
			}
			if err := db.Create(&table).Error; err != nil {
				logger.Error("Failed to seed table", map[string]interface{}{"table_number": table.TableNumber, "error": err.Error()})
			}
		}
	}

	// Minimal menu so order flows work out of the box
	var categoryCount int64
	db.Model(&entity.MenuCategory{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []struct {
			name  string
			items []entity.MenuItem
		}{
			{"Starters", []entity.MenuItem{
				{Name: "Spring Rolls", Price: 650, IsAvailable: true, IsActive: true},
				{Name: "Lentil Soup", Price: 450, IsAvailable: true, IsActive: true},
			}},
			{"Mains", []entity.MenuItem{
				{Name: "Grilled Chicken", Price: 1299, IsAvailable: true, IsActive: true},
				{Name: "Beef Burger", Price: 1099, IsAvailable: true, IsActive: true},
			}},
			{"Drinks", []entity.MenuItem{
				{Name: "Fresh Juice", Price: 400, IsAvailable: true, IsActive: true},
				{Name: "Mineral Water", Price: 150, IsAvailable: true, IsActive: true},
			}},
		}
		for order, c := range categories {
			category := entity.MenuCategory{Name: c.name, DisplayOrder: order, IsActive: true}
			if err := db.Create(&category).Error; err != nil {
				logger.Error("Failed to seed category", map[string]interface{}{"name": c.name, "error": err.Error()})
				continue
			}
			for i := range c.items {
				c.items[i].CategoryID = category.ID
				if err := db.Create(&c.items[i]).Error; err != nil {
					logger.Error("Failed to seed menu item", map[string]interface{}{"name": c.items[i].Name, "error": err.Error()})
				}
			}
		}
	}

	logger.Info("Default data seeding completed", nil)
	return nil
}
