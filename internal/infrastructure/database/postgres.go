package database

import (
	"fmt"

	"github.com/salonpoint/pos-api/internal/config"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

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

	// Single-register deployment; a handful of connections is plenty
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	logrus.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Operator accounts
		&entity.Staff{},

		// Service catalog
		&entity.Service{},
		&entity.ServiceProduct{},

		// Finalized sales
		&entity.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// SeedDefaultData seeds the default operator account and a starter service
// catalog so a fresh install can ring up a sale immediately.
func SeedDefaultData(db *gorm.DB) error {
	if err := seedDefaultStaff(db); err != nil {
		return err
	}
	return seedCatalog(db)
}

func seedDefaultStaff(db *gorm.DB) error {
	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	name := viper.GetString("ADMIN_NAME")
	if username == "" || password == "" {
		return nil
	}
	if name == "" {
		name = "Administrator"
	}

	var existing entity.Staff
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	staff := entity.Staff{
		Name:     name,
		Username: username,
		Password: string(hashed),
	}
	if err := db.Create(&staff).Error; err != nil {
		return fmt.Errorf("failed to create default staff: %w", err)
	}

	logrus.Infof("Created default staff account %q", username)
	return nil
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	services := []entity.Service{
		{Name: "Haircut", Category: "Hair", Price: price("250.00"), Available: true},
		{
			Name: "Hair Color", Category: "Hair", Price: price("1000.00"), Available: true,
			Products: []entity.ServiceProduct{
				{ProductName: "Color Cream", Quantity: 1, Price: price("350.00")},
				{ProductName: "Developer", Quantity: 1, Price: price("120.00")},
			},
		},
		{
			Name: "Manicure", Category: "Nails", Price: price("300.00"), Available: true,
			Products: []entity.ServiceProduct{
				{ProductName: "Nail Polish", Quantity: 1, Price: price("80.00")},
			},
		},
		{Name: "Pedicure", Category: "Nails", Price: price("350.00"), Available: true},
		{Name: "Full Body Massage", Category: "Spa", Price: price("800.00"), Available: true},
	}

	if err := db.Create(&services).Error; err != nil {
		return fmt.Errorf("failed to seed service catalog: %w", err)
	}

	logrus.Infof("Seeded %d catalog services", len(services))
	return nil
}
