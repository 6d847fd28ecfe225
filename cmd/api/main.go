package main

import (
	"github.com/gin-gonic/gin"
	"github.com/salonpoint/pos-api/internal/application/service"
	"github.com/salonpoint/pos-api/internal/config"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/infrastructure/database"
	"github.com/salonpoint/pos-api/internal/infrastructure/repository"
	"github.com/salonpoint/pos-api/internal/presentation/http/handler"
	"github.com/salonpoint/pos-api/internal/presentation/http/routes"
	"github.com/salonpoint/pos-api/pkg/pdfexport"
	"github.com/salonpoint/pos-api/pkg/printer"
	"github.com/salonpoint/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logrus.Warnf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logrus.Warnf("Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize PDF exporter
	pdfExporter := pdfexport.NewExporter(cfg.Receipt.PDFDir)

	// Initialize services
	authService := service.NewAuthService(staffRepo, jwtManager)
	catalogService := service.NewCatalogService(catalogRepo)
	calculator := service.NewPaymentCalculator(service.CouponTable(cfg.Coupons))
	sessionStore := service.NewSessionStore()
	finalizer := service.NewFinalizerService(transactionRepo, cfg.Receipt.ORPrefix, cfg.Receipt.TxnPrefix)
	wizard := service.NewWizardService(sessionStore, catalogRepo, calculator, finalizer)
	receiptService := service.NewReceiptService(thermalPrinter, pdfExporter, entity.ReceiptHeader{
		BusinessName: cfg.Business.Name,
		Address:      cfg.Business.Address,
		Phone:        cfg.Business.Phone,
		TaxID:        cfg.Business.TaxID,
	}, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Wizard:  handler.NewWizardHandler(wizard),
		Receipt: handler.NewReceiptHandler(receiptService, wizard),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
