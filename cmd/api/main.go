package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/application/service"
	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/internal/infrastructure/database"
	infraRepo "github.com/dinetrack/dinetrack-api/internal/infrastructure/repository"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/handler"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/routes"
	"github.com/dinetrack/dinetrack-api/pkg/printer"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
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
	staffRepo := infraRepo.NewStaffRepository(db)
	dayRepo := infraRepo.NewBusinessDayRepository(db)
	tableRepo := infraRepo.NewTableRepository(db)
	sessionRepo := infraRepo.NewSessionRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)
	orderItemRepo := infraRepo.NewOrderItemRepository(db)
	billRepo := infraRepo.NewBillRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	menuRepo := infraRepo.NewMenuRepository(db)
	guardRepo := infraRepo.NewQRGuardRepository(db)
	auditRepo := infraRepo.NewAuditRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)

	// Initialize thermal printer
	device, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		device = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(staffRepo, jwtManager)
	dayService := service.NewBusinessDayService(dayRepo, auditRepo)
	tableService := service.NewTableService(tableRepo, sessionRepo)
	sessionService := service.NewSessionService(sessionRepo, tableRepo, dayRepo)
	menuService := service.NewMenuService(menuRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, sessionRepo, menuRepo, auditRepo)
	qrOrderService := service.NewQROrderService(orderRepo, orderItemRepo, sessionRepo, tableRepo, menuRepo, guardRepo, auditRepo, cfg.QRGuard)
	billingService := service.NewBillingService(billRepo, orderRepo, sessionRepo, cfg.POS)
	printerService := service.NewPrinterService(device, cfg.Printer, cfg.POS, orderRepo, sessionRepo, auditRepo)
	paymentService := service.NewPaymentService(paymentRepo, billRepo, sessionRepo, staffRepo, auditRepo, printerService)
	reportService := service.NewReportService(reportRepo, dayRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		BusinessDay: handler.NewBusinessDayHandler(dayService, reportService),
		Table:       handler.NewTableHandler(tableService),
		Session:     handler.NewSessionHandler(sessionService),
		Order:       handler.NewOrderHandler(orderService, printerService),
		QROrder:     handler.NewQROrderHandler(qrOrderService),
		Billing:     handler.NewBillingHandler(billingService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Menu:        handler.NewMenuHandler(menuService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Background sweeps for expired idempotency keys and stale QR windows
	go sweepExpired(idempotencyRepo, guardRepo, cfg.QRGuard.IdempotencyTTL)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// sweepExpired periodically removes expired staff idempotency keys and stale
// QR guard rows so the tables stay bounded.
func sweepExpired(idemRepo repository.IdempotencyRepository, guardRepo repository.QRGuardRepository, windowRetention time.Duration) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := idemRepo.DeleteExpired(ctx); err != nil {
			log.Printf("Warning: idempotency sweep failed: %v", err)
		}
		if err := guardRepo.DeleteExpired(ctx, windowRetention); err != nil {
			log.Printf("Warning: QR guard sweep failed: %v", err)
		}
		cancel()
	}
}
