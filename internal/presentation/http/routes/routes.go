package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dinetrack/dinetrack-api/internal/config"
	"github.com/dinetrack/dinetrack-api/internal/domain/enum"
	domainRepo "github.com/dinetrack/dinetrack-api/internal/domain/repository"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/handler"
	"github.com/dinetrack/dinetrack-api/internal/presentation/http/middleware"
	"github.com/dinetrack/dinetrack-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	BusinessDay *handler.BusinessDayHandler
	Table       *handler.TableHandler
	Session     *handler.SessionHandler
	Order       *handler.OrderHandler
	QROrder     *handler.QROrderHandler
	Billing     *handler.BillingHandler
	Payment     *handler.PaymentHandler
	Menu        *handler.MenuHandler
	Printer     *handler.PrinterHandler
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

	// Public QR ordering endpoint. The in-process per-IP limiter runs in front
	// of the database-backed per-(IP, table) window inside the service.
	ipLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: deps.Cfg.QRGuard.IPRequestsPerSec,
		BurstSize:         deps.Cfg.QRGuard.IPBurst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.POST("/orders", ipLimiter.Middleware(), h.QROrder.Submit)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Business days
	registerBusinessDayRoutes(protected, h)

	// Tables
	registerTableRoutes(protected, h)

	// Sessions
	registerSessionRoutes(protected, h)

	// Orders
	registerOrderRoutes(protected, h, idem)

	// Billing and payments
	registerBillingRoutes(protected, h, idem)

	// Menu
	registerMenuRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerBusinessDayRoutes(protected *gin.RouterGroup, h *Handlers) {
	days := protected.Group("/business-days")
	{
		days.GET("", h.BusinessDay.List)
		days.GET("/current", h.BusinessDay.Current)
		days.GET("/:id/report", h.BusinessDay.Report)

		// Only roles that handle cash may open or close the drawer.
		cash := days.Group("")
		cash.Use(middleware.RequireRole(enum.RoleOwner.String(), enum.RoleCashier.String()))
		{
			cash.POST("/open", h.BusinessDay.Open)
			cash.POST("/close", h.BusinessDay.Close)
		}
	}
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers) {
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/occupancy", h.Table.Occupancy)
		tables.GET("/:id", h.Table.Get)

		admin := tables.Group("")
		admin.Use(middleware.RequireRole(enum.RoleOwner.String()))
		{
			admin.POST("", h.Table.Create)
			admin.PUT("/:id", h.Table.Update)
			admin.DELETE("/:id", h.Table.Delete)
			admin.POST("/:id/qr-toggle", h.Table.ToggleQR)
		}
	}
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers) {
	sessions := protected.Group("/sessions")
	{
		sessions.GET("", h.Session.List)
		sessions.GET("/:id", h.Session.Get)
		sessions.GET("/:id/bill", h.Billing.GetBySession)
		sessions.POST("/dine-in", h.Session.OpenDineIn)
		sessions.POST("/takeaway", h.Session.OpenTakeaway)
		sessions.POST("/delivery", h.Session.OpenDelivery)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", idem, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/accept", h.Order.Accept)
		orders.POST("/:id/reject", h.Order.Reject)
		orders.POST("/:id/print", h.Order.Print)
	}
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	bills := protected.Group("/bills")
	bills.Use(middleware.RequireRole(enum.RoleOwner.String(), enum.RoleCashier.String()))
	{
		bills.POST("", h.Billing.Upsert)
	}

	payments := protected.Group("/payments")
	payments.Use(middleware.RequireRole(enum.RoleOwner.String(), enum.RoleCashier.String()))
	{
		// Settlement is the one write that must never run twice.
		payments.POST("", idem, h.Payment.Pay)
	}
}

func registerMenuRoutes(protected *gin.RouterGroup, h *Handlers) {
	menu := protected.Group("/menu")
	{
		menu.GET("/categories", h.Menu.ListCategories)
		menu.GET("/items", h.Menu.ListItems)
		menu.GET("/items/:id", h.Menu.GetItem)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/test", h.Printer.Test)
	}
}
