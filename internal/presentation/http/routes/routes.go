package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/salonpoint/pos-api/internal/config"
	"github.com/salonpoint/pos-api/internal/presentation/http/handler"
	"github.com/salonpoint/pos-api/internal/presentation/http/middleware"
	"github.com/salonpoint/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Wizard  *handler.WizardHandler
	Receipt *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/services", h.Catalog.ListServices)
		catalog.GET("/services/:id/products", h.Catalog.ListServiceProducts)
	}

	wizard := rg.Group("/wizard")
	{
		wizard.GET("", h.Wizard.GetState)
		wizard.GET("/status", h.Wizard.Status)
		wizard.POST("/service", h.Wizard.SelectService)
		wizard.PUT("/customer", h.Wizard.SetCustomer)
		wizard.PUT("/discount", h.Wizard.SetDiscount)
		wizard.POST("/coupon", h.Wizard.ApplyCoupon)
		wizard.DELETE("/coupon", h.Wizard.ClearCoupon)
		wizard.POST("/tender", h.Wizard.Tender)
		wizard.POST("/confirm", h.Wizard.ConfirmPayment)
		wizard.POST("/stage", h.Wizard.EnterStage)
		wizard.POST("/back", h.Wizard.Back)
		wizard.POST("/finalize", h.Wizard.Finalize)
		wizard.POST("/cancel", h.Wizard.Cancel)
		wizard.POST("/new", h.Wizard.StartNew)
	}

	receipt := rg.Group("/receipt")
	{
		receipt.GET("", h.Receipt.Get)
		receipt.POST("/print", h.Receipt.Print)
		receipt.POST("/export", h.Receipt.Export)
	}
}
