package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cdzlabs/pos-api/internal/config"
	domainRepo "github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/internal/presentation/http/handler"
	"github.com/cdzlabs/pos-api/internal/presentation/http/middleware"
	"github.com/cdzlabs/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Inventory *handler.InventoryHandler
	Order     *handler.OrderHandler
	Refund    *handler.RefundHandler
	Shift     *handler.ShiftHandler
	Billing   *handler.BillingHandler
	User      *handler.UserHandler
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

		// Per-user rate limiter
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
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Catalog
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Refunds
	registerRefundRoutes(protected, h)

	// Shifts
	registerShiftRoutes(protected, h)

	// Billing
	registerBillingRoutes(protected, h)

	// Users and stores (Admin)
	registerAdminRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/sku/:sku", h.Product.GetBySKU)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", h.Product.CreateCategory)
		categories.PUT("/:id", h.Product.UpdateCategory)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.POST("", h.Inventory.Create)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.POST("/restock", h.Inventory.Restock)
		inventory.GET("/product/:productId", h.Inventory.Get)
		inventory.PUT("/:id", h.Inventory.Update)
		inventory.DELETE("/:id", h.Inventory.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware so a double-submitted
		// checkout never charges and debits twice
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/today", h.Order.Today)
		orders.GET("/recent", h.Order.Recent)
		orders.GET("/customer/:customerId", h.Order.ListByCustomer)
		orders.GET("/cashier/:cashierId", h.Order.ListByCashier)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerRefundRoutes(protected *gin.RouterGroup, h *Handlers) {
	refunds := protected.Group("/refunds")
	{
		refunds.GET("", h.Refund.List)
		refunds.POST("", h.Refund.Create)
		refunds.GET("/cashier/:cashierId", h.Refund.ListByCashier)
		refunds.GET("/store/:storeId", h.Refund.ListByStore)
		refunds.GET("/shift/:shiftReportId", h.Refund.ListByShiftReport)
		refunds.GET("/:id", h.Refund.Get)
		refunds.DELETE("/:id", h.Refund.Delete)
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.POST("/start", h.Shift.Start)
		shifts.GET("/current", h.Shift.Current)
		shifts.POST("/end", h.Shift.End)
		shifts.GET("/cashier/:cashierId", h.Shift.ListByCashier)
		shifts.GET("/cashier/:cashierId/by-date", h.Shift.GetByDate)
		shifts.GET("/store/:storeId", h.Shift.ListByStore)
		shifts.GET("/:id", h.Shift.Get)
	}
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers) {
	billing := protected.Group("/billing")
	{
		billing.POST("/payment-intent", h.Billing.CreatePaymentIntent)
	}
}

func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole("admin", "manager"))
	{
		admin.POST("/users", h.User.Create)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id/store", h.User.AssignStore)
		admin.GET("/stores", h.User.ListStores)
		admin.POST("/stores", h.User.CreateStore)
		admin.GET("/stores/:id", h.User.GetStore)
		admin.PUT("/stores/:id", h.User.UpdateStore)
		admin.GET("/stores/:id/users", h.User.ListByStore)
	}
}
