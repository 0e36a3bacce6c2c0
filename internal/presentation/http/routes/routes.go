package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pymeflow/gestion-api/internal/config"
	"github.com/pymeflow/gestion-api/internal/domain/repository"
	"github.com/pymeflow/gestion-api/internal/presentation/http/handler"
	"github.com/pymeflow/gestion-api/internal/presentation/http/middleware"
	"github.com/pymeflow/gestion-api/pkg/utils"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Receipt  *handler.ReceiptHandler
	Cash     *handler.CashHandler
}

// Deps groups the cross-cutting dependencies of the router.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo repository.IdempotencyRepository
}

// Setup builds the Gin engine with all routes and middleware.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.DefaultRateLimiterConfig())
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	protected.Use(rateLimiter.Middleware())
	protected.Use(idempotency)
	{
		protected.GET("/auth/profile", h.Auth.Profile)

		customers := protected.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
			customers.GET("/:id/ledger", h.Customer.Ledger)
		}

		products := protected.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		sales := protected.Group("/sales")
		{
			sales.POST("", h.Sale.Create)
			sales.GET("", h.Sale.List)
			sales.GET("/dues", h.Sale.ListWithDues)
			sales.GET("/:id", h.Sale.Get)
			sales.POST("/:id/confirm", h.Sale.Confirm)
			sales.POST("/:id/cancel", h.Sale.Cancel)
		}

		receipts := protected.Group("/receipts")
		{
			receipts.POST("", h.Receipt.Create)
			receipts.GET("", h.Receipt.List)
			receipts.GET("/:id", h.Receipt.Get)
			receipts.POST("/:id/void", h.Receipt.Void)
		}

		cash := protected.Group("/cash-entries")
		{
			cash.POST("", h.Cash.Create)
			cash.GET("", h.Cash.List)
			cash.GET("/:id", h.Cash.Get)
			cash.PUT("/:id", h.Cash.Update)
			cash.DELETE("/:id", h.Cash.Delete)
		}
	}

	return router
}
