package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pymeflow/gestion-api/internal/application/service"
	"github.com/pymeflow/gestion-api/internal/config"
	"github.com/pymeflow/gestion-api/internal/infrastructure/database"
	"github.com/pymeflow/gestion-api/internal/infrastructure/repository"
	"github.com/pymeflow/gestion-api/internal/presentation/http/handler"
	"github.com/pymeflow/gestion-api/internal/presentation/http/routes"
	"github.com/pymeflow/gestion-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

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
	atomic := repository.NewAtomic(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	cashRepo := repository.NewCashRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceJobRepo := repository.NewInvoiceJobRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo, ledgerRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(atomic, saleRepo, saleItemRepo, productRepo, customerRepo, ledgerRepo)
	receiptService := service.NewReceiptService(atomic, receiptRepo, saleRepo, customerRepo, ledgerRepo, cashRepo, invoiceRepo, invoiceJobRepo)
	cashService := service.NewCashService(cashRepo)
	invoicingService := service.NewInvoicingService(atomic, invoiceJobRepo, invoiceRepo, saleRepo, cfg.Invoicing.BatchSize)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Sale:     handler.NewSaleHandler(saleService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Cash:     handler.NewCashHandler(cashService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the invoicing outbox worker
	if cfg.Invoicing.Enabled {
		go invoicingService.Start(ctx, cfg.Invoicing.PollInterval)
	}

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
