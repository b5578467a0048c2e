package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sidompet/sidompet-api/internal/config"
	"github.com/sidompet/sidompet-api/internal/database"
	"github.com/sidompet/sidompet-api/internal/handlers"
	"github.com/sidompet/sidompet-api/internal/jobs"
	"github.com/sidompet/sidompet-api/internal/middleware"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/services"
	"github.com/sidompet/sidompet-api/internal/storage"
	"github.com/sidompet/sidompet-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, worker, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// Operator account management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.PUT("/users/:user_id", h.User.Update)
				admin.DELETE("/users/:user_id", h.User.Destroy)

				// Monthly billing rollover
				admin.POST("/billing/cycle", h.Billing.RunCycle)

				// Backup and restore
				admin.GET("/backup/export", h.Backup.Export)
				admin.POST("/backup/restore", h.Backup.Restore)
				admin.GET("/backup/archives/download", h.Backup.DownloadArchive)
				admin.DELETE("/backup/archives", h.Backup.DeleteArchive)

				// Background worker statistics
				admin.GET("/jobs/stats", h.Job.Stats)

				// Company settings
				admin.PUT("/company", h.Company.Update)

				// Reserve cash transfers
				admin.POST("/reserve/deposit", h.Reserve.Deposit)
				admin.POST("/reserve/withdraw", h.Reserve.Withdraw)

				// Profit sharing
				admin.POST("/profit-sharing/distribute", h.ProfitSharing.Distribute)
			}

			// Customers
			customers := protected.Group("/customers")
			{
				customers.GET("", h.Customer.Index)
				customers.POST("", h.Customer.Create)
				customers.GET("/:customer_id", h.Customer.Show)
				customers.PUT("/:customer_id", h.Customer.Update)
				customers.DELETE("/:customer_id", h.Customer.Destroy)
				customers.POST("/:customer_id/pay", h.Billing.Pay)
				customers.GET("/:customer_id/reminder_link", h.Customer.ReminderLink)
			}

			// Finance ledger
			finance := protected.Group("/finance")
			{
				finance.GET("", h.Finance.Index)
				finance.POST("", h.Finance.Create)
				finance.PUT("/:entry_id", h.Finance.Update)
				finance.DELETE("/:entry_id", h.Finance.Destroy)
				finance.GET("/summary", h.Finance.Summary)
			}

			// Billing
			protected.GET("/billing/unpaid_summary", h.Billing.UnpaidSummary)

			// Reserve cash (read side)
			protected.GET("/reserve", h.Reserve.Show)
			protected.GET("/reserve/history", h.Reserve.History)

			// Profit sharing snapshot
			protected.GET("/profit-sharing", h.ProfitSharing.Index)

			// Reports
			reports := protected.Group("/reports")
			{
				reports.GET("/monthly", h.Report.Monthly)
				reports.GET("/categories", h.Report.CategorySeries)
				reports.GET("/export", h.Report.Export)
			}

			// Invoices
			protected.POST("/invoices", h.Invoice.Create)
			protected.POST("/invoices/message_link", h.Invoice.MessageLink)

			// Company settings (read side)
			protected.GET("/company", h.Company.Show)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	unpaidSnapshot := func(ctx context.Context) error {
		count, total, err := svcs.Billing.UnpaidSummary(ctx)
		if err != nil {
			return err
		}
		logger.Info("[Job] Unpaid summary", "customers", count, "total_due", total)
		return nil
	}

	// Log the outstanding receivables snapshot once at startup, then daily.
	// ScheduleEvery fires its first run only after the interval.
	worker.Enqueue(unpaidSnapshot)
	worker.ScheduleEvery(24*time.Hour, unpaidSnapshot)

	logger.Info("Scheduled recurring jobs")
}
