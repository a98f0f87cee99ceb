package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sevasetu/seva-backend/database"
	"github.com/sevasetu/seva-backend/internal/checkout"
	"github.com/sevasetu/seva-backend/internal/config"
	"github.com/sevasetu/seva-backend/internal/jobs"
	"github.com/sevasetu/seva-backend/internal/metrics"
	"github.com/sevasetu/seva-backend/internal/middleware"
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/routes"
	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize storage
	var store storage.Store

	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		if err := database.Connect(cfg); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Seva{},
			&models.User{},
			&models.Order{},
			&models.PincodeInfo{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Seed the seva catalog and pincode reference table
	if err := storage.Seed(store, cfg.SeedDir); err != nil {
		log.Fatal("Failed to seed store:", err)
	}

	// OTP registry: process-local map by default, Redis when configured
	var registry otp.Registry
	if cfg.RedisAddr != "" {
		redisRegistry, err := otp.NewRedisRegistry(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("Failed to initialize Redis OTP registry:", err)
		}
		registry = redisRegistry
		log.Println("✅ Using Redis OTP registry")
	} else {
		registry = otp.NewMemoryRegistry()
		log.Println("⚠️  Using in-memory OTP registry (challenges lost on restart)")
	}

	// OTP delivery: log-only unless Twilio credentials are present
	var notifier services.Notifier
	if cfg.TwilioAccountSID != "" {
		twilioNotifier, err := services.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
		if err != nil {
			log.Fatal("Failed to initialize Twilio notifier:", err)
		}
		notifier = twilioNotifier
		log.Println("✅ Twilio SMS delivery configured")
	} else {
		notifier = services.LogNotifier{}
		log.Println("⚠️  Twilio not configured - OTP codes will be logged")
	}

	// Optional order event publishing
	var events *services.OrderEventPublisher
	if cfg.KafkaBroker != "" {
		events = services.NewOrderEventPublisher(cfg.KafkaBroker, cfg.OrdersTopic)
		log.Printf("✅ Publishing order events to %s", cfg.OrdersTopic)
	}

	appMetrics := metrics.New()

	// Initialize all services
	catalogService := services.NewCatalogService(store)
	identityService := services.NewIdentityService(store)
	otpService := services.NewOTPService(registry, notifier, appMetrics)
	orderService := services.NewOrderService(store, events, appMetrics)
	addressService := services.NewAddressService(store)
	checkoutFlow := checkout.NewFlow(identityService, otpService, orderService, addressService)

	cleanupJob := jobs.NewSessionCleanupJob(checkoutFlow, 5*time.Minute, 30*time.Minute)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Seva Booking API v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.CountRequests(appMetrics))

	routes.SetupRoutes(app, routes.Services{
		Catalog:  catalogService,
		Identity: identityService,
		OTP:      otpService,
		Orders:   orderService,
		Address:  addressService,
		Checkout: checkoutFlow,
	})

	// Metrics listener
	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metrics.Handler(),
	}
	go func() {
		log.Printf("📊 Metrics listening on :%s", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = events.Close()
		_ = metricsServer.Close()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 Seva Booking API starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("🔐 OTP registry: %s", registryType(cfg))
	log.Printf("📱 SMS delivery: %s", smsStatus(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func registryType(cfg *config.Config) string {
	if cfg.RedisAddr != "" {
		return "Redis"
	}
	return "In-Memory"
}

func smsStatus(cfg *config.Config) string {
	if cfg.TwilioAccountSID != "" {
		return "Twilio"
	}
	return "Log only"
}
