package main

import (
	"log"

	"cosmolearn/backend/config"
	"cosmolearn/backend/middleware"
	"cosmolearn/backend/notify"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/routes"
	"cosmolearn/backend/scheduler"
	"cosmolearn/backend/store"
	"cosmolearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Notification sink: log by default, email when SES is configured.
	var notifier progression.Notifier = notify.NewLogNotifier(logger)
	if cfg.SESFromEmail != "" {
		if emailNotifier, err := notify.NewEmailNotifier(cfg, cfg.SESFromEmail); err == nil && emailNotifier.IsEnabled() {
			notifier = emailNotifier
		}
	}

	// Progression core wiring
	progressStore := store.NewProgressStore(db, notifier)
	catalog := store.NewCourseCatalog(db)
	badges := progression.NewBadgeEngine(progression.DefaultCatalog(), notifier)
	manager := progression.NewManager(progressStore, badges, catalog, cfg.AutoAdvanceDelay)

	// Daily housekeeping
	if cfg.SchedulerEnabled {
		s := scheduler.New(db)
		s.Start()
		defer s.Stop()
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Progress: progressStore,
		Catalog:  catalog,
		Badges:   badges,
		Manager:  manager,
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
