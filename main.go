package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"captiveportal/config"
	"captiveportal/generator"
	"captiveportal/middleware"
	"captiveportal/repository"
	"captiveportal/routes"
	"captiveportal/store"
	"captiveportal/utils"
	"captiveportal/worker"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.AppConfig
	utils.SetupLogger(cfg.Environment, cfg.LogLevel)

	if err := utils.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		logrus.Warnf("Sentry disabled: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Redis.Enabled {
		if err := config.ConnectRedis(ctx); err != nil {
			logrus.Fatalf("Failed to connect to redis: %v", err)
		}
		defer config.Redis.Close()
	}

	var s store.Store
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := config.ConnectDB(); err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		s = store.NewGorm(config.DB)
	case config.StoreRedis:
		s = store.NewRedis(config.Redis)
	default:
		s = store.NewMemory()
	}

	rnd := generator.NewRandomFromTime()
	if cfg.RandomSeed != 0 {
		rnd = generator.NewRandom(uint64(cfg.RandomSeed))
	}
	gen := generator.New(rnd)

	auth, err := repository.NewAuthRepository(s, cfg.DemoEmail, cfg.DemoPassword, logrus.WithField("component", "auth"))
	if err != nil {
		logrus.Fatalf("Failed to initialize auth: %v", err)
	}

	deps := routes.Dependencies{
		Context:         ctx,
		Store:           s,
		Generator:       gen,
		Contacts:        repository.NewContactRepository(s, gen, cfg.SeedContacts, logrus.WithField("component", "contacts")),
		AccessLogs:      repository.NewAccessLogRepository(s, gen, cfg.LogsPerContact, logrus.WithField("component", "access_logs")),
		Campaigns:       repository.NewCampaignRepository(s, gen, logrus.WithField("component", "campaigns")),
		Settings:        repository.NewSettingsRepository(s, logrus.WithField("component", "settings")),
		Auth:            auth,
		RateLimitPortal: cfg.RateLimitPortal,
		SendDelay:       cfg.SendDelay,
		FromEmail:       cfg.FromEmail,
	}
	if cfg.Redis.Enabled {
		deps.LimiterStorage = middleware.NewRedisStorage(config.Redis)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Captive Portal",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Add CORS middleware
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins
	app.Use(middleware.CORS(corsConfig))

	// Start the scheduled campaign worker
	campaignWorker := worker.NewCampaignWorker(deps.Campaigns, deps.Contacts, cfg.WorkerInterval, logrus.WithField("component", "campaign_worker"))
	go campaignWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, deps)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logrus.Info("Shutting down server...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.Errorf("Server shutdown failed: %v", err)
		}
	}()

	// Start server
	logrus.Infof("🚀 Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
