package routes

import (
	"context"
	"time"

	controller "captiveportal/controllers"
	"captiveportal/generator"
	"captiveportal/middleware"
	"captiveportal/repository"
	"captiveportal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// Dependencies holds everything the handlers are built from
type Dependencies struct {
	// Context is cancelled when the server shuts down
	Context context.Context

	Store      store.Store
	Generator  *generator.Generator
	Contacts   *repository.ContactRepository
	AccessLogs *repository.AccessLogRepository
	Campaigns  *repository.CampaignRepository
	Settings   *repository.SettingsRepository
	Auth       *repository.AuthRepository

	// LimiterStorage backs the portal rate limiter; nil keeps it in memory
	LimiterStorage  fiber.Storage
	RateLimitPortal int
	SendDelay       time.Duration
	FromEmail       string
}

func accessLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})
}

func component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recover.New(), middleware.RequestContext(deps.Context))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	SetupPortalRoutes(app, deps)
	SetupAuthRoutes(app, deps)
	SetupAPIRoutes(app, deps)

	logrus.Info("Routes initialized successfully")
}

// SetupPortalRoutes registers the public captive portal endpoints
func SetupPortalRoutes(app *fiber.App, deps Dependencies) {
	portalController := controller.NewPortalController(deps.Contacts, deps.AccessLogs, deps.Settings, deps.Generator, component("portal"))

	portal := app.Group("/portal", accessLogger())
	portal.Get("/:slug", portalController.GetPortal)
	portal.Post("/:slug/submit", middleware.PortalRateLimiter(deps.RateLimitPortal, deps.LimiterStorage), portalController.Submit)
}

func SetupAuthRoutes(app *fiber.App, deps Dependencies) {
	authController := controller.NewAuthController(deps.Auth, component("auth"))

	auth := app.Group("/auth", accessLogger())

	// Public auth endpoints (no authentication required)
	auth.Post("/login", authController.Login)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected(deps.Auth))
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Get("/me", authController.GetCurrentUser)
}

func SetupAPIRoutes(app *fiber.App, deps Dependencies) {
	dashboardController := controller.NewDashboardController(deps.Contacts, deps.AccessLogs, deps.Generator, component("dashboard"))
	contactController := controller.NewContactController(deps.Contacts, deps.AccessLogs, component("contacts"))
	accessLogController := controller.NewAccessLogController(deps.Contacts, deps.AccessLogs, component("access_logs"))
	campaignController := controller.NewCampaignController(deps.Campaigns, deps.Contacts, deps.Settings, deps.SendDelay, deps.FromEmail, component("campaigns"))
	settingsController := controller.NewSettingsController(deps.Settings, component("settings"))
	adminController := controller.NewAdminController(deps.Store, component("admin"))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(deps.Auth), accessLogger())

	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)
	dashboard.Get("/daily", dashboardController.GetDailyData)
	dashboard.Get("/heatmap", dashboardController.GetHeatmap)

	// Static paths go before /:id
	contacts := api.Group("/contacts")
	contacts.Get("/", contactController.GetContacts)
	contacts.Get("/export", contactController.ExportContacts)
	contacts.Post("/delete", contactController.BulkDeleteContacts)
	contacts.Get("/:id", contactController.GetContact)
	contacts.Delete("/:id", contactController.DeleteContact)

	api.Get("/access-logs", accessLogController.GetAccessLogs)

	campaign := api.Group("/campaigns")
	campaign.Get("/progress", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}, websocket.New(campaignController.HandleCampaignProgressWS))
	campaign.Get("/summary", campaignController.GetCampaignSummary)
	campaign.Get("/recipients", campaignController.GetRecipientCount)
	campaign.Post("/", campaignController.CreateCampaign)
	campaign.Get("/", campaignController.GetCampaigns)
	campaign.Get("/:id", campaignController.GetCampaign)
	campaign.Put("/:id", campaignController.UpdateCampaign)
	campaign.Delete("/:id", campaignController.DeleteCampaign)
	campaign.Post("/:id/send", campaignController.SendCampaign)
	campaign.Get("/:id/preview", campaignController.PreviewCampaign)

	settings := api.Group("/settings")
	settings.Get("/", settingsController.GetSettings)
	settings.Put("/profile", settingsController.UpdateProfile)
	settings.Put("/portal", settingsController.UpdatePortal)
	settings.Put("/privacy", settingsController.UpdatePrivacy)
	settings.Put("/notifications", settingsController.UpdateNotifications)
	settings.Post("/reset", settingsController.ResetSettings)

	admin := api.Group("/admin")
	admin.Post("/reset-data", adminController.ResetData)
}
