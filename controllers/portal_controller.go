package controller

import (
	"strings"

	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/stats"
	"captiveportal/utils"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PortalController struct {
	Contacts   *repository.ContactRepository
	AccessLogs *repository.AccessLogRepository
	Settings   *repository.SettingsRepository
	Generator  *generator.Generator
	Logger     *logrus.Entry
}

func NewPortalController(
	contacts *repository.ContactRepository,
	accessLogs *repository.AccessLogRepository,
	settings *repository.SettingsRepository,
	gen *generator.Generator,
	logger *logrus.Entry,
) *PortalController {
	return &PortalController{
		Contacts:   contacts,
		AccessLogs: accessLogs,
		Settings:   settings,
		Generator:  gen,
		Logger:     logger,
	}
}

type PortalPrivacy struct {
	PrivacyText           string `json:"privacyText"`
	RequirePhone          bool   `json:"requirePhone"`
	ShowMarketingCheckbox bool   `json:"showMarketingCheckbox"`
}

type PortalResponse struct {
	Tenant  models.Tenant `json:"tenant"`
	Privacy PortalPrivacy `json:"privacy"`
	Regions []string      `json:"regions"`
}

type PortalSubmission struct {
	FirstName        string `json:"firstName" validate:"required,max=100"`
	LastName         string `json:"lastName" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"omitempty,max=30"`
	LocationID       string `json:"locationId"`
	PrivacyConsent   bool   `json:"privacyConsent"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// tenant resolves a slug, falling back to the default tenant, and applies the
// admin's portal settings to the tenant they belong to
func (pc *PortalController) tenant(c *fiber.Ctx) (models.Tenant, models.Settings, error) {
	tenant, ok := models.GetTenant(c.Params("slug"))
	if !ok {
		tenant = models.DefaultTenant()
	}

	settings, err := pc.Settings.Get(c.UserContext())
	if err != nil {
		return models.Tenant{}, models.Settings{}, err
	}

	if tenant.ID == models.DemoUser.TenantID {
		p := settings.Portal
		tenant.Name = p.DisplayName
		tenant.Logo = p.Logo
		tenant.PrimaryColor = p.PrimaryColor
		tenant.SecondaryColor = p.SecondaryColor
		tenant.WelcomeText = p.WelcomeText
		tenant.SuccessText = p.SuccessText
		tenant.PromoText = p.PromoText
	}
	return tenant, settings, nil
}

// GetPortal returns the branding and privacy terms shown on the splash page
func (pc *PortalController) GetPortal(c *fiber.Ctx) error {
	tenant, settings, err := pc.tenant(c)
	if err != nil {
		utils.LogError("portal_load_failed", err, map[string]interface{}{"slug": c.Params("slug")})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load portal", err)
	}

	return c.JSON(utils.SuccessResponse(PortalResponse{
		Tenant: tenant,
		Privacy: PortalPrivacy{
			PrivacyText:           settings.Privacy.PrivacyText,
			RequirePhone:          settings.Privacy.RequirePhone,
			ShowMarketingCheckbox: settings.Privacy.ShowMarketingCheckbox,
		},
		Regions: generator.Regions,
	}))
}

// Submit registers a visitor and opens their WiFi session
func (pc *PortalController) Submit(c *fiber.Ctx) error {
	var input PortalSubmission
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := checkmail.ValidateFormat(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email non valida", err)
	}

	tenant, settings, err := pc.tenant(c)
	if err != nil {
		utils.LogError("portal_load_failed", err, map[string]interface{}{"slug": c.Params("slug")})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load portal", err)
	}

	if settings.Privacy.RequirePhone && input.Phone == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Il telefono è obbligatorio", nil)
	}
	if !input.PrivacyConsent {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Devi accettare l'informativa sulla privacy", nil)
	}
	if !settings.Privacy.ShowMarketingCheckbox {
		input.MarketingConsent = false
	}

	var location models.Location
	if input.LocationID != "" {
		var ok bool
		if location, ok = tenant.Location(input.LocationID); !ok {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown location", nil)
		}
	} else {
		location = generator.Element(pc.Generator.Random(), tenant.Locations)
	}

	// Seed the history before adding the visitor so the demo data does not
	// invent earlier sessions for them
	contacts, err := pc.Contacts.All(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load contacts", err)
	}
	if _, err := pc.AccessLogs.All(c.UserContext(), contacts); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load access logs", err)
	}

	device := utils.DeviceFromUserAgent(c.Get(fiber.HeaderUserAgent))
	city := pc.Generator.City()

	contact, err := pc.Contacts.Add(c.UserContext(), repository.NewContact{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		LocationID:       location.ID,
		LocationName:     location.Name,
		MarketingConsent: input.MarketingConsent,
		City:             city.Name,
		Region:           city.Region,
		Device:           device,
	})
	if err != nil {
		utils.LogError("portal_contact_failed", err, map[string]interface{}{"tenant": tenant.Slug})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save contact", err)
	}

	// The session length is unknown until logout; the default is recorded.
	log := models.AccessLog{
		ID:           pc.Generator.Random().NewID(),
		ContactID:    contact.ID,
		ContactEmail: contact.Email,
		ContactName:  contact.FullName(),
		LocationID:   contact.LocationID,
		LocationName: contact.LocationName,
		Event:        models.EventLogin,
		Device:       device,
		IP:           c.IP(),
		Duration:     stats.DefaultSessionMinutes,
		Status:       models.AccessSuccess,
		Timestamp:    contact.CreatedAt,
	}
	if err := pc.AccessLogs.Append(c.UserContext(), contacts, log); err != nil {
		utils.LogError("portal_access_log_failed", err, map[string]interface{}{"contact_id": contact.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record access", err)
	}

	pc.Logger.WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"location":   location.ID,
		"device":     device.Type,
	}).Info("Portal registration")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"contact":     contact,
		"successText": tenant.SuccessText,
		"promoText":   tenant.PromoText,
	}))
}
