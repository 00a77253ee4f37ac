package controller

import (
	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SettingsController struct {
	Settings *repository.SettingsRepository
	Logger   *logrus.Entry
}

func NewSettingsController(settings *repository.SettingsRepository, logger *logrus.Entry) *SettingsController {
	return &SettingsController{
		Settings: settings,
		Logger:   logger,
	}
}

func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	settings, err := sc.Settings.Get(c.UserContext())
	if err != nil {
		utils.LogError("settings_fetch_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch settings", err)
	}
	return c.JSON(utils.SuccessResponse(settings))
}

// updateSection parses and validates a partial update, then applies it
func updateSection[T any](sc *SettingsController, c *fiber.Ctx, section string, apply func(T) (models.Settings, error)) error {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	settings, err := apply(input)
	if err != nil {
		utils.LogError("settings_update_failed", err, map[string]interface{}{"section": section})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update settings", err)
	}

	sc.Logger.WithField("section", section).Info("Settings updated")
	return c.JSON(utils.SuccessResponse(settings))
}

func (sc *SettingsController) UpdateProfile(c *fiber.Ctx) error {
	return updateSection(sc, c, "profile", func(u repository.ProfileUpdate) (models.Settings, error) {
		return sc.Settings.UpdateProfile(c.UserContext(), u)
	})
}

func (sc *SettingsController) UpdatePortal(c *fiber.Ctx) error {
	return updateSection(sc, c, "portal", func(u repository.PortalUpdate) (models.Settings, error) {
		return sc.Settings.UpdatePortal(c.UserContext(), u)
	})
}

func (sc *SettingsController) UpdatePrivacy(c *fiber.Ctx) error {
	return updateSection(sc, c, "privacy", func(u repository.PrivacyUpdate) (models.Settings, error) {
		return sc.Settings.UpdatePrivacy(c.UserContext(), u)
	})
}

func (sc *SettingsController) UpdateNotifications(c *fiber.Ctx) error {
	return updateSection(sc, c, "notifications", func(u repository.NotificationsUpdate) (models.Settings, error) {
		return sc.Settings.UpdateNotifications(c.UserContext(), u)
	})
}

// ResetSettings restores the factory settings
func (sc *SettingsController) ResetSettings(c *fiber.Ctx) error {
	settings, err := sc.Settings.Reset(c.UserContext())
	if err != nil {
		utils.LogError("settings_reset_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reset settings", err)
	}
	return c.JSON(utils.SuccessResponse(settings))
}
