package controller

import (
	"captiveportal/store"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminController struct {
	Store  store.Store
	Logger *logrus.Entry
}

func NewAdminController(s store.Store, logger *logrus.Entry) *AdminController {
	return &AdminController{
		Store:  s,
		Logger: logger,
	}
}

// ResetData drops every collection, including the session. Demo data is
// generated again on the next read.
func (ac *AdminController) ResetData(c *fiber.Ctx) error {
	if err := ac.Store.ClearAll(c.UserContext()); err != nil {
		utils.LogError("reset_data_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reset data", err)
	}

	ac.Logger.Warn("All portal data cleared")
	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Dati ripristinati"}))
}
