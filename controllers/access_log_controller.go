package controller

import (
	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AccessLogController struct {
	Contacts   *repository.ContactRepository
	AccessLogs *repository.AccessLogRepository
	Logger     *logrus.Entry
}

func NewAccessLogController(contacts *repository.ContactRepository, accessLogs *repository.AccessLogRepository, logger *logrus.Entry) *AccessLogController {
	return &AccessLogController{
		Contacts:   contacts,
		AccessLogs: accessLogs,
		Logger:     logger,
	}
}

// GetAccessLogs lists WiFi sessions, newest first
func (ac *AccessLogController) GetAccessLogs(c *fiber.Ctx) error {
	filter := repository.AccessLogFilter{
		LocationID: c.Query("locationId"),
		Event:      c.Query("event"),
		Status:     c.Query("status"),
	}

	var err error
	if filter.DateFrom, err = queryDate(c, "dateFrom", false); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if filter.DateTo, err = queryDate(c, "dateTo", true); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	ctx := c.UserContext()
	contacts, err := ac.Contacts.All(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}

	logs, err := ac.AccessLogs.Filter(ctx, contacts, filter)
	if err != nil {
		utils.LogError("access_logs_fetch_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch access logs", err)
	}

	page, limit := utils.Pagination(c)
	return c.JSON(utils.SuccessResponse(utils.Paginate(logs, page, limit)))
}
