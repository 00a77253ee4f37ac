package controller

import (
	"strconv"

	"captiveportal/generator"
	"captiveportal/repository"
	"captiveportal/stats"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultDailyDays = 30
	maxDailyDays     = 365
)

type DashboardController struct {
	Contacts   *repository.ContactRepository
	AccessLogs *repository.AccessLogRepository
	Generator  *generator.Generator
	Logger     *logrus.Entry
}

func NewDashboardController(
	contacts *repository.ContactRepository,
	accessLogs *repository.AccessLogRepository,
	gen *generator.Generator,
	logger *logrus.Entry,
) *DashboardController {
	return &DashboardController{
		Contacts:   contacts,
		AccessLogs: accessLogs,
		Generator:  gen,
		Logger:     logger,
	}
}

// GetDashboardStats returns the dashboard rollup. The daily series and the
// heatmap are synthetic and drawn fresh on every request.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	contacts, err := dc.Contacts.All(ctx)
	if err != nil {
		utils.LogError("stats_contacts_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}
	if len(contacts) == 0 {
		return c.JSON(utils.SuccessResponse(stats.Empty()))
	}

	logs, err := dc.AccessLogs.All(ctx, contacts)
	if err != nil {
		utils.LogError("stats_access_logs_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch access logs", err)
	}

	result := stats.Calculate(contacts, logs, dc.Generator.Now())
	result.DailyData = dc.Generator.DailyData(defaultDailyDays)
	result.HourlyHeatmap = dc.Generator.HourlyHeatmap()

	return c.JSON(utils.SuccessResponse(result))
}

func (dc *DashboardController) GetDailyData(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(defaultDailyDays)))
	if err != nil || days < 1 || days > maxDailyDays {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "days must be between 1 and "+strconv.Itoa(maxDailyDays), nil)
	}
	return c.JSON(utils.SuccessResponse(dc.Generator.DailyData(days)))
}

func (dc *DashboardController) GetHeatmap(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(dc.Generator.HourlyHeatmap()))
}
