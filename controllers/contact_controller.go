package controller

import (
	"errors"
	"time"

	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ContactController struct {
	Contacts   *repository.ContactRepository
	AccessLogs *repository.AccessLogRepository
	Logger     *logrus.Entry
}

func NewContactController(contacts *repository.ContactRepository, accessLogs *repository.AccessLogRepository, logger *logrus.Entry) *ContactController {
	return &ContactController{
		Contacts:   contacts,
		AccessLogs: accessLogs,
		Logger:     logger,
	}
}

type ContactDetail struct {
	models.Contact
	AccessLogs []models.AccessLog `json:"accessLogs"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

func contactFilter(c *fiber.Ctx) (repository.ContactFilter, error) {
	f := repository.ContactFilter{
		Search:     c.Query("search"),
		LocationID: c.Query("locationId"),
	}

	var err error
	if f.MarketingConsent, err = queryBool(c, "marketingConsent"); err != nil {
		return f, err
	}
	if f.DateFrom, err = queryDate(c, "dateFrom", false); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(c, "dateTo", true); err != nil {
		return f, err
	}
	return f, nil
}

// GetContacts lists contacts matching the query filters, newest first
func (cc *ContactController) GetContacts(c *fiber.Ctx) error {
	filter, err := contactFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	contacts, err := cc.Contacts.Filter(c.UserContext(), filter)
	if err != nil {
		utils.LogError("contacts_fetch_failed", err, nil)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}

	page, limit := utils.Pagination(c)
	return c.JSON(utils.SuccessResponse(utils.Paginate(contacts, page, limit)))
}

// GetContact returns one contact with its access history
func (cc *ContactController) GetContact(c *fiber.Ctx) error {
	ctx := c.UserContext()

	contact, err := cc.Contacts.Get(ctx, c.Params("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err)
	}

	contacts, err := cc.Contacts.All(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}
	logs, err := cc.AccessLogs.ByContact(ctx, contacts, contact.ID)
	if err != nil {
		utils.LogError("access_logs_fetch_failed", err, map[string]interface{}{"contact_id": contact.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch access logs", err)
	}

	return c.JSON(utils.SuccessResponse(ContactDetail{Contact: contact, AccessLogs: logs}))
}

func (cc *ContactController) DeleteContact(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := cc.Contacts.Delete(c.UserContext(), id)
	if err != nil {
		utils.LogError("contact_delete_failed", err, map[string]interface{}{"contact_id": id})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contact", err)
	}
	if removed == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": removed}))
}

// BulkDeleteContacts removes the selected contacts. Unknown ids are ignored.
func (cc *ContactController) BulkDeleteContacts(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	removed, err := cc.Contacts.Delete(c.UserContext(), req.IDs...)
	if err != nil {
		utils.LogError("contact_bulk_delete_failed", err, map[string]interface{}{"count": len(req.IDs)})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contacts", err)
	}

	cc.Logger.WithField("deleted", removed).Info("Contacts deleted")
	return c.JSON(utils.SuccessResponse(fiber.Map{"deleted": removed}))
}

// ExportContacts downloads the filtered contacts as CSV
func (cc *ContactController) ExportContacts(c *fiber.Ctx) error {
	filter, err := contactFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	contacts, err := cc.Contacts.Filter(c.UserContext(), filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+utils.ContactsCSVFilename(time.Now()))

	if err := utils.WriteContactsCSV(c, contacts); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate CSV", err)
	}
	return nil
}
