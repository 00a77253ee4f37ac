package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"captiveportal/models"
	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CampaignController struct {
	Campaigns *repository.CampaignRepository
	Contacts  *repository.ContactRepository
	Settings  *repository.SettingsRepository
	Logger    *logrus.Entry

	// SendDelay simulates the time a delivery takes
	SendDelay time.Duration
	FromEmail string
}

func NewCampaignController(
	campaigns *repository.CampaignRepository,
	contacts *repository.ContactRepository,
	settings *repository.SettingsRepository,
	sendDelay time.Duration,
	fromEmail string,
	logger *logrus.Entry,
) *CampaignController {
	return &CampaignController{
		Campaigns: campaigns,
		Contacts:  contacts,
		Settings:  settings,
		Logger:    logger,
		SendDelay: sendDelay,
		FromEmail: fromEmail,
	}
}

type CampaignRequest struct {
	Name         string                `json:"name" validate:"required,max=120"`
	Subject      string                `json:"subject" validate:"required,max=200"`
	Body         string                `json:"body" validate:"required"`
	TargetFilter models.CampaignFilter `json:"targetFilter"`
	ScheduledFor *time.Time            `json:"scheduledFor"`
}

type CampaignUpdateRequest struct {
	Name         *string                `json:"name" validate:"omitempty,max=120"`
	Subject      *string                `json:"subject" validate:"omitempty,max=200"`
	Body         *string                `json:"body"`
	TargetFilter *models.CampaignFilter `json:"targetFilter"`
	ScheduledFor *time.Time             `json:"scheduledFor"`
}

// campaignError maps repository errors to responses
func campaignError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
	case errors.Is(err, repository.ErrAlreadySent):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Campaign already sent", nil)
	default:
		utils.LogError("campaign_"+action+"_failed", err, map[string]interface{}{"campaign_id": c.Params("id")})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to "+action+" campaign", err)
	}
}

func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	campaigns, err := cc.Campaigns.All(c.UserContext())
	if err != nil {
		return campaignError(c, err, "fetch")
	}

	status := c.Query("status")
	if status != "" && status != "all" {
		filtered := []models.Campaign{}
		for _, campaign := range campaigns {
			if campaign.Status == status {
				filtered = append(filtered, campaign)
			}
		}
		campaigns = filtered
	}

	page, limit := utils.Pagination(c)
	return c.JSON(utils.SuccessResponse(utils.Paginate(campaigns, page, limit)))
}

// GetCampaignSummary returns totals across sent campaigns
func (cc *CampaignController) GetCampaignSummary(c *fiber.Ctx) error {
	campaigns, err := cc.Campaigns.All(c.UserContext())
	if err != nil {
		return campaignError(c, err, "fetch")
	}
	return c.JSON(utils.SuccessResponse(repository.SummarizeCampaigns(campaigns)))
}

func (cc *CampaignController) GetCampaign(c *fiber.Ctx) error {
	campaign, err := cc.Campaigns.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return campaignError(c, err, "fetch")
	}
	return c.JSON(utils.SuccessResponse(campaign))
}

func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	var req CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	campaign, err := cc.Campaigns.Create(c.UserContext(), repository.CampaignInput{
		Name:         strings.TrimSpace(req.Name),
		Subject:      strings.TrimSpace(req.Subject),
		Body:         req.Body,
		TargetFilter: req.TargetFilter,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		return campaignError(c, err, "create")
	}

	cc.Logger.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"status":      campaign.Status,
	}).Info("Campaign created")
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(campaign))
}

func (cc *CampaignController) UpdateCampaign(c *fiber.Ctx) error {
	var req CampaignUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	campaign, err := cc.Campaigns.Update(c.UserContext(), c.Params("id"), repository.CampaignUpdate{
		Name:         req.Name,
		Subject:      req.Subject,
		Body:         req.Body,
		TargetFilter: req.TargetFilter,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		return campaignError(c, err, "update")
	}
	return c.JSON(utils.SuccessResponse(campaign))
}

func (cc *CampaignController) DeleteCampaign(c *fiber.Ctx) error {
	if err := cc.Campaigns.Delete(c.UserContext(), c.Params("id")); err != nil {
		return campaignError(c, err, "delete")
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{"message": "Campaign deleted"}))
}

// GetRecipientCount counts the contacts a target filter reaches
func (cc *CampaignController) GetRecipientCount(c *fiber.Ctx) error {
	var filter models.CampaignFilter

	marketingOnly, err := queryBool(c, "marketingOnly")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	filter.MarketingConsentOnly = marketingOnly != nil && *marketingOnly

	if locationID := c.Query("locationId"); locationID != "" && locationID != "all" {
		filter.LocationIDs = []string{locationID}
	} else {
		filter.LocationIDs = queryList(c, "locationIds")
	}
	if filter.DateFrom, err = queryDate(c, "dateFrom", false); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if filter.DateTo, err = queryDate(c, "dateTo", true); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	filter.AllContacts = !filter.MarketingConsentOnly && len(filter.LocationIDs) == 0

	contacts, err := cc.Contacts.All(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"recipients": repository.CountRecipients(contacts, filter),
	}))
}

// deliver sends the campaign to its target audience
func (cc *CampaignController) deliver(ctx context.Context, id string) (models.Campaign, error) {
	campaign, err := cc.Campaigns.Get(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if campaign.Status == models.CampaignSent {
		return models.Campaign{}, repository.ErrAlreadySent
	}

	contacts, err := cc.Contacts.All(ctx)
	if err != nil {
		return models.Campaign{}, err
	}
	recipients := repository.CountRecipients(contacts, campaign.TargetFilter)

	sent, err := cc.Campaigns.Send(ctx, id, recipients)
	if err != nil {
		return models.Campaign{}, err
	}

	utils.LogEvent("campaign_sent", map[string]interface{}{
		"campaign_id": sent.ID,
		"recipients":  sent.Recipients,
		"opened":      sent.Opened,
		"clicked":     sent.Clicked,
	})
	return sent, nil
}

// SendCampaign delivers a draft or scheduled campaign now
func (cc *CampaignController) SendCampaign(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if cc.SendDelay > 0 {
		select {
		case <-time.After(cc.SendDelay):
		case <-ctx.Done():
			return utils.ErrorResponse(c, fiber.StatusRequestTimeout, "Send cancelled", ctx.Err())
		}
	}

	campaign, err := cc.deliver(ctx, c.Params("id"))
	if err != nil {
		return campaignError(c, err, "send")
	}
	return c.JSON(utils.SuccessResponse(campaign))
}

type CampaignPreview struct {
	To  string `json:"to"`
	Raw string `json:"raw"`
}

// PreviewCampaign renders the message the first targeted contact would get.
// A placeholder recipient is used when the filter matches nobody.
func (cc *CampaignController) PreviewCampaign(c *fiber.Ctx) error {
	ctx := c.UserContext()

	campaign, err := cc.Campaigns.Get(ctx, c.Params("id"))
	if err != nil {
		return campaignError(c, err, "preview")
	}

	contacts, err := cc.Contacts.All(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contacts", err)
	}
	to := models.Contact{FirstName: "Mario", LastName: "Rossi", Email: "mario.rossi@esempio.it"}
	for _, contact := range contacts {
		if repository.MatchesCampaign(contact, campaign.TargetFilter) {
			to = contact
			break
		}
	}

	settings, err := cc.Settings.Get(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch settings", err)
	}

	msg, err := utils.BuildCampaignMessage(campaign, settings.Profile.CompanyName, cc.FromEmail, to, time.Now())
	if err != nil {
		return campaignError(c, err, "preview")
	}
	raw, err := utils.RenderMessage(msg)
	if err != nil {
		return campaignError(c, err, "preview")
	}

	return c.JSON(utils.SuccessResponse(CampaignPreview{To: to.Email, Raw: raw}))
}
