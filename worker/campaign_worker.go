package worker

import (
	"context"
	"errors"
	"time"

	"captiveportal/repository"
	"captiveportal/utils"

	"github.com/sirupsen/logrus"
)

// CampaignWorker sends scheduled campaigns once their time has come
type CampaignWorker struct {
	Campaigns *repository.CampaignRepository
	Contacts  *repository.ContactRepository
	Interval  time.Duration
	Now       func() time.Time
	Logger    *logrus.Entry
}

func NewCampaignWorker(campaigns *repository.CampaignRepository, contacts *repository.ContactRepository, interval time.Duration, logger *logrus.Entry) *CampaignWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CampaignWorker{
		Campaigns: campaigns,
		Contacts:  contacts,
		Interval:  interval,
		Now:       time.Now,
		Logger:    logger,
	}
}

func (cw *CampaignWorker) Start(ctx context.Context) {
	cw.Logger.WithField("interval", cw.Interval.String()).Info("Campaign worker started")

	ticker := time.NewTicker(cw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.Logger.Info("Campaign worker shutting down...")
			return
		case <-ticker.C:
			if _, err := cw.ProcessDue(ctx); err != nil {
				utils.LogError("campaign_worker_failed", err, nil)
			}
		}
	}
}

// ProcessDue sends every due campaign and reports how many went out
func (cw *CampaignWorker) ProcessDue(ctx context.Context) (int, error) {
	due, err := cw.Campaigns.Due(ctx, cw.Now())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	contacts, err := cw.Contacts.All(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, campaign := range due {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		recipients := repository.CountRecipients(contacts, campaign.TargetFilter)
		result, err := cw.Campaigns.Send(ctx, campaign.ID, recipients)
		if errors.Is(err, repository.ErrAlreadySent) || errors.Is(err, repository.ErrNotFound) {
			// Sent or deleted through the API since Due ran
			continue
		}
		if err != nil {
			cw.Logger.WithError(err).WithField("campaign_id", campaign.ID).Error("Error sending scheduled campaign")
			continue
		}

		sent++
		utils.LogEvent("scheduled_campaign_sent", map[string]interface{}{
			"campaign_id": result.ID,
			"recipients":  result.Recipients,
		})
	}
	return sent, nil
}
