package controller

import (
	"context"
	"errors"
	"time"

	"captiveportal/models"
	"captiveportal/repository"

	"github.com/gofiber/websocket/v2"
)

const (
	progressStep     = 5
	progressInterval = 100 * time.Millisecond
)

type progressMessage struct {
	Message    string `json:"message"`
	Percent    int    `json:"percent"`
	Status     string `json:"status"` // running, completed, failed
	Recipients int    `json:"recipients,omitempty"`
}

// HandleCampaignProgressWS streams send progress in steps of five percent.
// The "simulate" action only streams; "send" also delivers campaignId once
// the bar is full.
func (cc *CampaignController) HandleCampaignProgressWS(c *websocket.Conn) {
	defer c.Close()

	var input struct {
		CampaignID string `json:"campaignId"`
		Action     string `json:"action"`
	}

	// Read JSON message
	if err := c.ReadJSON(&input); err != nil {
		cc.Logger.WithError(err).Warn("Error reading progress request")
		return
	}

	ctx := context.Background()
	if input.Action == "send" {
		campaign, err := cc.Campaigns.Get(ctx, input.CampaignID)
		if err != nil {
			cc.writeProgress(c, progressMessage{Message: failureMessage(err), Status: "failed"})
			return
		}
		if campaign.Status == models.CampaignSent {
			cc.writeProgress(c, progressMessage{Message: failureMessage(repository.ErrAlreadySent), Status: "failed"})
			return
		}
	} else if input.Action != "simulate" {
		cc.writeProgress(c, progressMessage{Message: "Unknown action", Status: "failed"})
		return
	}

	for percent := 0; percent < 100; percent += progressStep {
		time.Sleep(progressInterval)
		if !cc.writeProgress(c, progressMessage{Message: "Invio in corso...", Percent: percent, Status: "running"}) {
			return
		}
	}

	final := progressMessage{Message: "Invio completato!", Percent: 100, Status: "completed"}
	if input.Action == "send" {
		sent, err := cc.deliver(ctx, input.CampaignID)
		if err != nil {
			cc.writeProgress(c, progressMessage{Message: failureMessage(err), Percent: 100, Status: "failed"})
			return
		}
		final.Recipients = sent.Recipients
	}
	cc.writeProgress(c, final)
}

func (cc *CampaignController) writeProgress(c *websocket.Conn, msg progressMessage) bool {
	if err := c.WriteJSON(msg); err != nil {
		cc.Logger.WithError(err).Warn("Error writing progress")
		return false
	}
	return true
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "Campaign not found"
	case errors.Is(err, repository.ErrAlreadySent):
		return "Campaign already sent"
	default:
		return "Send failed"
	}
}
