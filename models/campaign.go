package models

import (
	"time"
)

// Campaign statuses
const (
	CampaignDraft     = "draft"
	CampaignSent      = "sent"
	CampaignScheduled = "scheduled"
)

// CampaignFilter selects the contacts a campaign is sent to
type CampaignFilter struct {
	AllContacts          bool       `json:"allContacts"`
	MarketingConsentOnly bool       `json:"marketingConsentOnly"`
	LocationIDs          []string   `json:"locationIds"`
	DateFrom             *time.Time `json:"dateFrom,omitempty"`
	DateTo               *time.Time `json:"dateTo,omitempty"`
}

// Campaign represents an e-mail campaign to portal contacts
type Campaign struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`

	// Scheduling
	Status       string     `json:"status"` // draft, sent, scheduled
	SentAt       *time.Time `json:"sentAt,omitempty"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`

	// Statistics, set once by a send
	Recipients int `json:"recipients"`
	Opened     int `json:"opened"`
	Clicked    int `json:"clicked"`

	TargetFilter CampaignFilter `json:"targetFilter"`
}

// OpenRate returns the percentage of recipients that opened the campaign
func (c Campaign) OpenRate() float64 {
	return rate(c.Opened, c.Recipients)
}

// ClickRate returns the percentage of openers that clicked
func (c Campaign) ClickRate() float64 {
	return rate(c.Clicked, c.Opened)
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
