package repository

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/store"

	"github.com/sirupsen/logrus"
)

// CampaignInput creates a draft campaign
type CampaignInput struct {
	Name         string
	Subject      string
	Body         string
	TargetFilter models.CampaignFilter
	ScheduledFor *time.Time
}

// CampaignUpdate changes the non-nil fields of a campaign
type CampaignUpdate struct {
	Name         *string
	Subject      *string
	Body         *string
	TargetFilter *models.CampaignFilter
	ScheduledFor *time.Time
}

type CampaignRepository struct {
	mu     sync.Mutex
	col    *Collection[[]models.Campaign]
	gen    *generator.Generator
	logger *logrus.Entry
}

func NewCampaignRepository(s store.Store, gen *generator.Generator, logger *logrus.Entry) *CampaignRepository {
	return &CampaignRepository{
		col:    NewCollection[[]models.Campaign](s, store.Campaigns, logger),
		gen:    gen,
		logger: logger,
	}
}

func (r *CampaignRepository) All(ctx context.Context) ([]models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *CampaignRepository) load(ctx context.Context) ([]models.Campaign, error) {
	campaigns, found, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return campaigns, nil
	}

	campaigns = models.DemoCampaigns()
	if err := r.col.Save(ctx, campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (models.Campaign, error) {
	campaigns, err := r.All(ctx)
	if err != nil {
		return models.Campaign{}, err
	}
	i := slices.IndexFunc(campaigns, func(c models.Campaign) bool { return c.ID == id })
	if i < 0 {
		return models.Campaign{}, ErrNotFound
	}
	return campaigns[i], nil
}

// Create stores a new draft, or a scheduled campaign when ScheduledFor is set
func (r *CampaignRepository) Create(ctx context.Context, in CampaignInput) (models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns, err := r.load(ctx)
	if err != nil {
		return models.Campaign{}, err
	}

	campaign := models.Campaign{
		ID:           r.gen.Random().NewID(),
		Name:         in.Name,
		Subject:      in.Subject,
		Body:         in.Body,
		Status:       models.CampaignDraft,
		TargetFilter: in.TargetFilter,
	}
	if campaign.TargetFilter.LocationIDs == nil {
		campaign.TargetFilter.LocationIDs = []string{}
	}
	if in.ScheduledFor != nil {
		campaign.Status = models.CampaignScheduled
		campaign.ScheduledFor = in.ScheduledFor
	}

	if err := r.col.Save(ctx, append([]models.Campaign{campaign}, campaigns...)); err != nil {
		return models.Campaign{}, err
	}
	return campaign, nil
}

// Update edits a campaign that has not been sent yet
func (r *CampaignRepository) Update(ctx context.Context, id string, u CampaignUpdate) (models.Campaign, error) {
	return r.mutate(ctx, id, func(c *models.Campaign) error {
		if c.Status == models.CampaignSent {
			return ErrAlreadySent
		}
		if u.Name != nil {
			c.Name = *u.Name
		}
		if u.Subject != nil {
			c.Subject = *u.Subject
		}
		if u.Body != nil {
			c.Body = *u.Body
		}
		if u.TargetFilter != nil {
			c.TargetFilter = *u.TargetFilter
		}
		if u.ScheduledFor != nil {
			c.ScheduledFor = u.ScheduledFor
			c.Status = models.CampaignScheduled
		}
		return nil
	})
}

// Send marks the campaign sent to recipients with simulated engagement.
// A sent campaign never changes state again.
func (r *CampaignRepository) Send(ctx context.Context, id string, recipients int) (models.Campaign, error) {
	return r.mutate(ctx, id, func(c *models.Campaign) error {
		if c.Status == models.CampaignSent {
			return ErrAlreadySent
		}
		now := r.gen.Now()
		c.Status = models.CampaignSent
		c.SentAt = &now
		c.ScheduledFor = nil
		c.Recipients = recipients
		c.Opened, c.Clicked = r.gen.Engagement(recipients)
		return nil
	})
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(campaigns), func(c models.Campaign) bool { return c.ID == id })
	if len(kept) == len(campaigns) {
		return ErrNotFound
	}
	return r.col.Save(ctx, kept)
}

// Due returns the scheduled campaigns whose time has come
func (r *CampaignRepository) Due(ctx context.Context, now time.Time) ([]models.Campaign, error) {
	campaigns, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	var due []models.Campaign
	for _, c := range campaigns {
		if c.Status == models.CampaignScheduled && c.ScheduledFor != nil && !c.ScheduledFor.After(now) {
			due = append(due, c)
		}
	}
	return due, nil
}

func (r *CampaignRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Clear(ctx)
}

func (r *CampaignRepository) mutate(ctx context.Context, id string, fn func(*models.Campaign) error) (models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns, err := r.load(ctx)
	if err != nil {
		return models.Campaign{}, err
	}

	i := slices.IndexFunc(campaigns, func(c models.Campaign) bool { return c.ID == id })
	if i < 0 {
		return models.Campaign{}, ErrNotFound
	}

	updated := slices.Clone(campaigns)
	if err := fn(&updated[i]); err != nil {
		return models.Campaign{}, err
	}
	if err := r.col.Save(ctx, updated); err != nil {
		return models.Campaign{}, err
	}
	return updated[i], nil
}

// CampaignSummary aggregates the sent campaigns. Rates are whole percentages.
type CampaignSummary struct {
	Campaigns int `json:"campaigns"`
	TotalSent int `json:"totalSent"`
	OpenRate  int `json:"openRate"`
	ClickRate int `json:"clickRate"`
}

func SummarizeCampaigns(campaigns []models.Campaign) CampaignSummary {
	var s CampaignSummary
	var total models.Campaign
	for _, c := range campaigns {
		if c.Status != models.CampaignSent {
			continue
		}
		s.Campaigns++
		total.Recipients += c.Recipients
		total.Opened += c.Opened
		total.Clicked += c.Clicked
	}
	s.TotalSent = total.Recipients
	s.OpenRate = int(math.Round(total.OpenRate()))
	s.ClickRate = int(math.Round(total.ClickRate()))
	return s
}
