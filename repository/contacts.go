package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"captiveportal/generator"
	"captiveportal/models"
	"captiveportal/store"

	"github.com/sirupsen/logrus"
)

// ContactFilter narrows a contact list. Zero values match everything and
// LocationID "all" is a wildcard.
type ContactFilter struct {
	Search           string
	LocationID       string
	MarketingConsent *bool
	DateFrom         *time.Time
	DateTo           *time.Time
}

// NewContact carries the fields a portal submission provides
type NewContact struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	LocationID       string
	LocationName     string
	MarketingConsent bool
	City             string
	Region           string
	Device           models.DeviceInfo
}

type ContactRepository struct {
	mu        sync.Mutex
	col       *Collection[[]models.Contact]
	gen       *generator.Generator
	seedCount int
	logger    *logrus.Entry
}

func NewContactRepository(s store.Store, gen *generator.Generator, seedCount int, logger *logrus.Entry) *ContactRepository {
	return &ContactRepository{
		col:       NewCollection[[]models.Contact](s, store.Contacts, logger),
		gen:       gen,
		seedCount: seedCount,
		logger:    logger,
	}
}

// All returns every contact, newest first, generating the demo set when
// nothing has been stored yet
func (r *ContactRepository) All(ctx context.Context) ([]models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *ContactRepository) load(ctx context.Context) ([]models.Contact, error) {
	contacts, found, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return contacts, nil
	}

	contacts = r.gen.Contacts(r.seedCount)
	if err := r.col.Save(ctx, contacts); err != nil {
		return nil, err
	}
	r.logger.WithField("count", len(contacts)).Info("Seeded contacts")
	return contacts, nil
}

func (r *ContactRepository) Get(ctx context.Context, id string) (models.Contact, error) {
	contacts, err := r.All(ctx)
	if err != nil {
		return models.Contact{}, err
	}
	for _, c := range contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, ErrNotFound
}

// Add stores a new contact at the head of the list. Privacy consent is
// always recorded as given.
func (r *ContactRepository) Add(ctx context.Context, in NewContact) (models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contacts, err := r.load(ctx)
	if err != nil {
		return models.Contact{}, err
	}

	contact := models.Contact{
		ID:               r.gen.Random().NewID(),
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		LocationID:       in.LocationID,
		LocationName:     in.LocationName,
		MarketingConsent: in.MarketingConsent,
		PrivacyConsent:   true,
		Device:           in.Device,
		City:             in.City,
		Region:           in.Region,
		CreatedAt:        r.gen.Now(),
	}

	updated := append([]models.Contact{contact}, contacts...)
	if err := r.col.Save(ctx, updated); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}

// Delete removes the contacts with the given ids and reports how many went
func (r *ContactRepository) Delete(ctx context.Context, ids ...string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contacts, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := slices.DeleteFunc(slices.Clone(contacts), func(c models.Contact) bool {
		return slices.Contains(ids, c.ID)
	})
	removed := len(contacts) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.col.Save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *ContactRepository) Filter(ctx context.Context, f ContactFilter) ([]models.Contact, error) {
	contacts, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return FilterContacts(contacts, f), nil
}

// Clear drops the stored contacts. The next read seeds a fresh demo set.
func (r *ContactRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Clear(ctx)
}

func FilterContacts(contacts []models.Contact, f ContactFilter) []models.Contact {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.FirstName), search) &&
			!strings.Contains(strings.ToLower(c.LastName), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if f.LocationID != "" && f.LocationID != "all" && c.LocationID != f.LocationID {
			continue
		}
		if f.MarketingConsent != nil && c.MarketingConsent != *f.MarketingConsent {
			continue
		}
		if f.DateFrom != nil && c.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && c.CreatedAt.After(*f.DateTo) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountRecipients counts the contacts a campaign filter targets
func CountRecipients(contacts []models.Contact, f models.CampaignFilter) int {
	n := 0
	for _, c := range contacts {
		if MatchesCampaign(c, f) {
			n++
		}
	}
	return n
}

// MatchesCampaign reports whether c is targeted by f
func MatchesCampaign(c models.Contact, f models.CampaignFilter) bool {
	if f.MarketingConsentOnly && !c.MarketingConsent {
		return false
	}
	if len(f.LocationIDs) > 0 && !slices.Contains(f.LocationIDs, c.LocationID) {
		return false
	}
	if f.DateFrom != nil && c.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && c.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}
