package repository

import (
	"context"
	"sync"

	"captiveportal/models"
	"captiveportal/store"

	"github.com/sirupsen/logrus"
)

// Partial section updates. Nil fields are left unchanged.
type (
	ProfileUpdate struct {
		CompanyName *string `json:"companyName" validate:"omitempty,max=120"`
		Email       *string `json:"email" validate:"omitempty,email"`
	}

	PortalUpdate struct {
		DisplayName    *string `json:"displayName" validate:"omitempty,max=120"`
		Logo           *string `json:"logo"`
		PrimaryColor   *string `json:"primaryColor" validate:"omitempty,hexcolor"`
		SecondaryColor *string `json:"secondaryColor" validate:"omitempty,hexcolor"`
		WelcomeText    *string `json:"welcomeText" validate:"omitempty,max=500"`
		SuccessText    *string `json:"successText" validate:"omitempty,max=500"`
		PromoText      *string `json:"promoText" validate:"omitempty,max=500"`
	}

	PrivacyUpdate struct {
		PrivacyText           *string `json:"privacyText"`
		RequirePhone          *bool   `json:"requirePhone"`
		ShowMarketingCheckbox *bool   `json:"showMarketingCheckbox"`
		DataRetention         *string `json:"dataRetention" validate:"omitempty,retention"`
	}

	NotificationsUpdate struct {
		DailySummary    *bool `json:"dailySummary"`
		NewContactAlert *bool `json:"newContactAlert"`
		AnomalyAlert    *bool `json:"anomalyAlert"`
	}
)

type SettingsRepository struct {
	mu  sync.Mutex
	col *Collection[models.Settings]
}

func NewSettingsRepository(s store.Store, logger *logrus.Entry) *SettingsRepository {
	return &SettingsRepository{col: NewCollection[models.Settings](s, store.Settings, logger)}
}

// Get returns the stored settings, writing the defaults on first use
func (r *SettingsRepository) Get(ctx context.Context) (models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *SettingsRepository) load(ctx context.Context) (models.Settings, error) {
	settings, found, err := r.col.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if found {
		return settings, nil
	}
	settings = models.DefaultSettings()
	if err := r.col.Save(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (r *SettingsRepository) UpdateProfile(ctx context.Context, u ProfileUpdate) (models.Settings, error) {
	return r.update(ctx, func(s *models.Settings) {
		set(&s.Profile.CompanyName, u.CompanyName)
		set(&s.Profile.Email, u.Email)
	})
}

func (r *SettingsRepository) UpdatePortal(ctx context.Context, u PortalUpdate) (models.Settings, error) {
	return r.update(ctx, func(s *models.Settings) {
		set(&s.Portal.DisplayName, u.DisplayName)
		set(&s.Portal.Logo, u.Logo)
		set(&s.Portal.PrimaryColor, u.PrimaryColor)
		set(&s.Portal.SecondaryColor, u.SecondaryColor)
		set(&s.Portal.WelcomeText, u.WelcomeText)
		set(&s.Portal.SuccessText, u.SuccessText)
		set(&s.Portal.PromoText, u.PromoText)
	})
}

func (r *SettingsRepository) UpdatePrivacy(ctx context.Context, u PrivacyUpdate) (models.Settings, error) {
	return r.update(ctx, func(s *models.Settings) {
		set(&s.Privacy.PrivacyText, u.PrivacyText)
		set(&s.Privacy.RequirePhone, u.RequirePhone)
		set(&s.Privacy.ShowMarketingCheckbox, u.ShowMarketingCheckbox)
		set(&s.Privacy.DataRetention, u.DataRetention)
	})
}

func (r *SettingsRepository) UpdateNotifications(ctx context.Context, u NotificationsUpdate) (models.Settings, error) {
	return r.update(ctx, func(s *models.Settings) {
		set(&s.Notifications.DailySummary, u.DailySummary)
		set(&s.Notifications.NewContactAlert, u.NewContactAlert)
		set(&s.Notifications.AnomalyAlert, u.AnomalyAlert)
	})
}

// Reset restores the factory settings
func (r *SettingsRepository) Reset(ctx context.Context) (models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := models.DefaultSettings()
	if err := r.col.Save(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (r *SettingsRepository) update(ctx context.Context, fn func(*models.Settings)) (models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	fn(&settings)
	if err := r.col.Save(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
