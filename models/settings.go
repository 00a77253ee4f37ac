package models

// Data retention choices in days
var DataRetentionOptions = []string{"30", "90", "365", "730"}

type ProfileSettings struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
}

type PortalSettings struct {
	DisplayName    string `json:"displayName"`
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	WelcomeText    string `json:"welcomeText"`
	SuccessText    string `json:"successText"`
	PromoText      string `json:"promoText"`
}

type PrivacySettings struct {
	PrivacyText           string `json:"privacyText"`
	RequirePhone          bool   `json:"requirePhone"`
	ShowMarketingCheckbox bool   `json:"showMarketingCheckbox"`
	DataRetention         string `json:"dataRetention"`
}

type NotificationSettings struct {
	DailySummary    bool `json:"dailySummary"`
	NewContactAlert bool `json:"newContactAlert"`
	AnomalyAlert    bool `json:"anomalyAlert"`
}

// Settings is the tenant's editable configuration
type Settings struct {
	Profile       ProfileSettings      `json:"profile"`
	Portal        PortalSettings       `json:"portal"`
	Privacy       PrivacySettings      `json:"privacy"`
	Notifications NotificationSettings `json:"notifications"`
}
