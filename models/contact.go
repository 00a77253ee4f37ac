package models

import (
	"time"
)

// Device types
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceTablet  = "tablet"
)

// DeviceInfo describes the device a visitor connected with. It is copied by
// value into every contact and access log.
type DeviceInfo struct {
	Type      string `json:"type"` // mobile, desktop, tablet
	OS        string `json:"os"`
	Browser   string `json:"browser"`
	UserAgent string `json:"userAgent"`
}

// Contact is a visitor who signed up through the captive portal form
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	// Location the visitor connected from
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`

	// Consents
	MarketingConsent bool `json:"marketingConsent"`
	PrivacyConsent   bool `json:"privacyConsent"`

	Device    DeviceInfo `json:"device"`
	City      string     `json:"city"`
	Region    string     `json:"region"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FullName returns "First Last"
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}
