package models

import "time"

// Access log events
const (
	EventLogin   = "login"
	EventLogout  = "logout"
	EventRenewal = "renewal"
)

// Access log statuses
const (
	AccessSuccess = "success"
	AccessFailed  = "failed"
)

// AccessLog is a single connect, disconnect or renewal of a contact's WiFi session
type AccessLog struct {
	ID           string `json:"id"`
	ContactID    string `json:"contactId"`
	ContactEmail string `json:"contactEmail"`
	ContactName  string `json:"contactName"`

	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`

	Event    string     `json:"event"` // login, logout, renewal
	Device   DeviceInfo `json:"device"`
	IP       string     `json:"ip"`
	Duration int        `json:"duration"` // minutes, 0 when failed
	Status   string     `json:"status"`   // success, failed

	Timestamp time.Time `json:"timestamp"`
}
