package models

import "time"

// PortalCollection is one persisted collection in the relational store.
// Payload holds the JSON encoded collection.
type PortalCollection struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PortalCollection) TableName() string {
	return "portal_collections"
}
