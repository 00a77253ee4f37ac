// Package store persists whole collections as opaque payloads keyed by name.
package store

import (
	"context"
	"errors"
)

// Collection is a logical collection name
type Collection string

const (
	Contacts   Collection = "contacts"
	AccessLogs Collection = "accessLogs"
	Campaigns  Collection = "campaigns"
	Settings   Collection = "settings"
	Auth       Collection = "auth"
)

// All lists every collection ClearAll removes
var All = []Collection{Contacts, AccessLogs, Campaigns, Settings, Auth}

var keys = map[Collection]string{
	Contacts:   "captive_portal_contacts",
	AccessLogs: "captive_portal_access_logs",
	Campaigns:  "captive_portal_campaigns",
	Settings:   "captive_portal_settings",
	Auth:       "captive_portal_auth",
}

// Key returns the storage key of c
func (c Collection) Key() string {
	if k, ok := keys[c]; ok {
		return k
	}
	return "captive_portal_" + string(c)
}

var ErrNotFound = errors.New("collection not found")

// Store is implemented by every backend. Get returns ErrNotFound when the
// collection was never written or has been cleared.
type Store interface {
	Get(ctx context.Context, c Collection) ([]byte, error)
	Set(ctx context.Context, c Collection, payload []byte) error
	Clear(ctx context.Context, c Collection) error
	ClearAll(ctx context.Context) error
}

func allKeys() []string {
	out := make([]string, 0, len(All))
	for _, c := range All {
		out = append(out, c.Key())
	}
	return out
}
