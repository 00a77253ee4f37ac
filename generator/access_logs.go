package generator

import (
	"fmt"
	"sort"
	"time"

	"captiveportal/models"
)

var accessEvents = []string{models.EventLogin, models.EventLogout, models.EventRenewal}

// AccessLogs generates between 1 and 2*factor events per contact, newest
// first. A factor below 1 is treated as 1.
func (g *Generator) AccessLogs(contacts []models.Contact, factor int) []models.AccessLog {
	if factor < 1 {
		factor = 1
	}

	now := g.now()
	logs := make([]models.AccessLog, 0, len(contacts)*factor)
	for _, contact := range contacts {
		n := g.rnd.Int(1, factor*2)
		for i := 0; i < n; i++ {
			logs = append(logs, g.AccessLog(contact, g.rnd.TimeBetween(contact.CreatedAt, now)))
		}
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs
}

// AccessLog generates one event of contact at ts
func (g *Generator) AccessLog(contact models.Contact, ts time.Time) models.AccessLog {
	log := models.AccessLog{
		ID:           g.rnd.NewID(),
		ContactID:    contact.ID,
		ContactEmail: contact.Email,
		ContactName:  contact.FullName(),
		LocationID:   contact.LocationID,
		LocationName: contact.LocationName,
		Event:        Element(g.rnd, accessEvents),
		Device:       contact.Device,
		IP:           g.IP(),
		Status:       models.AccessFailed,
		Timestamp:    ts,
	}
	if g.rnd.Chance(0.98) {
		log.Status = models.AccessSuccess
		log.Duration = g.rnd.Int(5, 120)
	}
	return log
}

// IP returns a synthetic IPv4 address avoiding .0 in the first and last octet
func (g *Generator) IP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rnd.Int(1, 255),
		g.rnd.Int(0, 255),
		g.rnd.Int(0, 255),
		g.rnd.Int(1, 254),
	)
}
