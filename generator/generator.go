// Package generator produces the synthetic contacts, access logs and time
// series the portal is seeded with.
package generator

import (
	"time"

	"captiveportal/models"
)

// Generator draws every record from one Random source and one clock
type Generator struct {
	rnd       *Random
	now       func() time.Time
	locations []models.Location
}

type Option func(*Generator)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLocations sets the portal locations contacts are assigned to. The first
// location receives 60% of contacts.
func WithLocations(locations []models.Location) Option {
	return func(g *Generator) {
		if len(locations) > 0 {
			g.locations = locations
		}
	}
}

func New(rnd *Random, opts ...Option) *Generator {
	g := &Generator{
		rnd:       rnd,
		now:       time.Now,
		locations: models.DefaultTenant().Locations,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Random exposes the underlying source
func (g *Generator) Random() *Random {
	return g.rnd
}

func (g *Generator) Now() time.Time {
	return g.now()
}

func (g *Generator) location() models.Location {
	if len(g.locations) == 1 || g.rnd.Chance(0.6) {
		return g.locations[0]
	}
	return g.locations[1]
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
