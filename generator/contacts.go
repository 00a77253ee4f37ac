package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"captiveportal/models"
)

const contactWindowDays = 60

var localPartCleaner = strings.NewReplacer(
	"'", "", " ", "",
	"à", "a", "è", "e", "é", "e", "ì", "i", "ò", "o", "ù", "u",
)

// Contacts generates count contacts created in the last 60 days, newest first
func (g *Generator) Contacts(count int) []models.Contact {
	if count <= 0 {
		return []models.Contact{}
	}

	now := g.now()
	from := daysAgo(now, contactWindowDays)

	contacts := make([]models.Contact, 0, count)
	for i := 0; i < count; i++ {
		firstName := Element(g.rnd, firstNames)
		lastName := Element(g.rnd, lastNames)
		city := g.City()
		location := g.location()

		contact := models.Contact{
			ID:               g.rnd.NewID(),
			FirstName:        firstName,
			LastName:         lastName,
			Email:            g.Email(firstName, lastName),
			LocationID:       location.ID,
			LocationName:     location.Name,
			MarketingConsent: g.rnd.Chance(0.65),
			PrivacyConsent:   true,
			Device:           g.Device(),
			City:             city.Name,
			Region:           city.Region,
			CreatedAt:        g.rnd.TimeBetween(from, now),
		}
		if g.rnd.Chance(0.7) {
			contact.Phone = g.Phone()
		}
		contacts = append(contacts, contact)
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts
}

// Email derives an address from the name using one of four templates
func (g *Generator) Email(firstName, lastName string) string {
	first := localPartCleaner.Replace(strings.ToLower(firstName))
	last := localPartCleaner.Replace(strings.ToLower(lastName))
	provider := Element(g.rnd, emailProviders)

	var local string
	switch g.rnd.Int(0, 3) {
	case 0:
		local = first + "." + last
	case 1:
		local = first + last
	case 2:
		local = first + "." + last + strconv.Itoa(g.rnd.Int(1, 99))
	default:
		local = initial(first) + last
	}
	return local + "@" + provider
}

func initial(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Phone returns an Italian mobile number formatted "PPP NNN NNNN"
func (g *Generator) Phone() string {
	prefix := Element(g.rnd, phonePrefixes)
	number := strconv.Itoa(g.rnd.Int(1000000, 9999999))
	return fmt.Sprintf("%s %s %s", prefix, number[:3], number[3:])
}

// City draws a city from the weighted catalog
func (g *Generator) City() City {
	return WeightedPick(g.rnd, Cities)
}
