package models

type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"active"`
}

// Tenant is a business that owns one or more portal locations
type Tenant struct {
	ID             string     `json:"id"`
	Slug           string     `json:"slug"`
	Name           string     `json:"name"`
	Logo           string     `json:"logo"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	WelcomeText    string     `json:"welcomeText"`
	SuccessText    string     `json:"successText"`
	PromoText      string     `json:"promoText,omitempty"`
	Locations      []Location `json:"locations"`
}

// Location returns the tenant location with the given id
func (t Tenant) Location(id string) (Location, bool) {
	for _, l := range t.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}
