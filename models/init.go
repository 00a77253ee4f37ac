package models

import "time"

const DefaultTenantSlug = "ristorante-da-mario"

var demoTenants = map[string]Tenant{
	DefaultTenantSlug: {
		ID:             "demo-1",
		Slug:           DefaultTenantSlug,
		Name:           "Ristorante Da Mario",
		Logo:           "/images/logo-mario.png",
		PrimaryColor:   "#1E3A5F",
		SecondaryColor: "#E8F0F7",
		WelcomeText:    "Benvenuto da Mario! Inserisci i tuoi dati per navigare gratis.",
		SuccessText:    "Buona navigazione!",
		PromoText:      "Scopri il menu del giorno! Mostra questa schermata per un caffè omaggio.",
		Locations: []Location{
			{ID: "loc-1", Name: "Sede Centro", Address: "Via Roma 15, Milano", IsActive: true},
			{ID: "loc-2", Name: "Sede Mare", Address: "Lungomare 42, Rimini", IsActive: true},
		},
	},
}

// GetTenant looks a demo tenant up by its portal slug
func GetTenant(slug string) (Tenant, bool) {
	t, ok := demoTenants[slug]
	return t, ok
}

func DefaultTenant() Tenant {
	return demoTenants[DefaultTenantSlug]
}

// DemoUser is the single back-office account
var DemoUser = User{
	ID:       "user-1",
	Email:    "demo@esempio.it",
	Name:     "Mario Rossi",
	TenantID: "demo-1",
}

const defaultPrivacyText = `Informativa sulla Privacy

Ai sensi del Regolamento UE 2016/679 (GDPR), La informiamo che i dati personali da Lei forniti saranno trattati per le seguenti finalità:

1. Erogazione del servizio WiFi gratuito
2. Comunicazioni di servizio relative all'utilizzo del WiFi
3. Previo Suo consenso, invio di comunicazioni promozionali e marketing

I dati saranno conservati per il periodo strettamente necessario alle finalità sopra indicate e comunque non oltre 24 mesi dalla raccolta.

Lei ha diritto di accedere ai Suoi dati, richiederne la rettifica, la cancellazione, la limitazione del trattamento, nonché di opporsi al trattamento e di esercitare il diritto alla portabilità dei dati.

Per esercitare i Suoi diritti può contattarci all'indirizzo email: privacy@esempio.it`

// DefaultSettings returns a fresh copy of the factory settings
func DefaultSettings() Settings {
	return Settings{
		Profile: ProfileSettings{
			CompanyName: "Ristorante Da Mario",
			Email:       "demo@esempio.it",
		},
		Portal: PortalSettings{
			DisplayName:    "Ristorante Da Mario",
			Logo:           "/images/logo-mario.png",
			PrimaryColor:   "#1E3A5F",
			SecondaryColor: "#E8F0F7",
			WelcomeText:    "Benvenuto da Mario! Inserisci i tuoi dati per navigare gratis.",
			SuccessText:    "Buona navigazione!",
			PromoText:      "Scopri il menu del giorno! Mostra questa schermata per un caffè omaggio.",
		},
		Privacy: PrivacySettings{
			PrivacyText:           defaultPrivacyText,
			RequirePhone:          false,
			ShowMarketingCheckbox: true,
			DataRetention:         "365",
		},
		Notifications: NotificationSettings{
			DailySummary:    true,
			NewContactAlert: true,
			AnomalyAlert:    false,
		},
	}
}

// DemoCampaigns returns the campaigns a new tenant starts with
func DemoCampaigns() []Campaign {
	jan := time.Date(2026, time.January, 10, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

	return []Campaign{
		{
			ID:           "camp-1",
			Name:         "Newsletter Gennaio",
			Subject:      "Le novità del mese da Mario!",
			Body:         "Caro cliente, scopri tutte le novità del nostro menu di gennaio...",
			SentAt:       &jan,
			Recipients:   450,
			Opened:       180,
			Clicked:      45,
			Status:       CampaignSent,
			TargetFilter: CampaignFilter{AllContacts: true, MarketingConsentOnly: true, LocationIDs: []string{}},
		},
		{
			ID:           "camp-2",
			Name:         "Promo San Valentino",
			Subject:      "❤️ Menu speciale per San Valentino",
			Body:         "Festeggia San Valentino con noi! Menu degustazione per due a soli 59€...",
			SentAt:       &feb,
			Recipients:   520,
			Opened:       312,
			Clicked:      89,
			Status:       CampaignSent,
			TargetFilter: CampaignFilter{AllContacts: true, MarketingConsentOnly: true, LocationIDs: []string{}},
		},
		{
			ID:           "camp-3",
			Name:         "Bozza Primavera",
			Subject:      "La primavera è arrivata!",
			Body:         "Scopri i nuovi piatti di stagione...",
			Status:       CampaignDraft,
			TargetFilter: CampaignFilter{AllContacts: true, MarketingConsentOnly: false, LocationIDs: []string{}},
		},
	}
}
