package generator

import (
	"fmt"

	"captiveportal/models"
)

// City is an Italian city tagged with its region
type City struct {
	Name   string `json:"city"`
	Region string `json:"region"`
}

var DeviceTypes = mustCatalog("device type", []Weighted[string]{
	{models.DeviceMobile, 70},
	{models.DeviceDesktop, 25},
	{models.DeviceTablet, 5},
})

var OperatingSystems = mustCatalog("operating system", []Weighted[string]{
	{"iOS", 38},
	{"Android", 34},
	{"Windows", 18},
	{"macOS", 8},
	{"Linux", 2},
})

var Browsers = mustCatalog("browser", []Weighted[string]{
	{"Chrome", 45},
	{"Safari", 35},
	{"Firefox", 10},
	{"Edge", 8},
	{"Opera", 2},
})

var Cities = mustCatalog("city", []Weighted[City]{
	{City{"Milano", "Lombardia"}, 15},
	{City{"Roma", "Lazio"}, 14},
	{City{"Napoli", "Campania"}, 10},
	{City{"Torino", "Piemonte"}, 8},
	{City{"Palermo", "Sicilia"}, 6},
	{City{"Genova", "Liguria"}, 5},
	{City{"Bologna", "Emilia-Romagna"}, 7},
	{City{"Firenze", "Toscana"}, 6},
	{City{"Bari", "Puglia"}, 5},
	{City{"Catania", "Sicilia"}, 4},
	{City{"Venezia", "Veneto"}, 5},
	{City{"Verona", "Veneto"}, 4},
	{City{"Messina", "Sicilia"}, 3},
	{City{"Padova", "Veneto"}, 4},
	{City{"Trieste", "Friuli-Venezia Giulia"}, 3},
	{City{"Brescia", "Lombardia"}, 4},
	{City{"Parma", "Emilia-Romagna"}, 3},
	{City{"Taranto", "Puglia"}, 2},
	{City{"Prato", "Toscana"}, 2},
	{City{"Modena", "Emilia-Romagna"}, 3},
	{City{"Reggio Calabria", "Calabria"}, 2},
	{City{"Reggio Emilia", "Emilia-Romagna"}, 3},
	{City{"Perugia", "Umbria"}, 2},
	{City{"Livorno", "Toscana"}, 2},
	{City{"Ravenna", "Emilia-Romagna"}, 2},
	{City{"Cagliari", "Sardegna"}, 3},
	{City{"Foggia", "Puglia"}, 2},
	{City{"Rimini", "Emilia-Romagna"}, 8},
	{City{"Salerno", "Campania"}, 2},
	{City{"Ferrara", "Emilia-Romagna"}, 2},
	{City{"Sassari", "Sardegna"}, 2},
	{City{"Latina", "Lazio"}, 2},
	{City{"Monza", "Lombardia"}, 3},
	{City{"Bergamo", "Lombardia"}, 3},
	{City{"Siracusa", "Sicilia"}, 2},
	{City{"Pescara", "Abruzzo"}, 2},
	{City{"Trento", "Trentino-Alto Adige"}, 2},
	{City{"Forlì", "Emilia-Romagna"}, 2},
	{City{"Vicenza", "Veneto"}, 2},
	{City{"Terni", "Umbria"}, 1},
	{City{"Bolzano", "Trentino-Alto Adige"}, 2},
	{City{"Novara", "Piemonte"}, 2},
	{City{"Piacenza", "Emilia-Romagna"}, 2},
	{City{"Ancona", "Marche"}, 2},
	{City{"Andria", "Puglia"}, 1},
	{City{"Arezzo", "Toscana"}, 1},
	{City{"Udine", "Friuli-Venezia Giulia"}, 2},
	{City{"Cesena", "Emilia-Romagna"}, 2},
	{City{"Lecce", "Puglia"}, 2},
	{City{"Pesaro", "Marche"}, 1},
})

// Regions is the region picker list. It does not drive any weighting.
var Regions = []string{
	"Lombardia",
	"Lazio",
	"Campania",
	"Sicilia",
	"Veneto",
	"Emilia-Romagna",
	"Piemonte",
	"Puglia",
	"Toscana",
	"Calabria",
	"Sardegna",
	"Liguria",
	"Marche",
	"Abruzzo",
	"Friuli-Venezia Giulia",
	"Trentino-Alto Adige",
	"Umbria",
	"Basilicata",
	"Molise",
	"Valle d'Aosta",
}

func mustCatalog[T any](name string, entries []Weighted[T]) []Weighted[T] {
	if len(entries) == 0 {
		panic(fmt.Sprintf("generator: %s catalog is empty", name))
	}
	for i, e := range entries {
		if e.Weight <= 0 {
			panic(fmt.Sprintf("generator: %s catalog entry %d has non-positive weight", name, i))
		}
	}
	return entries
}
