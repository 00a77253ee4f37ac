// Package stats computes the dashboard rollup from contacts and access logs.
package stats

import (
	"math"
	"sort"
	"time"

	"captiveportal/models"
)

const (
	// ConversionRate is a fixed placeholder, not derived from data
	ConversionRate = 68

	// DefaultSessionMinutes is reported when there are no contacts at all
	DefaultSessionMinutes = 45

	TopCitiesLimit = 20
)

// Calculate aggregates contacts and logs relative to now. DailyData and
// HourlyHeatmap are left empty for the caller to fill.
func Calculate(contacts []models.Contact, logs []models.AccessLog, now time.Time) models.Stats {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	s := models.Stats{
		Total:          len(contacts),
		ConversionRate: ConversionRate,
		DailyData:      []models.DailyData{},
		HourlyHeatmap:  models.Heatmap{},
		TopCities:      []models.CityStat{},
		Regions:        map[string]int{},
	}

	var devices models.DeviceStats
	cities := map[string]*models.CityStat{}
	var cityOrder []string

	for _, c := range contacts {
		if !c.CreatedAt.Before(startOfToday) {
			s.Today++
		}
		if !c.CreatedAt.Before(weekAgo) {
			s.ThisWeek++
		}
		if !c.CreatedAt.Before(monthAgo) {
			s.ThisMonth++
		}

		switch c.Device.Type {
		case models.DeviceMobile:
			devices.Mobile++
		case models.DeviceDesktop:
			devices.Desktop++
		case models.DeviceTablet:
			devices.Tablet++
		}

		countOS(&s.OS, c.Device.OS)
		countBrowser(&s.Browsers, c.Device.Browser)

		city, ok := cities[c.City]
		if !ok {
			city = &models.CityStat{City: c.City, Region: c.Region}
			cities[c.City] = city
			cityOrder = append(cityOrder, c.City)
		}
		city.Count++

		s.Regions[c.Region]++
	}

	totalDevices := devices.Mobile + devices.Desktop + devices.Tablet
	s.Devices = models.DeviceStats{
		Mobile:  percent(devices.Mobile, totalDevices),
		Desktop: percent(devices.Desktop, totalDevices),
		Tablet:  percent(devices.Tablet, totalDevices),
	}

	s.TopCities = topCities(cities, cityOrder, len(contacts))
	s.AvgSessionTime = averageSession(logs, len(contacts))
	return s
}

// Empty is what the dashboard shows before any contact exists
func Empty() models.Stats {
	return models.Stats{
		DailyData:     []models.DailyData{},
		HourlyHeatmap: models.Heatmap{},
		TopCities:     []models.CityStat{},
		Regions:       map[string]int{},
	}
}

func countOS(os *models.OSStats, name string) {
	switch name {
	case "iOS":
		os.IOS++
	case "Android":
		os.Android++
	case "Windows":
		os.Windows++
	case "macOS":
		os.MacOS++
	default:
		os.Other++
	}
}

func countBrowser(b *models.BrowserStats, name string) {
	switch name {
	case "Chrome":
		b.Chrome++
	case "Safari":
		b.Safari++
	case "Firefox":
		b.Firefox++
	case "Edge":
		b.Edge++
	default:
		b.Other++
	}
}

// percent rounds n/total to a whole percentage, 0 when total is 0
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func topCities(cities map[string]*models.CityStat, order []string, total int) []models.CityStat {
	ranked := make([]models.CityStat, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *cities[name])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopCitiesLimit {
		ranked = ranked[:TopCitiesLimit]
	}

	for i := range ranked {
		if total > 0 {
			ranked[i].Percentage = math.Round(float64(ranked[i].Count)/float64(total)*1000) / 10
		}
	}
	return ranked
}

func averageSession(logs []models.AccessLog, contacts int) int {
	if contacts == 0 {
		return DefaultSessionMinutes
	}

	var sum, n int
	for _, l := range logs {
		if l.Status == models.AccessSuccess {
			sum += l.Duration
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
