package generator

import (
	"time"

	"captiveportal/models"
)

const (
	heatmapDays  = 7
	heatmapHours = 24
)

// DailyData returns one point per day for the trailing days, oldest first.
// Weekends draw from [15,35], weekdays from [8,25].
func (g *Generator) DailyData(days int) []models.DailyData {
	if days <= 0 {
		return []models.DailyData{}
	}

	now := g.now()
	data := make([]models.DailyData, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := daysAgo(now, i)

		var contacts int
		switch date.Weekday() {
		case time.Saturday, time.Sunday:
			contacts = g.rnd.Int(15, 35)
		default:
			contacts = g.rnd.Int(8, 25)
		}

		data = append(data, models.DailyData{
			Date:     date.Format("2006-01-02"),
			Contacts: contacts,
		})
	}
	return data
}

// HourlyHeatmap returns a 7x24 activity grid with Monday in row 0. Rows 5
// and 6 are boosted by half, rounded down.
func (g *Generator) HourlyHeatmap() models.Heatmap {
	heatmap := make(models.Heatmap, heatmapDays)
	for day := range heatmap {
		row := make([]int, heatmapHours)
		for hour := range row {
			value := g.hourBase(hour)
			if day == 5 || day == 6 {
				value = value * 3 / 2
			}
			row[hour] = value
		}
		heatmap[day] = row
	}
	return heatmap
}

// hourBase applies the first matching window: lunch, dinner, then daytime
func (g *Generator) hourBase(hour int) int {
	switch {
	case hour >= 12 && hour <= 14:
		return g.rnd.Int(5, 15)
	case hour >= 19 && hour <= 22:
		return g.rnd.Int(10, 25)
	case hour >= 8 && hour <= 23:
		return g.rnd.Int(1, 8)
	default:
		return 0
	}
}
