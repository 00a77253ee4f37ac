package models

// DailyData is the number of new contacts on one calendar day
type DailyData struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Contacts int    `json:"contacts"`
}

// Heatmap holds activity per weekday (Monday first) and hour of day
type Heatmap [][]int

type DeviceStats struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
	Tablet  int `json:"tablet"`
}

type OSStats struct {
	IOS     int `json:"ios"`
	Android int `json:"android"`
	Windows int `json:"windows"`
	MacOS   int `json:"macos"`
	Other   int `json:"other"`
}

type BrowserStats struct {
	Chrome  int `json:"chrome"`
	Safari  int `json:"safari"`
	Firefox int `json:"firefox"`
	Edge    int `json:"edge"`
	Other   int `json:"other"`
}

type CityStat struct {
	City       string  `json:"city"`
	Region     string  `json:"region"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Stats is the dashboard rollup computed from contacts and access logs
type Stats struct {
	Total          int `json:"total"`
	Today          int `json:"today"`
	ThisWeek       int `json:"thisWeek"`
	ThisMonth      int `json:"thisMonth"`
	ConversionRate int `json:"conversionRate"`
	AvgSessionTime int `json:"avgSessionTime"` // minutes

	DailyData     []DailyData `json:"dailyData"`
	HourlyHeatmap Heatmap     `json:"hourlyHeatmap"`

	// Devices holds percentages, OS and Browsers raw counts
	Devices  DeviceStats  `json:"devices"`
	OS       OSStats      `json:"os"`
	Browsers BrowserStats `json:"browsers"`

	TopCities []CityStat     `json:"topCities"`
	Regions   map[string]int `json:"regions"`
}
