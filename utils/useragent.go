package utils

import (
	"regexp"

	"captiveportal/models"
)

var (
	tabletRe  = regexp.MustCompile(`(?i)tablet|ipad`)
	mobileRe  = regexp.MustCompile(`(?i)mobile|android|iphone`)
	windowsRe = regexp.MustCompile(`(?i)windows`)
	iosRe     = regexp.MustCompile(`(?i)iphone|ipad`)
	macRe     = regexp.MustCompile(`(?i)macintosh|mac os`)
	androidRe = regexp.MustCompile(`(?i)android`)
	linuxRe   = regexp.MustCompile(`(?i)linux`)
	chromeRe  = regexp.MustCompile(`(?i)chrome`)
	edgeRe    = regexp.MustCompile(`(?i)edge`)
	safariRe  = regexp.MustCompile(`(?i)safari`)
	firefoxRe = regexp.MustCompile(`(?i)firefox`)
)

// DeviceFromUserAgent classifies a browser User-Agent header. Anything not
// recognised is reported as "other".
func DeviceFromUserAgent(ua string) models.DeviceInfo {
	device := models.DeviceInfo{
		Type:      models.DeviceDesktop,
		OS:        "other",
		Browser:   "other",
		UserAgent: ua,
	}

	switch {
	case tabletRe.MatchString(ua):
		device.Type = models.DeviceTablet
	case mobileRe.MatchString(ua):
		device.Type = models.DeviceMobile
	}

	// iOS user agents also carry "like Mac OS X"
	switch {
	case windowsRe.MatchString(ua):
		device.OS = "Windows"
	case iosRe.MatchString(ua):
		device.OS = "iOS"
	case macRe.MatchString(ua):
		device.OS = "macOS"
	case androidRe.MatchString(ua):
		device.OS = "Android"
	case linuxRe.MatchString(ua):
		device.OS = "Linux"
	}

	switch {
	case chromeRe.MatchString(ua) && !edgeRe.MatchString(ua):
		device.Browser = "Chrome"
	case safariRe.MatchString(ua) && !chromeRe.MatchString(ua):
		device.Browser = "Safari"
	case firefoxRe.MatchString(ua):
		device.Browser = "Firefox"
	case edgeRe.MatchString(ua):
		device.Browser = "Edge"
	}

	return device
}
