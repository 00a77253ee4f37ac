package generator

import (
	"fmt"

	"captiveportal/models"
)

// Device samples type, OS and browser independently. Implausible pairs such
// as iOS on desktop are expected.
func (g *Generator) Device() models.DeviceInfo {
	deviceType := WeightedPick(g.rnd, DeviceTypes)
	os := WeightedPick(g.rnd, OperatingSystems)
	browser := WeightedPick(g.rnd, Browsers)

	return models.DeviceInfo{
		Type:      deviceType,
		OS:        os,
		Browser:   browser,
		UserAgent: UserAgent(os, browser),
	}
}

// UserAgent builds the synthetic user agent string for os and browser
func UserAgent(os, browser string) string {
	return fmt.Sprintf("Mozilla/5.0 (%s) %s/100.0", os, browser)
}
