package invoice

import (
	"fmt"
	"strings"
)

// Region selects the template variant for the client's location.
type Region string

// Supported regions.
const (
	RegionROW   Region = "ROW"
	RegionIndia Region = "India"
)

// templateNames maps (payment option, region) to the template document.
var templateNames = map[PaymentOption]map[Region]string{
	OnePart: {
		RegionROW:   "One Part Payment ROW.docx",
		RegionIndia: "One Part Payment INDIA.docx",
	},
	TwoParts: {
		RegionROW:   "Two Parts Payment ROW.docx",
		RegionIndia: "Two Parts Payment INDIA.docx",
	},
	ThreeParts: {
		RegionROW:   "Three Parts Payment ROW.docx",
		RegionIndia: "Three Parts Payment INDIA.docx",
	},
}

// noServiceTemplateNames are the single-part variants used when no service
// description was supplied.
var noServiceTemplateNames = map[Region]string{
	RegionROW:   "One Part Payment ROW no service.docx",
	RegionIndia: "One Part Payment INDIA no service.docx",
}

// TemplateName returns the template document for the given payment option
// and region. A single-part invoice with an empty or whitespace-only
// service description selects the distinct "no service" variant.
func TemplateName(option PaymentOption, region Region, serviceDescription string) (string, error) {
	if option == OnePart && strings.TrimSpace(serviceDescription) == "" {
		if name, ok := noServiceTemplateNames[region]; ok {
			return name, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	byRegion, ok := templateNames[option]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentOption, option)
	}
	name, ok := byRegion[region]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return name, nil
}
