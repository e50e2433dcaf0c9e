package location

import (
	"net/url"
	"strings"
)

// hcmcDistricts lists the Ho Chi Minh City districts recognised by zone
// extraction.
// Two-digit districts come first so "district 10" is not matched as
// "district 1".
var hcmcDistricts = []string{
	"district 10", "district 11", "district 12",
	"district 1", "district 2", "district 3", "district 4", "district 5",
	"district 6", "district 7", "district 8", "district 9",
	"binh thanh", "phu nhuan", "tan binh", "tan phu", "go vap", "thu duc",
}

// Zone extracts the district/zone name from a free-text address, or
// "Unknown Zone" if none matches.
func Zone(address string) string {
	lower := strings.ToLower(address)
	for _, district := range hcmcDistricts {
		if strings.Contains(lower, district) {
			return titleCase(strings.Replace(district, "district ", "D", 1))
		}
	}
	return "Unknown Zone"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// MapLink derives a Google Maps search link for an address. The link is
// display-only and not authoritative.
func MapLink(address string) string {
	if address == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}
