// Package addr holds street-address normalization helpers shared by the
// open-data resolver and the portal scraper.
package addr

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// streetSuffixes in the order they are tried; only the first match is stripped.
var streetSuffixes = []string{
	" st", " street", " ave", " avenue", " blvd", " boulevard",
	" dr", " drive", " rd", " road", " pl", " place", " ln", " lane",
	" way", " ct", " court", " cir", " circle", " ter", " terrace",
}

// CleanStreetName strips a trailing street-type suffix and title-cases the
// remainder, matching what the zoning portal expects in its street field
// ("Cosmo St" -> "Cosmo", "n main street" -> "N Main").
func CleanStreetName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range streetSuffixes {
		if strings.HasSuffix(n, s) {
			n = strings.TrimSuffix(n, s)
			break
		}
	}
	return cases.Title(language.AmericanEnglish).String(strings.TrimSpace(n))
}
