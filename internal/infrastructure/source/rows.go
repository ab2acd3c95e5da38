package source

import (
	"strings"
)

// Row is one dataset record keyed by lowercased column name.
type Row map[string]string

var emptyMarkers = map[string]struct{}{
	"none": {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// Get returns the first non-empty value among aliases. Placeholder cells such
// as "None" or "N/A" count as empty.
func (r Row) Get(aliases ...string) string {
	for _, alias := range aliases {
		value, ok := r[normalizeHeader(alias)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if isEmptyMarker(value) {
			continue
		}
		return value
	}
	return ""
}

func isEmptyMarker(value string) bool {
	if value == "" {
		return true
	}
	_, ok := emptyMarkers[strings.ToLower(value)]
	return ok
}

func normalizeHeader(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	return strings.ToLower(strings.TrimSpace(value))
}

var (
	stadiumAliases   = []string{"stadium", "stadium_name"}
	cityAliases      = []string{"city", "city_name"}
	latitudeAliases  = []string{"latitude", "lat"}
	longitudeAliases = []string{"longitude", "lng", "lon"}
	hrefAliases      = []string{"stadium_href", "url"}
	homeAliases      = []string{"home_team", "hometeam"}
	awayAliases      = []string{"away_team", "awayteam"}
	matchAliases     = []string{"match"}
	dateAliases      = []string{"date"}
	dayAliases       = []string{"day"}
	timeAliases      = []string{"time"}
	capacityAliases  = []string{"capacity"}
	fieldSizeAliases = []string{"field_size"}
	openedAliases    = []string{"opened_date", "opened"}
	imageAliases     = []string{"image_url"}
	urlAliases       = []string{"url", "stadium_href"}
)
