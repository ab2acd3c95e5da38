package fixture

import (
	"strings"
	"time"
)

var boundLayouts = []string{
	DateLayout,
	time.RFC3339,
}

// Criteria narrows a fixture list. Zero dates and empty strings disable the
// corresponding condition.
type Criteria struct {
	Start        time.Time
	End          time.Time
	CityContains string
	TeamContains string
}

func (c Criteria) IsZero() bool {
	return c.Start.IsZero() && c.End.IsZero() &&
		strings.TrimSpace(c.CityContains) == "" && strings.TrimSpace(c.TeamContains) == ""
}

// Key is a stable representation of the normalized criteria.
func (c Criteria) Key() string {
	return strings.Join([]string{
		formatBound(c.Start),
		formatBound(c.End),
		normalize(c.CityContains),
		normalize(c.TeamContains),
	}, "|")
}

// ParseDateBound parses an ISO date or RFC3339 filter bound. Slash dates
// such as 03/01/2024 read differently day-first and month-first, so they
// are treated as unparseable. Unparseable input yields the zero time, which
// disables the bound instead of failing the filter.
func ParseDateBound(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range boundLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// Apply returns the fixtures matching every condition, in input order.
func Apply(fixtures []Fixture, criteria Criteria) []Fixture {
	city := normalize(criteria.CityContains)
	team := normalize(criteria.TeamContains)

	out := make([]Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if !withinBounds(item, criteria.Start, criteria.End) {
			continue
		}
		if city != "" && !strings.Contains(normalize(item.City), city) {
			continue
		}
		if team != "" && !strings.Contains(normalize(item.HomeTeam), team) && !strings.Contains(normalize(item.AwayTeam), team) {
			continue
		}
		out = append(out, item)
	}

	return out
}

// A fixture without a known date never satisfies a present bound.
func withinBounds(item Fixture, start, end time.Time) bool {
	if !start.IsZero() && (!item.HasDate() || item.Date.Before(start)) {
		return false
	}
	if !end.IsZero() && (!item.HasDate() || item.Date.After(end)) {
		return false
	}
	return true
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
