package fixture

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar date layout used by datasets and filters.
const DateLayout = "2006-01-02"

// Fixture represents one scheduled match at a stadium.
type Fixture struct {
	HomeTeam string
	AwayTeam string
	Stadium  string
	City     string
	// Date is a UTC calendar date; zero when the source value could not be parsed.
	Date time.Time
	Day  string
	Time string
}

func (f Fixture) HasDate() bool {
	return !f.Date.IsZero()
}

func (f Fixture) DateString() string {
	if !f.HasDate() {
		return ""
	}
	return f.Date.Format(DateLayout)
}

// Label renders the legacy "Home vs Away" descriptor.
func (f Fixture) Label() string {
	home := strings.TrimSpace(f.HomeTeam)
	away := strings.TrimSpace(f.AwayTeam)
	switch {
	case home == "":
		return away
	case away == "":
		return home
	default:
		return home + " vs " + away
	}
}

// SplitLabel parses a legacy "Home vs Away" descriptor.
func SplitLabel(label string) (home, away string) {
	parts := strings.SplitN(label, " vs ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(label), ""
}
