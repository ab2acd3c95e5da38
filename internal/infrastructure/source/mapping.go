package source

import (
	"strings"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

var fixtureDateLayouts = []string{
	fixture.DateLayout,
	"02/01/2006",
	"02.01.2006",
	time.RFC3339,
}

// CoordinateRows maps dataset rows to raw coordinate rows. Parsing of the
// numeric values is left to the coordinate index.
func CoordinateRows(rows []Row) []stadium.RawCoordinateRow {
	out := make([]stadium.RawCoordinateRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, stadium.RawCoordinateRow{
			Stadium:    row.Get(stadiumAliases...),
			City:       row.Get(cityAliases...),
			Latitude:   row.Get(latitudeAliases...),
			Longitude:  row.Get(longitudeAliases...),
			StadiumURL: row.Get(hrefAliases...),
		})
	}
	return out
}

// Fixtures maps both the structured schema (home_team/away_team) and the
// legacy one (Match = "Home vs Away") to fixtures.
func Fixtures(rows []Row) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		home := row.Get(homeAliases...)
		away := row.Get(awayAliases...)
		if home == "" && away == "" {
			home, away = fixture.SplitLabel(row.Get(matchAliases...))
		}

		out = append(out, fixture.Fixture{
			HomeTeam: home,
			AwayTeam: away,
			Stadium:  row.Get(stadiumAliases...),
			City:     row.Get(cityAliases...),
			Date:     ParseFixtureDate(row.Get(dateAliases...)),
			Day:      row.Get(dayAliases...),
			Time:     row.Get(timeAliases...),
		})
	}
	return out
}

// Infos maps stadium metadata rows.
func Infos(rows []Row) []stadium.Info {
	out := make([]stadium.Info, 0, len(rows))
	for _, row := range rows {
		name := row.Get(stadiumAliases...)
		if name == "" {
			continue
		}
		out = append(out, stadium.Info{
			Stadium:    name,
			City:       row.Get(cityAliases...),
			Capacity:   stadium.ParseCapacity(row.Get(capacityAliases...)),
			FieldSize:  row.Get(fieldSizeAliases...),
			OpenedDate: stadium.TrimOpenedDate(row.Get(openedAliases...)),
			ImageURL:   row.Get(imageAliases...),
			URL:        row.Get(urlAliases...),
		})
	}
	return out
}

// ParseFixtureDate returns the zero time when no layout matches.
func ParseFixtureDate(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range fixtureDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}
