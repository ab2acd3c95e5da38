package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
)

type fixtureTableModel struct {
	HomeTeam  string       `db:"home_team"`
	AwayTeam  string       `db:"away_team"`
	Stadium   string       `db:"stadium"`
	City      string       `db:"city"`
	MatchDate sql.NullTime `db:"match_date"`
	Day       string       `db:"day"`
	MatchTime string       `db:"match_time"`
}

func fixtureFromModel(row fixtureTableModel) fixture.Fixture {
	out := fixture.Fixture{
		HomeTeam: row.HomeTeam,
		AwayTeam: row.AwayTeam,
		Stadium:  row.Stadium,
		City:     row.City,
		Day:      row.Day,
		Time:     row.MatchTime,
	}
	if row.MatchDate.Valid {
		y, m, d := row.MatchDate.Time.Date()
		out.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return out
}

func fixtureModelFromDomain(item fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		Stadium:   item.Stadium,
		City:      item.City,
		MatchDate: sql.NullTime{Time: item.Date, Valid: item.HasDate()},
		Day:       item.Day,
		MatchTime: item.Time,
	}
}
