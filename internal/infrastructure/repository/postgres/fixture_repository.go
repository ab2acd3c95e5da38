package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	qb "github.com/riskibarqy/stadium-matchmap/internal/platform/querybuilder"
)

const fixturesTable = "fixtures"

var fixtureColumns = []string{"home_team", "away_team", "stadium", "city", "match_date", "day", "match_time"}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) LoadFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From(fixturesTable).
		OrderBy("match_date NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isRetryablePoolerError(err) {
			return r.loadFixturesText(ctx)
		}
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromModel(row))
	}
	return out, nil
}

// loadFixturesText casts the date to text, which poolers without binary
// result support accept.
func (r *FixtureRepository) loadFixturesText(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(
		"home_team", "away_team", "stadium", "city",
		"COALESCE(match_date::text, '') AS match_date_text",
		"day", "match_time",
	).From(fixturesTable).
		OrderBy("match_date NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures fallback query: %w", err)
	}

	var rows []struct {
		HomeTeam  string `db:"home_team"`
		AwayTeam  string `db:"away_team"`
		Stadium   string `db:"stadium"`
		City      string `db:"city"`
		MatchDate string `db:"match_date_text"`
		Day       string `db:"day"`
		MatchTime string `db:"match_time"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures fallback: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			HomeTeam: row.HomeTeam,
			AwayTeam: row.AwayTeam,
			Stadium:  row.Stadium,
			City:     row.City,
			Date:     fixture.ParseDateBound(row.MatchDate),
			Day:      row.Day,
			Time:     row.MatchTime,
		})
	}
	return out, nil
}

func (r *FixtureRepository) ReplaceAll(ctx context.Context, items []fixture.Fixture) error {
	models := make([]fixtureTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, fixtureModelFromDomain(item))
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery, _, err := qb.DeleteFrom(fixturesTable).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
			return fmt.Errorf("delete fixtures: %w", err)
		}

		for _, batch := range chunk(models, insertBatchSize) {
			query, args, err := qb.InsertModels(fixturesTable, batch)
			if err != nil {
				return fmt.Errorf("build insert fixtures query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert fixtures: %w", err)
			}
		}
		return nil
	})
}
