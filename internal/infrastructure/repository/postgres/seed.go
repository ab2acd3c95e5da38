package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/repository/memory"
)

// BootstrapSeed fills empty dataset tables with the bundled Ligat HaAl seed so
// a fresh database can serve markers before the first scrape.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM stadium_coordinates`); err != nil {
		return fmt.Errorf("count stadium coordinates for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, row := range memory.SeedCoordinates() {
			model := coordinateModelFromRow(row)
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO stadium_coordinates (stadium, stadium_href, city, latitude, longitude)
VALUES (:stadium, :stadium_href, :city, :latitude, :longitude)`, model)
			if err != nil {
				return fmt.Errorf("bind seed coordinate %s query: %w", row.Stadium, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
				return fmt.Errorf("seed coordinate %s: %w", row.Stadium, err)
			}
		}

		for _, item := range memory.SeedFixtures() {
			model := fixtureModelFromDomain(item)
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (home_team, away_team, stadium, city, match_date, day, match_time)
VALUES (:home_team, :away_team, :stadium, :city, :match_date, :day, :match_time)`, model)
			if err != nil {
				return fmt.Errorf("bind seed fixture %s query: %w", item.Label(), err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
				return fmt.Errorf("seed fixture %s: %w", item.Label(), err)
			}
		}

		for _, item := range memory.SeedInfos() {
			model := infoModelFromDomain(item)
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO stadium_info (stadium, city, capacity, field_size, opened_date, image_url, url)
VALUES (:stadium, :city, :capacity, :field_size, :opened_date, :image_url, :url)`, model)
			if err != nil {
				return fmt.Errorf("bind seed stadium info %s query: %w", item.Stadium, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
				return fmt.Errorf("seed stadium info %s: %w", item.Stadium, err)
			}
		}
		return nil
	})
}
