package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	qb "github.com/riskibarqy/stadium-matchmap/internal/platform/querybuilder"
)

const stadiumCoordinatesTable = "stadium_coordinates"

type StadiumCoordinateRepository struct {
	db *sqlx.DB
}

func NewStadiumCoordinateRepository(db *sqlx.DB) *StadiumCoordinateRepository {
	return &StadiumCoordinateRepository{db: db}
}

func (r *StadiumCoordinateRepository) LoadCoordinates(ctx context.Context) ([]stadium.RawCoordinateRow, error) {
	query, args, err := qb.Select("stadium", "stadium_href", "city", "latitude", "longitude").
		From(stadiumCoordinatesTable).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stadium coordinates query: %w", err)
	}

	var rows []stadiumCoordinateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stadium coordinates: %w", err)
	}

	out := make([]stadium.RawCoordinateRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, coordinateRowFromModel(row))
	}
	return out, nil
}

// ReplaceAll swaps the table contents in one transaction.
func (r *StadiumCoordinateRepository) ReplaceAll(ctx context.Context, rows []stadium.RawCoordinateRow) error {
	models := make([]stadiumCoordinateTableModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, coordinateModelFromRow(row))
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery, _, err := qb.DeleteFrom(stadiumCoordinatesTable).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete stadium coordinates query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
			return fmt.Errorf("delete stadium coordinates: %w", err)
		}

		for _, batch := range chunk(models, insertBatchSize) {
			query, args, err := qb.InsertModels(stadiumCoordinatesTable, batch)
			if err != nil {
				return fmt.Errorf("build insert stadium coordinates query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert stadium coordinates: %w", err)
			}
		}
		return nil
	})
}
