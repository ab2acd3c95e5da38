package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	qb "github.com/riskibarqy/stadium-matchmap/internal/platform/querybuilder"
)

const stadiumInfoTable = "stadium_info"

// Cities are matched on the normalized stadium name; rows that already have
// a city keep it.
const backfillInfoCityQuery = `UPDATE stadium_info AS si
SET city = sc.city
FROM stadium_coordinates AS sc
WHERE LOWER(TRIM(si.stadium)) = LOWER(TRIM(sc.stadium))
  AND si.city = ''
  AND sc.city <> ''`

type StadiumInfoRepository struct {
	db *sqlx.DB
}

func NewStadiumInfoRepository(db *sqlx.DB) *StadiumInfoRepository {
	return &StadiumInfoRepository{db: db}
}

func (r *StadiumInfoRepository) LoadInfos(ctx context.Context) ([]stadium.Info, error) {
	query, args, err := qb.Select("stadium", "city", "capacity", "field_size", "opened_date", "image_url", "url").
		From(stadiumInfoTable).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stadium info query: %w", err)
	}

	var rows []stadiumInfoTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stadium info: %w", err)
	}

	out := make([]stadium.Info, 0, len(rows))
	for _, row := range rows {
		out = append(out, infoFromModel(row))
	}
	return out, nil
}

func (r *StadiumInfoRepository) ReplaceAll(ctx context.Context, items []stadium.Info) error {
	models := make([]stadiumInfoTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, infoModelFromDomain(item))
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery, _, err := qb.DeleteFrom(stadiumInfoTable).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete stadium info query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
			return fmt.Errorf("delete stadium info: %w", err)
		}

		for _, batch := range chunk(models, insertBatchSize) {
			query, args, err := qb.InsertModels(stadiumInfoTable, batch)
			if err != nil {
				return fmt.Errorf("build insert stadium info query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert stadium info: %w", err)
			}
		}
		return nil
	})
}

// BackfillCity copies the city from stadium_coordinates onto stadium_info
// rows without one and returns the number of rows updated.
func (r *StadiumInfoRepository) BackfillCity(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, backfillInfoCityQuery)
	if err != nil {
		return 0, fmt.Errorf("backfill stadium info city: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read backfill result: %w", err)
	}
	return affected, nil
}
