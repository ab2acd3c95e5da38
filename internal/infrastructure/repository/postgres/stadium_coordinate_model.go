package postgres

import (
	"database/sql"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

type stadiumCoordinateTableModel struct {
	Stadium     string          `db:"stadium"`
	StadiumHref string          `db:"stadium_href"`
	City        string          `db:"city"`
	Latitude    sql.NullFloat64 `db:"latitude"`
	Longitude   sql.NullFloat64 `db:"longitude"`
}

func coordinateRowFromModel(row stadiumCoordinateTableModel) stadium.RawCoordinateRow {
	return stadium.RawCoordinateRow{
		Stadium:    row.Stadium,
		City:       row.City,
		Latitude:   formatNullFloat(row.Latitude),
		Longitude:  formatNullFloat(row.Longitude),
		StadiumURL: row.StadiumHref,
	}
}

func coordinateModelFromRow(row stadium.RawCoordinateRow) stadiumCoordinateTableModel {
	return stadiumCoordinateTableModel{
		Stadium:     row.Stadium,
		StadiumHref: row.StadiumURL,
		City:        row.City,
		Latitude:    nullFloat(row.Latitude),
		Longitude:   nullFloat(row.Longitude),
	}
}
