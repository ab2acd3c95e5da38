package postgres

import (
	"database/sql"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

type stadiumInfoTableModel struct {
	Stadium    string        `db:"stadium"`
	City       string        `db:"city"`
	Capacity   sql.NullInt64 `db:"capacity"`
	FieldSize  string        `db:"field_size"`
	OpenedDate string        `db:"opened_date"`
	ImageURL   string        `db:"image_url"`
	URL        string        `db:"url"`
}

func infoFromModel(row stadiumInfoTableModel) stadium.Info {
	return stadium.Info{
		Stadium:    row.Stadium,
		City:       row.City,
		Capacity:   intPtr(row.Capacity),
		FieldSize:  row.FieldSize,
		OpenedDate: row.OpenedDate,
		ImageURL:   row.ImageURL,
		URL:        row.URL,
	}
}

func infoModelFromDomain(item stadium.Info) stadiumInfoTableModel {
	return stadiumInfoTableModel{
		Stadium:    item.Stadium,
		City:       item.City,
		Capacity:   nullInt(item.Capacity),
		FieldSize:  item.FieldSize,
		OpenedDate: item.OpenedDate,
		ImageURL:   item.ImageURL,
		URL:        item.URL,
	}
}
