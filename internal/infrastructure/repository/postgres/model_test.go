package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	qb "github.com/riskibarqy/stadium-matchmap/internal/platform/querybuilder"
)

func TestCoordinateModel_KeepsUnparseableAsNull(t *testing.T) {
	model := coordinateModelFromRow(stadium.RawCoordinateRow{Stadium: "Teddy", Latitude: "31.75", Longitude: ""})
	if !model.Latitude.Valid || model.Longitude.Valid {
		t.Fatalf("unexpected null flags: %+v", model)
	}

	row := coordinateRowFromModel(model)
	if row.Latitude != "31.75" || row.Longitude != "" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestFixtureModel_DateOnly(t *testing.T) {
	item := fixture.Fixture{HomeTeam: "A", AwayTeam: "B", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	model := fixtureModelFromDomain(item)
	if !model.MatchDate.Valid {
		t.Fatalf("expected date to be set")
	}

	model.MatchDate.Time = time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("IST", 2*3600))
	if got := fixtureFromModel(model); got.DateString() != "2024-03-01" || got.Date.Location() != time.UTC {
		t.Fatalf("unexpected fixture date: %v", got.Date)
	}

	if fixtureModelFromDomain(fixture.Fixture{}).MatchDate.Valid {
		t.Fatalf("expected zero date to be stored as null")
	}
}

func TestInfoModel_InsertColumns(t *testing.T) {
	cols, err := qb.Columns(stadiumInfoTableModel{})
	if err != nil {
		t.Fatalf("columns error: %v", err)
	}
	want := []string{"stadium", "city", "capacity", "field_size", "opened_date", "image_url", "url"}
	if len(cols) != len(want) {
		t.Fatalf("unexpected columns: %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("unexpected column %d: %s", i, cols[i])
		}
	}
}
