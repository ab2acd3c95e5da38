package source

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

var (
	coordinateColumns = []string{"stadium", "stadium_href", "city", "latitude", "longitude"}
	fixtureColumns    = []string{"home_team", "away_team", "stadium", "city", "date", "day", "time"}
	infoColumns       = []string{"stadium", "city", "capacity", "field_size", "opened_date", "image_url", "url"}
)

func WriteCoordinatesCSV(w io.Writer, rows []stadium.RawCoordinateRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Stadium, row.StadiumURL, row.City, row.Latitude, row.Longitude})
	}
	return WriteCSV(w, coordinateColumns, records)
}

func WriteFixturesCSV(w io.Writer, fixtures []fixture.Fixture) error {
	records := make([][]string, 0, len(fixtures))
	for _, item := range fixtures {
		records = append(records, []string{item.HomeTeam, item.AwayTeam, item.Stadium, item.City, item.DateString(), item.Day, item.Time})
	}
	return WriteCSV(w, fixtureColumns, records)
}

func WriteInfosCSV(w io.Writer, infos []stadium.Info) error {
	records := make([][]string, 0, len(infos))
	for _, item := range infos {
		capacity := ""
		if item.Capacity != nil {
			capacity = strconv.Itoa(*item.Capacity)
		}
		records = append(records, []string{item.Stadium, item.City, capacity, item.FieldSize, item.OpenedDate, item.ImageURL, item.URL})
	}
	return WriteCSV(w, infoColumns, records)
}

// WriteFile writes through a temp file in the same directory and renames it
// into place, so readers never observe a partial dataset.
func WriteFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create output dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close temp file for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return crerr.Wrapf(err, "rename into %s", path)
	}
	return nil
}
