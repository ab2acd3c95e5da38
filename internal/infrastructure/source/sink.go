package source

import (
	"context"
	"io"
	"path/filepath"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

const (
	DefaultCoordinatesFile = "stadium_coordinates.csv"
	DefaultFixturesFile    = "fixtures.csv"
	DefaultInfosFile       = "stadium_info.csv"
)

// CSVSink writes scraped datasets as CSV files under one directory, in the
// layout the CSV loaders read back.
type CSVSink struct {
	dir string
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

func (s *CSVSink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *CSVSink) ReplaceCoordinates(_ context.Context, rows []stadium.RawCoordinateRow) error {
	return WriteFile(s.Path(DefaultCoordinatesFile), func(w io.Writer) error {
		return WriteCoordinatesCSV(w, rows)
	})
}

func (s *CSVSink) ReplaceFixtures(_ context.Context, items []fixture.Fixture) error {
	return WriteFile(s.Path(DefaultFixturesFile), func(w io.Writer) error {
		return WriteFixturesCSV(w, items)
	})
}

func (s *CSVSink) ReplaceInfos(_ context.Context, items []stadium.Info) error {
	return WriteFile(s.Path(DefaultInfosFile), func(w io.Writer) error {
		return WriteInfosCSV(w, items)
	})
}
