package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

// DatasetStore groups the three dataset tables behind one loader and sink.
type DatasetStore struct {
	Coordinates *StadiumCoordinateRepository
	Fixtures    *FixtureRepository
	Infos       *StadiumInfoRepository
}

func NewDatasetStore(db *sqlx.DB) *DatasetStore {
	return &DatasetStore{
		Coordinates: NewStadiumCoordinateRepository(db),
		Fixtures:    NewFixtureRepository(db),
		Infos:       NewStadiumInfoRepository(db),
	}
}

func (s *DatasetStore) LoadCoordinates(ctx context.Context) ([]stadium.RawCoordinateRow, error) {
	return s.Coordinates.LoadCoordinates(ctx)
}

func (s *DatasetStore) LoadFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	return s.Fixtures.LoadFixtures(ctx)
}

func (s *DatasetStore) LoadInfos(ctx context.Context) ([]stadium.Info, error) {
	return s.Infos.LoadInfos(ctx)
}

func (s *DatasetStore) ReplaceCoordinates(ctx context.Context, rows []stadium.RawCoordinateRow) error {
	return s.Coordinates.ReplaceAll(ctx, rows)
}

func (s *DatasetStore) ReplaceFixtures(ctx context.Context, items []fixture.Fixture) error {
	return s.Fixtures.ReplaceAll(ctx, items)
}

func (s *DatasetStore) ReplaceInfos(ctx context.Context, items []stadium.Info) error {
	return s.Infos.ReplaceAll(ctx, items)
}

func (s *DatasetStore) BackfillCity(ctx context.Context) (int64, error) {
	return s.Infos.BackfillCity(ctx)
}
