package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
)

// DatasetRepository holds all three datasets in process. It serves the
// memory data source and receives scraper output when no database is set.
type DatasetRepository struct {
	mu          sync.RWMutex
	coordinates []stadium.RawCoordinateRow
	fixtures    []fixture.Fixture
	infos       []stadium.Info
}

func NewDatasetRepository(coordinates []stadium.RawCoordinateRow, fixtures []fixture.Fixture, infos []stadium.Info) *DatasetRepository {
	return &DatasetRepository{
		coordinates: append([]stadium.RawCoordinateRow(nil), coordinates...),
		fixtures:    append([]fixture.Fixture(nil), fixtures...),
		infos:       append([]stadium.Info(nil), infos...),
	}
}

func (r *DatasetRepository) LoadCoordinates(_ context.Context) ([]stadium.RawCoordinateRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]stadium.RawCoordinateRow(nil), r.coordinates...), nil
}

func (r *DatasetRepository) LoadFixtures(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]fixture.Fixture(nil), r.fixtures...), nil
}

func (r *DatasetRepository) LoadInfos(_ context.Context) ([]stadium.Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]stadium.Info(nil), r.infos...), nil
}

func (r *DatasetRepository) ReplaceCoordinates(_ context.Context, rows []stadium.RawCoordinateRow) error {
	r.mu.Lock()
	r.coordinates = append([]stadium.RawCoordinateRow(nil), rows...)
	r.mu.Unlock()
	return nil
}

func (r *DatasetRepository) ReplaceFixtures(_ context.Context, items []fixture.Fixture) error {
	r.mu.Lock()
	r.fixtures = append([]fixture.Fixture(nil), items...)
	r.mu.Unlock()
	return nil
}

func (r *DatasetRepository) ReplaceInfos(_ context.Context, items []stadium.Info) error {
	r.mu.Lock()
	r.infos = append([]stadium.Info(nil), items...)
	r.mu.Unlock()
	return nil
}

// BackfillCity fills missing info cities from coordinate rows with the same
// normalized stadium name.
func (r *DatasetRepository) BackfillCity(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cities := make(map[string]string, len(r.coordinates))
	for _, row := range r.coordinates {
		if row.City == "" {
			continue
		}
		cities[stadium.NormalizeName(row.Stadium)] = row.City
	}

	var updated int64
	for i := range r.infos {
		if r.infos[i].City != "" {
			continue
		}
		if city, ok := cities[stadium.NormalizeName(r.infos[i].Stadium)]; ok {
			r.infos[i].City = city
			updated++
		}
	}
	return updated, nil
}
