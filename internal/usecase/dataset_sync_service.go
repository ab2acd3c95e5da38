package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

// StadiumDirectory lists stadiums and resolves their pages.
type StadiumDirectory interface {
	ListStadiums(ctx context.Context) ([]stadium.RawCoordinateRow, error)
	FetchCoordinates(ctx context.Context, rows []stadium.RawCoordinateRow) ([]stadium.RawCoordinateRow, error)
	FetchInfos(ctx context.Context, rows []stadium.RawCoordinateRow) ([]stadium.Info, error)
}

// FixtureFeed returns the normalized fixture list of a league.
type FixtureFeed interface {
	ListFixtures(ctx context.Context) ([]fixture.Fixture, error)
}

// DatasetSink stores a freshly scraped dataset, replacing what it held.
type DatasetSink interface {
	ReplaceCoordinates(ctx context.Context, rows []stadium.RawCoordinateRow) error
	ReplaceFixtures(ctx context.Context, items []fixture.Fixture) error
	ReplaceInfos(ctx context.Context, items []stadium.Info) error
}

type cityBackfiller interface {
	BackfillCity(ctx context.Context) (int64, error)
}

type SyncReport struct {
	Coordinates  int
	Fixtures     int
	StadiumInfos int
}

type DatasetSyncService struct {
	directory   StadiumDirectory
	feed        FixtureFeed
	coordinates stadium.CoordinateSource
	sinks       []DatasetSink
	logger      *logging.Logger
}

// NewDatasetSyncService wires the scrapers to the sinks. coordinates is used
// by SyncStadiumInfo when it is not handed fresh rows.
func NewDatasetSyncService(directory StadiumDirectory, feed FixtureFeed, coordinates stadium.CoordinateSource, logger *logging.Logger, sinks ...DatasetSink) *DatasetSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DatasetSyncService{
		directory:   directory,
		feed:        feed,
		coordinates: coordinates,
		sinks:       sinks,
		logger:      logger,
	}
}

// SyncCoordinates scrapes the stadium list and each stadium's page. Stadiums
// whose page has no coordinates are dropped.
func (s *DatasetSyncService) SyncCoordinates(ctx context.Context) ([]stadium.RawCoordinateRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetSyncService.SyncCoordinates")
	defer span.End()

	if s.directory == nil {
		return nil, fmt.Errorf("%w: stadium directory is not configured", ErrInvalidInput)
	}

	listed, err := s.directory.ListStadiums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stadiums: %w", err)
	}
	resolved, err := s.directory.FetchCoordinates(ctx, listed)
	if err != nil {
		return nil, fmt.Errorf("fetch stadium coordinates: %w", err)
	}

	out := make([]stadium.RawCoordinateRow, 0, len(resolved))
	for _, row := range resolved {
		if strings.TrimSpace(row.Latitude) == "" || strings.TrimSpace(row.Longitude) == "" {
			s.logger.WarnContext(ctx, "stadium page has no coordinates", "stadium", row.Stadium, "url", row.StadiumURL)
			continue
		}
		out = append(out, row)
	}

	for _, sink := range s.sinks {
		if err := sink.ReplaceCoordinates(ctx, out); err != nil {
			return nil, fmt.Errorf("store coordinates: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "stadium coordinates synced", "listed", len(listed), "stored", len(out))
	return out, nil
}

func (s *DatasetSyncService) SyncFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetSyncService.SyncFixtures")
	defer span.End()

	if s.feed == nil {
		return nil, fmt.Errorf("%w: fixture feed is not configured", ErrInvalidInput)
	}

	fixtures, err := s.feed.ListFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	for _, sink := range s.sinks {
		if err := sink.ReplaceFixtures(ctx, fixtures); err != nil {
			return nil, fmt.Errorf("store fixtures: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "fixtures synced", "fixtures", len(fixtures))
	return fixtures, nil
}

// SyncStadiumInfo scrapes the infobox of every stadium page in rows. When
// rows is nil the configured coordinate source is read instead. Missing
// cities are filled from the coordinate rows.
func (s *DatasetSyncService) SyncStadiumInfo(ctx context.Context, rows []stadium.RawCoordinateRow) ([]stadium.Info, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetSyncService.SyncStadiumInfo")
	defer span.End()

	if s.directory == nil {
		return nil, fmt.Errorf("%w: stadium directory is not configured", ErrInvalidInput)
	}
	if rows == nil && s.coordinates != nil {
		loaded, err := s.coordinates.LoadCoordinates(ctx)
		if err != nil {
			return nil, fmt.Errorf("load coordinates: %w", err)
		}
		rows = loaded
	}

	withPages := make([]stadium.RawCoordinateRow, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.StadiumURL) != "" {
			withPages = append(withPages, row)
		}
	}

	infos, err := s.directory.FetchInfos(ctx, withPages)
	if err != nil {
		return nil, fmt.Errorf("fetch stadium info: %w", err)
	}
	infos = dedupeInfos(backfillInfoCities(infos, rows))

	for _, sink := range s.sinks {
		if err := sink.ReplaceInfos(ctx, infos); err != nil {
			return nil, fmt.Errorf("store stadium info: %w", err)
		}
		if backfiller, ok := sink.(cityBackfiller); ok {
			updated, err := backfiller.BackfillCity(ctx)
			if err != nil {
				return nil, fmt.Errorf("backfill stadium info city: %w", err)
			}
			s.logger.DebugContext(ctx, "stadium info city backfilled", "rows", updated)
		}
	}

	s.logger.InfoContext(ctx, "stadium info synced", "stadiums", len(withPages), "stored", len(infos))
	return infos, nil
}

// SyncAll runs coordinates, fixtures and stadium info in that order; the
// info step reuses the freshly scraped coordinates.
func (s *DatasetSyncService) SyncAll(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetSyncService.SyncAll")
	defer span.End()

	var report SyncReport

	rows, err := s.SyncCoordinates(ctx)
	if err != nil {
		return report, err
	}
	report.Coordinates = len(rows)

	fixtures, err := s.SyncFixtures(ctx)
	if err != nil {
		return report, err
	}
	report.Fixtures = len(fixtures)

	infos, err := s.SyncStadiumInfo(ctx, rows)
	if err != nil {
		return report, err
	}
	report.StadiumInfos = len(infos)

	return report, nil
}

func backfillInfoCities(infos []stadium.Info, rows []stadium.RawCoordinateRow) []stadium.Info {
	cities := make(map[string]string, len(rows))
	for _, row := range rows {
		if city := strings.TrimSpace(row.City); city != "" {
			cities[stadium.NormalizeName(row.Stadium)] = city
		}
	}

	out := make([]stadium.Info, 0, len(infos))
	for _, item := range infos {
		if strings.TrimSpace(item.City) == "" {
			item.City = cities[stadium.NormalizeName(item.Stadium)]
		}
		out = append(out, item)
	}
	return out
}

func dedupeInfos(infos []stadium.Info) []stadium.Info {
	seen := make(map[string]struct{}, len(infos))
	out := make([]stadium.Info, 0, len(infos))
	for _, item := range infos {
		capacity := ""
		if item.Capacity != nil {
			capacity = fmt.Sprint(*item.Capacity)
		}
		key := strings.Join([]string{item.Stadium, item.City, capacity, item.FieldSize, item.OpenedDate, item.ImageURL, item.URL}, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
