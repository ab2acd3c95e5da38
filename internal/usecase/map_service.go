package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/matchmap"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/cache"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/id"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const markersCachePrefix = "markers:"

// Dataset is one complete, immutable load of all inputs.
type Dataset struct {
	Version     string
	LoadedAt    time.Time
	Coordinates *stadium.CoordinateIndex
	Infos       *stadium.InfoIndex
	Fixtures    []fixture.Fixture
}

type DatasetSummary struct {
	Version        string
	LoadedAt       time.Time
	Fixtures       int
	Stadiums       int
	Cities         int
	StadiumInfos   int
	LoadDurationMS int64
}

// MapMetrics receives load and query outcomes.
type MapMetrics interface {
	ObserveDatasetLoad(result string, duration time.Duration)
	ObserveMarkers(resolved, unresolved int)
}

type nopMapMetrics struct{}

func (nopMapMetrics) ObserveDatasetLoad(string, time.Duration) {}
func (nopMapMetrics) ObserveMarkers(int, int)                  {}

type MapServiceConfig struct {
	Coordinates stadium.CoordinateSource
	Fixtures    fixture.Source

	// Infos is optional.
	Infos   stadium.InfoSource
	Cache   *cache.Store[matchmap.Resolution]
	IDs     id.Generator
	Metrics MapMetrics
	Logger  *logging.Logger
}

// MapService owns the published dataset and answers marker queries against it.
type MapService struct {
	coordinates stadium.CoordinateSource
	fixtures    fixture.Source
	infos       stadium.InfoSource
	cache       *cache.Store[matchmap.Resolution]
	ids         id.Generator
	metrics     MapMetrics
	logger      *logging.Logger
	now         func() time.Time

	loadMu   sync.Mutex
	current  atomic.Pointer[Dataset]
	lastLoad atomic.Int64
}

func NewMapService(cfg MapServiceConfig) *MapService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMapMetrics{}
	}

	return &MapService{
		coordinates: cfg.Coordinates,
		fixtures:    cfg.Fixtures,
		infos:       cfg.Infos,
		cache:       cfg.Cache,
		ids:         ids,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Load fetches every input concurrently and publishes the result only when
// all of them succeed. On failure the previous dataset stays in place.
func (s *MapService) Load(ctx context.Context) (Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapService.Load")
	defer span.End()

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	started := s.now()
	var (
		rows     []stadium.RawCoordinateRow
		fixtures []fixture.Fixture
		infos    []stadium.Info
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		out, err := s.coordinates.LoadCoordinates(ctx)
		if err != nil {
			return fmt.Errorf("load coordinates: %w", err)
		}
		rows = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.fixtures.LoadFixtures(ctx)
		if err != nil {
			return fmt.Errorf("load fixtures: %w", err)
		}
		fixtures = out
		return nil
	})
	if s.infos != nil {
		p.Go(func(ctx context.Context) error {
			out, err := s.infos.LoadInfos(ctx)
			if err != nil {
				return fmt.Errorf("load stadium info: %w", err)
			}
			infos = out
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		elapsed := s.now().Sub(started)
		s.metrics.ObserveDatasetLoad("failure", elapsed)
		s.logger.ErrorContext(ctx, "dataset load failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return Dataset{}, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	version, err := s.ids.NewID()
	if err != nil {
		return Dataset{}, fmt.Errorf("generate dataset version: %w", err)
	}

	ds := &Dataset{
		Version:     version,
		LoadedAt:    s.now().UTC(),
		Coordinates: stadium.BuildCoordinateIndex(rows),
		Infos:       stadium.BuildInfoIndex(infos),
		Fixtures:    fixtures,
	}
	elapsed := s.now().Sub(started)

	previous := s.current.Swap(ds)
	s.lastLoad.Store(elapsed.Milliseconds())
	if s.cache != nil && previous != nil {
		s.cache.DeletePrefix(markersCachePrefix + previous.Version + ":")
	}

	s.metrics.ObserveDatasetLoad("success", elapsed)
	s.logger.InfoContext(ctx, "dataset loaded",
		"version", ds.Version,
		"fixtures", len(ds.Fixtures),
		"stadiums", ds.Coordinates.StadiumCount(),
		"cities", ds.Coordinates.CityCount(),
		"stadium_infos", ds.Infos.Len(),
		"duration_ms", elapsed.Milliseconds(),
	)

	return *ds, nil
}

// Markers filters, groups and joins the current dataset. The result may be
// shared with other callers and must not be modified.
func (s *MapService) Markers(ctx context.Context, criteria fixture.Criteria) (matchmap.Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapService.Markers")
	defer span.End()

	ds := s.current.Load()
	if ds == nil {
		return matchmap.Resolution{}, ErrNotReady
	}

	var res matchmap.Resolution
	if s.cache == nil {
		res = s.resolve(ctx, ds, criteria)
	} else {
		key := markersCachePrefix + ds.Version + ":" + criteria.Key()
		cached, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (matchmap.Resolution, error) {
			return s.resolve(ctx, ds, criteria), nil
		})
		if err != nil {
			return matchmap.Resolution{}, fmt.Errorf("resolve markers: %w", err)
		}
		res = cached
	}

	s.metrics.ObserveMarkers(len(res.Groups), len(res.Unresolved))
	return res, nil
}

func (s *MapService) resolve(ctx context.Context, ds *Dataset, criteria fixture.Criteria) matchmap.Resolution {
	filtered := fixture.Apply(ds.Fixtures, criteria)
	grouped := fixture.GroupByStadium(filtered)
	return matchmap.Resolve(ctx, grouped, ds.Coordinates, ds.Infos, s.logger)
}

func (s *MapService) Ready() bool {
	return s.current.Load() != nil
}

// Snapshot returns the published dataset, if any.
func (s *MapService) Snapshot() (Dataset, bool) {
	ds := s.current.Load()
	if ds == nil {
		return Dataset{}, false
	}
	return *ds, true
}

func (s *MapService) Summary() (DatasetSummary, error) {
	ds := s.current.Load()
	if ds == nil {
		return DatasetSummary{}, ErrNotReady
	}
	return DatasetSummary{
		Version:        ds.Version,
		LoadedAt:       ds.LoadedAt,
		Fixtures:       len(ds.Fixtures),
		Stadiums:       ds.Coordinates.StadiumCount(),
		Cities:         ds.Coordinates.CityCount(),
		StadiumInfos:   ds.Infos.Len(),
		LoadDurationMS: s.lastLoad.Load(),
	}, nil
}
