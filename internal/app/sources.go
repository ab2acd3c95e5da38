package app

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/riskibarqy/stadium-matchmap/internal/config"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/source"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/resilience"
)

type datasetSources struct {
	Coordinates stadium.CoordinateSource
	Fixtures    fixture.Source
	// Infos is nil when no stadium info dataset is configured.
	Infos stadium.InfoSource

	closers []func() error
}

func (s *datasetSources) close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildDatasetSources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*datasetSources, error) {
	switch cfg.DataSource {
	case config.DataSourceMemory:
		repo := memory.NewDatasetRepository(memory.SeedCoordinates(), memory.SeedFixtures(), memory.SeedInfos())
		logger.Info("using bundled seed dataset")
		return &datasetSources{Coordinates: repo, Fixtures: repo, Infos: repo}, nil
	case config.DataSourcePostgres:
		return buildPostgresSources(ctx, cfg, logger)
	default:
		return buildFileSources(ctx, cfg, logger)
	}
}

func buildPostgresSources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*datasetSources, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	store := postgres.NewDatasetStore(db)
	logger.Info("using postgres datasets", "db", dbNameFromURL(cfg.DBURL))
	return &datasetSources{
		Coordinates: store,
		Fixtures:    store,
		Infos:       store,
		closers:     []func() error{db.Close},
	}, nil
}

func buildFileSources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*datasetSources, error) {
	out := &datasetSources{}

	httpFetcher := source.NewHTTPFetcher(source.HTTPFetcherConfig{
		Timeout:        cfg.DataFetchTimeout,
		MaxRetries:     cfg.DataFetchMaxRetries,
		MaxBodyBytes:   cfg.DataFetchMaxBodyBytes,
		Logger:         logger,
		BreakerEnabled: cfg.DataCircuitEnabled,
		Breaker: resilience.BreakerConfig{
			FailureThreshold: cfg.DataCircuitFailureCount,
			OpenTimeout:      cfg.DataCircuitOpenTimeout,
			HalfOpenProbes:   cfg.DataCircuitHalfOpenMaxReq,
		},
	})

	var gcsFetcher source.Fetcher
	if usesGCS(cfg.DataCoordinatesLocation, cfg.DataFixturesLocation, cfg.DataStadiumInfoLocation) {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create gcs client: %w", err)
		}
		gcsFetcher = source.NewGCSFetcher(client, cfg.DataFetchMaxBodyBytes)
		out.closers = append(out.closers, client.Close)
	}

	fetcher := source.NewSchemeFetcher(source.NewFileFetcher(cfg.DataFetchMaxBodyBytes), httpFetcher, gcsFetcher)
	out.Coordinates = source.NewCoordinateLoader(fetcher, cfg.DataCoordinatesLocation)
	out.Fixtures = source.NewFixtureLoader(fetcher, cfg.DataFixturesLocation)
	if strings.TrimSpace(cfg.DataStadiumInfoLocation) != "" {
		out.Infos = source.NewInfoLoader(fetcher, cfg.DataStadiumInfoLocation)
	}

	logger.Info("using dataset files",
		"coordinates", cfg.DataCoordinatesLocation,
		"fixtures", cfg.DataFixturesLocation,
		"stadium_info", cfg.DataStadiumInfoLocation,
	)
	return out, nil
}

func usesGCS(locations ...string) bool {
	for _, location := range locations {
		if strings.HasPrefix(strings.TrimSpace(location), "gs://") {
			return true
		}
	}
	return false
}
