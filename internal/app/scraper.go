package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/stadium-matchmap/external/fastscore"
	"github.com/riskibarqy/stadium-matchmap/external/pagefetch"
	"github.com/riskibarqy/stadium-matchmap/external/wikipedia"
	"github.com/riskibarqy/stadium-matchmap/internal/config"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/stadium-matchmap/internal/infrastructure/source"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
)

// Scraper wires the Wikipedia and fastscore scrapers to the CSV output
// directory and, when enabled, to the Postgres dataset tables.
type Scraper struct {
	Sync *usecase.DatasetSyncService
	CSV  *source.CSVSink

	closers []func() error
}

func NewScraper(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Scraper, error) {
	if logger == nil {
		logger = logging.Default()
	}

	pages := pagefetch.New(pagefetch.Config{
		Timeout:    cfg.ScraperTimeout,
		MaxRetries: cfg.DataFetchMaxRetries,
		Logger:     logger,
	})

	directory, err := wikipedia.NewClient(wikipedia.ClientConfig{
		Pages:       pages,
		ListURL:     cfg.ScraperStadiumListURL,
		Concurrency: cfg.ScraperConcurrency,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build wikipedia client: %w", err)
	}

	feed, err := fastscore.NewClient(fastscore.ClientConfig{
		Pages:       pages,
		FixturesURL: cfg.ScraperFixturesURL,
		Workers:     cfg.ScraperWorkers,
		TimeShift:   cfg.ScraperTimeShift,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build fastscore client: %w", err)
	}

	csvSink := source.NewCSVSink(cfg.ScraperOutputDir)
	out := &Scraper{CSV: csvSink}

	sinks := []usecase.DatasetSink{csvSink}
	var coordinates stadium.CoordinateSource = source.NewCoordinateLoader(
		source.NewFileFetcher(cfg.DataFetchMaxBodyBytes),
		csvSink.Path(source.DefaultCoordinatesFile),
	)
	if cfg.ScraperStorePostgres {
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.closers = append(out.closers, db.Close)

		store := postgres.NewDatasetStore(db)
		sinks = append(sinks, store)
		coordinates = store
	}

	out.Sync = usecase.NewDatasetSyncService(directory, feed, coordinates, logger, sinks...)
	return out, nil
}

func (s *Scraper) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
