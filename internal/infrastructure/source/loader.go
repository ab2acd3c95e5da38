package source

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CoordinateLoader reads the coordinate dataset at a fixed location.
type CoordinateLoader struct {
	fetcher  Fetcher
	location string
}

func NewCoordinateLoader(fetcher Fetcher, location string) *CoordinateLoader {
	return &CoordinateLoader{fetcher: fetcher, location: location}
}

func (l *CoordinateLoader) LoadCoordinates(ctx context.Context) ([]stadium.RawCoordinateRow, error) {
	rows, err := loadRows(ctx, l.fetcher, l.location)
	if err != nil {
		return nil, crerr.Wrap(err, "load coordinates")
	}
	return CoordinateRows(rows), nil
}

// FixtureLoader reads the fixture dataset in either schema.
type FixtureLoader struct {
	fetcher  Fetcher
	location string
}

func NewFixtureLoader(fetcher Fetcher, location string) *FixtureLoader {
	return &FixtureLoader{fetcher: fetcher, location: location}
}

func (l *FixtureLoader) LoadFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	rows, err := loadRows(ctx, l.fetcher, l.location)
	if err != nil {
		return nil, crerr.Wrap(err, "load fixtures")
	}
	return Fixtures(rows), nil
}

// InfoLoader reads stadium metadata. An empty location yields no entries.
type InfoLoader struct {
	fetcher  Fetcher
	location string
}

func NewInfoLoader(fetcher Fetcher, location string) *InfoLoader {
	return &InfoLoader{fetcher: fetcher, location: location}
}

func (l *InfoLoader) LoadInfos(ctx context.Context) ([]stadium.Info, error) {
	if strings.TrimSpace(l.location) == "" {
		return nil, nil
	}
	rows, err := loadRows(ctx, l.fetcher, l.location)
	if err != nil {
		return nil, crerr.Wrap(err, "load stadium info")
	}
	return Infos(rows), nil
}

var loaderTracer = tracing.New("stadium-matchmap/internal/infrastructure/source")

func loadRows(ctx context.Context, fetcher Fetcher, location string) (rows []Row, err error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, crerr.New("dataset location is required")
	}

	ctx, span := loaderTracer.Start(ctx, "source.loadRows",
		trace.WithAttributes(attribute.String("dataset.location", redactURL(location))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "dataset load failed")
		} else {
			span.SetAttributes(attribute.Int("dataset.rows", len(rows)))
		}
		span.End()
	}()

	raw, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if isJSONLocation(location) {
		return ReadJSON(raw)
	}
	return ReadCSV(bytes.NewReader(raw))
}

func isJSONLocation(location string) bool {
	p := location
	if parsed, err := url.Parse(location); err == nil && parsed.Path != "" {
		p = parsed.Path
	}
	return strings.EqualFold(path.Ext(p), ".json")
}
