package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/stadium-matchmap/internal/config"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/matchmap"
	"github.com/riskibarqy/stadium-matchmap/internal/interfaces/httpapi"
	"github.com/riskibarqy/stadium-matchmap/internal/observability"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/cache"
	idgen "github.com/riskibarqy/stadium-matchmap/internal/platform/id"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
)

// App is the assembled API process: dataset sources, the map service and
// the HTTP server in front of it.
type App struct {
	Server  *http.Server
	Maps    *usecase.MapService
	Metrics *observability.Recorder

	sources *datasetSources
	logger  *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sources, err := buildDatasetSources(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build dataset sources: %w", err)
	}

	var store *cache.Store[matchmap.Resolution]
	if cfg.CacheEnabled {
		store = cache.NewStore[matchmap.Resolution](cfg.CacheTTL, cfg.CacheMaxEntries)
	}

	recorder := observability.NewRecorder()
	maps := usecase.NewMapService(usecase.MapServiceConfig{
		Coordinates: sources.Coordinates,
		Fixtures:    sources.Fixtures,
		Infos:       sources.Infos,
		Cache:       store,
		IDs:         idgen.NewUUIDGenerator(),
		Metrics:     recorder,
		Logger:      logger,
	})

	server, err := NewHTTPServer(cfg, logger, maps, recorder)
	if err != nil {
		_ = sources.close()
		return nil, err
	}

	return &App{
		Server:  server,
		Maps:    maps,
		Metrics: recorder,
		sources: sources,
		logger:  logger,
	}, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger, maps httpapi.MapService, recorder *observability.Recorder) (*http.Server, error) {
	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalToken:      cfg.InternalToken,
	}
	if cfg.MetricsEnabled && recorder != nil {
		routerCfg.Metrics = recorder
		routerCfg.MetricsHandler = recorder.Handler()
	}

	handler := httpapi.NewHandler(maps, logger)
	router := httpapi.NewRouter(handler, logger, routerCfg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// LoadInitial runs the first dataset load. A failure leaves the service
// running but not ready; POST /v1/internal/reload can retry it.
func (a *App) LoadInitial(ctx context.Context) {
	if _, err := a.Maps.Load(ctx); err != nil {
		a.logger.ErrorContext(ctx, "initial dataset load failed, serving not ready", "error", err)
	}
}

func (a *App) Close() error {
	if a.sources == nil {
		return nil
	}
	return a.sources.close()
}
