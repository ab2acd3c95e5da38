package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// baseline clears the keys the tests depend on so a developer's shell does
// not leak into them.
func baseline(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_CONFIG_FILE", "APP_HTTP_ADDR", "APP_SERVICE_NAME", "SWAGGER_ENABLED",
		"UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS", "PYROSCOPE_ENABLED",
		"PYROSCOPE_SERVER_ADDRESS", "PYROSCOPE_APP_NAME", "PPROF_ENABLED", "PPROF_ADDR",
		"CORS_ALLOWED_ORIGINS", "DB_DISABLE_PREPARED_BINARY_RESULT", "DB_BOOTSTRAP_SEED",
		"CACHE_ENABLED", "CACHE_TTL", "CACHE_MAX_ENTRIES", "DATA_SOURCE",
		"DATA_COORDINATES_LOCATION", "DATA_FIXTURES_LOCATION", "DATA_STADIUM_INFO_LOCATION",
		"DATA_CIRCUIT_FAILURE_COUNT", "SCRAPER_WORKERS", "SCRAPER_TIME_SHIFT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestLoad_Defaults(t *testing.T) {
	baseline(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger on in dev")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
	if !cfg.DBDisablePreparedBinary || cfg.DBBootstrapSeed {
		t.Fatalf("unexpected db flags: binary=%v seed=%v", cfg.DBDisablePreparedBinary, cfg.DBBootstrapSeed)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute || cfg.CacheMaxEntries != 1024 {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s max=%d", cfg.CacheEnabled, cfg.CacheTTL, cfg.CacheMaxEntries)
	}
	if cfg.DataSource != DataSourceFiles {
		t.Fatalf("unexpected data source: %q", cfg.DataSource)
	}
	if cfg.DataCoordinatesLocation != "data/stadium_coordinates.csv" || cfg.DataFixturesLocation != "data/fixtures.csv" {
		t.Fatalf("unexpected data locations: %q %q", cfg.DataCoordinatesLocation, cfg.DataFixturesLocation)
	}
	if cfg.DataStadiumInfoLocation != "" {
		t.Fatalf("expected stadium info location to be optional, got %q", cfg.DataStadiumInfoLocation)
	}
	if cfg.DataCircuitFailureCount != 5 || cfg.DataCircuitHalfOpenMaxReq != 2 {
		t.Fatalf("unexpected circuit defaults: failures=%d half-open=%d", cfg.DataCircuitFailureCount, cfg.DataCircuitHalfOpenMaxReq)
	}
	if cfg.ScraperWorkers != 40 || cfg.ScraperTimeShift != 3*time.Hour {
		t.Fatalf("unexpected scraper defaults: workers=%d shift=%s", cfg.ScraperWorkers, cfg.ScraperTimeShift)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected pyroscope app name to follow service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "app env", env: map[string]string{"APP_ENV": "qa"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true"}},
		{name: "pyroscope without server", env: map[string]string{"PYROSCOPE_ENABLED": "true"}},
		{name: "prepared binary flag", env: map[string]string{"DB_DISABLE_PREPARED_BINARY_RESULT": "sometimes"}},
		{name: "cache ttl", env: map[string]string{"CACHE_TTL": "soon"}},
		{name: "negative cache size", env: map[string]string{"CACHE_MAX_ENTRIES": "-1"}},
		{name: "data source", env: map[string]string{"DATA_SOURCE": "sqlite"}},
		{name: "circuit threshold", env: map[string]string{"DATA_SOURCE": DataSourcePostgres, "DATA_CIRCUIT_FAILURE_COUNT": "0"}},
		{name: "scraper workers", env: map[string]string{"SCRAPER_WORKERS": "many"}},
		{name: "missing config file", env: map[string]string{"APP_CONFIG_FILE": filepath.Join(t.TempDir(), "missing.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", tt.env)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	baseline(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `other=1,uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")
	t.Setenv("APP_SERVICE_NAME", "matchmap-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://map.example.com, http://localhost:5173 ")
	t.Setenv("SCRAPER_TIME_SHIFT", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger off in prod")
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected blank pprof addr to fall back, got %q", cfg.PprofAddr)
	}
	if cfg.PyroscopeAppName != "matchmap-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
	if cfg.ScraperTimeShift != 2*time.Hour {
		t.Fatalf("unexpected scraper time shift: %s", cfg.ScraperTimeShift)
	}
}

func TestLoad_ConfigFileLayeredUnderEnv(t *testing.T) {
	baseline(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app_http_addr: \":9090\"\ncache_ttl: 5m\ndata_source: memory\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("APP_CONFIG_FILE", path)
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected file value for APP_HTTP_ADDR, got %q", cfg.HTTPAddr)
	}
	if cfg.DataSource != DataSourceMemory {
		t.Fatalf("expected file value for DATA_SOURCE, got %q", cfg.DataSource)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("expected env to override file CACHE_TTL, got %s", cfg.CacheTTL)
	}
}
