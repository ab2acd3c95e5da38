package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/resilience"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
)

func newTestHTTPFetcher(maxRetries int, breaker *resilience.BreakerConfig) *HTTPFetcher {
	cfg := HTTPFetcherConfig{
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	}
	if breaker != nil {
		cfg.BreakerEnabled = true
		cfg.Breaker = *breaker
	}
	f := NewHTTPFetcher(cfg)
	f.backoff = func(int) time.Duration { return time.Millisecond }
	return f
}

func TestHTTPFetcher_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("stadium,city\nTeddy,Jerusalem\n"))
	}))
	defer server.Close()

	f := newTestHTTPFetcher(2, nil)
	raw, err := f.Fetch(context.Background(), server.URL+"/coordinates.csv")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(raw) != "stadium,city\nTeddy,Jerusalem\n" {
		t.Fatalf("unexpected body %q", raw)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestHTTPFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := newTestHTTPFetcher(3, nil)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call, got %d", got)
	}
}

func TestHTTPFetcher_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer healthy.Close()

	f := newTestHTTPFetcher(0, &resilience.BreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenProbes:   1,
	})

	if _, err := f.Fetch(context.Background(), server.URL+"/coordinates.csv"); err == nil {
		t.Fatalf("expected first fetch to fail")
	}
	_, err := f.Fetch(context.Background(), server.URL+"/fixtures.csv")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected breaker rejection, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected origin to be hit once, got %d", got)
	}

	if _, err := f.Fetch(context.Background(), healthy.URL+"/info.csv"); err != nil {
		t.Fatalf("other origin should not share the open breaker: %v", err)
	}
}

func TestOriginHost(t *testing.T) {
	if got := originHost("https://Data.Example.com:8443/a.csv?token=x"); got != "data.example.com:8443" {
		t.Fatalf("originHost=%q", got)
	}
	if got := originHost("data/a.csv"); got != "data/a.csv" {
		t.Fatalf("originHost for a path=%q", got)
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.csv")
	if err := os.WriteFile(path, []byte("home_team\nA\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f := NewFileFetcher(0)
	for _, location := range []string{path, "file://" + path} {
		raw, err := f.Fetch(context.Background(), location)
		if err != nil {
			t.Fatalf("Fetch(%q) error: %v", location, err)
		}
		if string(raw) != "home_team\nA\n" {
			t.Fatalf("unexpected content %q", raw)
		}
	}

	if _, err := f.Fetch(context.Background(), filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileFetcher_FailsOverSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.csv")
	content := "home_team,away_team,date\nA,B,2024-03-01\nC,D,2024-03-02\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if raw, err := NewFileFetcher(len(content)).Fetch(context.Background(), path); err != nil || string(raw) != content {
		t.Fatalf("expected a file at the limit to load, got %q err=%v", raw, err)
	}

	_, err := NewFileFetcher(len(content)-1).Fetch(context.Background(), path)
	if !errors.Is(err, errDatasetLarge) {
		t.Fatalf("expected size limit error, got %v", err)
	}

	items, err := NewFixtureLoader(NewFileFetcher(len(content)-1), path).LoadFixtures(context.Background())
	if err == nil {
		t.Fatalf("expected oversized fixtures to fail the load, got %d fixtures", len(items))
	}
}

func TestReadLimited(t *testing.T) {
	raw, err := readLimited(strings.NewReader("abcd"), 4)
	if err != nil || string(raw) != "abcd" {
		t.Fatalf("readLimited at limit = %q, %v", raw, err)
	}
	if _, err := readLimited(strings.NewReader("abcde"), 4); !errors.Is(err, errDatasetLarge) {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestHTTPFetcher_FailsOverSizeLimitWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(HTTPFetcherConfig{Timeout: 2 * time.Second, MaxRetries: 2, MaxBodyBytes: 4, Logger: logging.NewNop()})
	f.backoff = func(int) time.Duration { return time.Millisecond }

	if _, err := f.Fetch(context.Background(), server.URL); !errors.Is(err, errDatasetLarge) {
		t.Fatalf("expected size limit error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call, got %d", got)
	}
}

func TestHTTPFetcher_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/coordinates.csv", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/v2/coordinates.csv", http.StatusFound)
	})
	mux.HandleFunc("/v2/coordinates.csv", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("stadium,city\nTeddy,Jerusalem\n"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	raw, err := newTestHTTPFetcher(0, nil).Fetch(context.Background(), server.URL+"/coordinates.csv")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(raw) != "stadium,city\nTeddy,Jerusalem\n" {
		t.Fatalf("unexpected body %q", raw)
	}
}

func TestHTTPFetcher_RedirectLoopIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer server.Close()

	if _, err := newTestHTTPFetcher(2, nil).Fetch(context.Background(), server.URL+"/loop"); err == nil {
		t.Fatalf("expected redirect loop to fail")
	}
	if got := calls.Load(); got != maxRedirects+1 {
		t.Fatalf("expected %d calls for one redirect chain, got %d", maxRedirects+1, got)
	}
}

type recordingFetcher struct {
	locations []string
}

func (f *recordingFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	f.locations = append(f.locations, location)
	return []byte("ok"), nil
}

func TestSchemeFetcher_Dispatch(t *testing.T) {
	file, web, gcs := &recordingFetcher{}, &recordingFetcher{}, &recordingFetcher{}
	f := NewSchemeFetcher(file, web, gcs)

	for _, location := range []string{"data/a.csv", "file:///tmp/a.csv", "https://example.com/a.csv", "gs://bucket/a.csv"} {
		if _, err := f.Fetch(context.Background(), location); err != nil {
			t.Fatalf("Fetch(%q) error: %v", location, err)
		}
	}
	if len(file.locations) != 2 || len(web.locations) != 1 || len(gcs.locations) != 1 {
		t.Fatalf("unexpected dispatch: file=%v web=%v gcs=%v", file.locations, web.locations, gcs.locations)
	}

	if _, err := f.Fetch(context.Background(), "ftp://example.com/a.csv"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown scheme, got %v", err)
	}

	noGCS := NewSchemeFetcher(file, web, nil)
	if _, err := noGCS.Fetch(context.Background(), "gs://bucket/a.csv"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected unavailable without gcs fetcher, got %v", err)
	}
}

func TestSplitGCSLocation(t *testing.T) {
	bucket, object, err := splitGCSLocation("gs://datasets/israel/fixtures.csv")
	if err != nil {
		t.Fatalf("split error: %v", err)
	}
	if bucket != "datasets" || object != "israel/fixtures.csv" {
		t.Fatalf("unexpected split %q %q", bucket, object)
	}
	if _, _, err := splitGCSLocation("gs://datasets"); err == nil {
		t.Fatalf("expected error without object")
	}
}
