package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/resilience"
	"github.com/riskibarqy/stadium-matchmap/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultMaxBodyBytes = 16 << 20
	maxRedirects        = 5
)

var (
	errTransient    = crerr.New("dataset origin transient failure")
	errDatasetLarge = crerr.New("dataset exceeds size limit")
)

// Fetcher returns the raw bytes stored at a dataset location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FileFetcher reads local paths. maxBytes <= 0 selects the default limit.
type FileFetcher struct {
	maxBytes int64
}

func NewFileFetcher(maxBytes int) *FileFetcher {
	return &FileFetcher{maxBytes: bodyLimit(maxBytes)}
}

func (f *FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, "file://")
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, crerr.Wrapf(err, "open dataset file %s", path)
	}
	defer file.Close()

	raw, err := readLimited(file, f.maxBytes)
	if err != nil {
		return nil, crerr.Wrapf(err, "read dataset file %s", path)
	}
	return raw, nil
}

// readLimited fails instead of truncating when r holds more than limit
// bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, crerr.Wrapf(errDatasetLarge, "more than %d bytes", limit)
	}
	return raw, nil
}

func bodyLimit(maxBytes int) int64 {
	if maxBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return int64(maxBytes)
}

type HTTPFetcherConfig struct {
	Client         *fasthttp.Client
	Timeout        time.Duration
	MaxRetries     int
	MaxBodyBytes   int
	Logger         *logging.Logger
	BreakerEnabled bool
	Breaker        resilience.BreakerConfig
}

// HTTPFetcher downloads datasets with bounded retries. Up to five redirects
// are followed, each hop bounded by the request timeout. Transport errors,
// 429 and 5xx responses are retried and count against the breaker of the
// origin host.
type HTTPFetcher struct {
	client     *fasthttp.Client
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
	breakers   *resilience.Group
	backoff    func(attempt int) time.Duration
}

func NewHTTPFetcher(cfg HTTPFetcherConfig) *HTTPFetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	maxBody := int(bodyLimit(cfg.MaxBodyBytes))
	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{
			Name:                "stadium-matchmap",
			MaxResponseBodySize: maxBody,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	f := &HTTPFetcher{
		client:     client,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
	if cfg.BreakerEnabled {
		f.breakers = resilience.NewGroup(cfg.Breaker, func(host string, from, to resilience.State) {
			logger.Warn("dataset origin breaker changed state", "host", host, "from", from, "to", to)
		})
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if f.breakers == nil {
		return f.fetchWithRetry(ctx, location)
	}

	var raw []byte
	err := f.breakers.Do(originHost(location), func() error {
		var fetchErr error
		raw, fetchErr = f.fetchWithRetry(ctx, location)
		return fetchErr
	}, isTransient)
	var open *resilience.OpenError
	if crerr.As(err, &open) {
		f.logger.WarnContext(ctx, "dataset origin breaker rejected request", "location", redactURL(location), "retry_after", open.RetryAfter)
		return nil, fmt.Errorf("%w: dataset origin %s is temporarily unavailable", usecase.ErrDependencyUnavailable, open.Key)
	}
	return raw, err
}

func originHost(location string) string {
	if parsed, err := url.Parse(location); err == nil && parsed.Host != "" {
		return strings.ToLower(parsed.Host)
	}
	return location
}

func (f *HTTPFetcher) fetchWithRetry(ctx context.Context, location string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := f.do(ctx, location)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == f.maxRetries {
			break
		}

		timer := time.NewTimer(f.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	f.logger.WarnContext(ctx, "dataset request failed", "location", redactURL(location), "error", lastErr)
	return nil, lastErr
}

func (f *HTTPFetcher) do(ctx context.Context, location string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(location)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv, application/json, */*")

	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	req.SetTimeout(timeout)
	if err := f.client.DoRedirects(req, resp, maxRedirects); err != nil {
		switch {
		case crerr.Is(err, fasthttp.ErrBodyTooLarge):
			return nil, crerr.Wrapf(crerr.Mark(err, errDatasetLarge), "dataset %s", redactURL(location))
		case crerr.Is(err, fasthttp.ErrTooManyRedirects), crerr.Is(err, fasthttp.ErrMissingLocation):
			return nil, crerr.Wrapf(err, "dataset %s", redactURL(location))
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "send request"), errTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case isRetryableStatus(status):
		return nil, crerr.Mark(crerr.Newf("origin status=%d body=%s", status, abbreviateBody(body)), errTransient)
	default:
		return nil, crerr.Newf("origin status=%d body=%s", status, abbreviateBody(body))
	}
}

// GCSFetcher reads gs://bucket/object locations.
type GCSFetcher struct {
	client   *storage.Client
	maxBytes int64
}

func NewGCSFetcher(client *storage.Client, maxBytes int) *GCSFetcher {
	return &GCSFetcher{client: client, maxBytes: bodyLimit(maxBytes)}
}

func (f *GCSFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	bucket, object, err := splitGCSLocation(location)
	if err != nil {
		return nil, err
	}

	reader, err := f.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if crerr.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: object %s", usecase.ErrNotFound, location)
		}
		return nil, crerr.Wrapf(err, "open object %s", location)
	}
	defer reader.Close()

	raw, err := readLimited(reader, f.maxBytes)
	if err != nil {
		return nil, crerr.Wrapf(err, "read object %s", location)
	}
	return raw, nil
}

func splitGCSLocation(location string) (string, string, error) {
	rest, ok := strings.CutPrefix(location, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%w: not a gs:// location: %s", usecase.ErrInvalidInput, location)
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: gs location needs bucket and object: %s", usecase.ErrInvalidInput, location)
	}
	return bucket, object, nil
}

// SchemeFetcher dispatches on the location scheme. Plain paths and file://
// go to the file fetcher.
type SchemeFetcher struct {
	file Fetcher
	http Fetcher
	gcs  Fetcher
}

func NewSchemeFetcher(file, http, gcs Fetcher) *SchemeFetcher {
	return &SchemeFetcher{file: file, http: http, gcs: gcs}
}

func (f *SchemeFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	var target Fetcher
	switch schemeOf(location) {
	case "", "file":
		target = f.file
	case "http", "https":
		target = f.http
	case "gs":
		target = f.gcs
	default:
		return nil, fmt.Errorf("%w: unsupported dataset location %q", usecase.ErrInvalidInput, location)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: no fetcher configured for %q", usecase.ErrDependencyUnavailable, location)
	}
	return target.Fetch(ctx, location)
}

func schemeOf(location string) string {
	scheme, _, ok := strings.Cut(location, "://")
	if !ok {
		return ""
	}
	return strings.ToLower(scheme)
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	parsed.User = url.User("REDACTED")
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
