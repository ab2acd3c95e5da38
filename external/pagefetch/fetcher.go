package pagefetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

const (
	defaultUserAgent = "stadium-matchmap-scraper/1.0"
	maxPageBytes     = 8 << 20
)

// ErrPageNotFound is returned for 404 and 410 responses.
var ErrPageNotFound = crerr.New("page not found")

var errTransient = crerr.New("page fetch transient failure")

type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
	Logger     *logging.Logger
}

// Fetcher downloads HTML pages and parses them with goquery.
type Fetcher struct {
	httpClient *http.Client
	maxRetries int
	userAgent  string
	logger     *logging.Logger
	backoff    func(attempt int) time.Duration
}

func New(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Fetcher{
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		userAgent:  userAgent,
		logger:     logger,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	raw, err := f.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse html %s", pageURL)
	}
	return doc, nil
}

// Get returns the page body, retrying transport errors, 429 and 5xx.
func (f *Fetcher) Get(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		raw, err := f.do(ctx, pageURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) || attempt == f.maxRetries {
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

	f.logger.WarnContext(ctx, "page fetch failed", "url", pageURL, "error", lastErr)
	return nil, lastErr
}

func (f *Fetcher) do(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "get %s", pageURL), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read %s", pageURL), errTransient)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, crerr.Wrapf(ErrPageNotFound, "get %s", pageURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, crerr.Mark(crerr.Newf("get %s: status=%d", pageURL, resp.StatusCode), errTransient)
	default:
		return nil, crerr.Newf("get %s: status=%d", pageURL, resp.StatusCode)
	}
}
