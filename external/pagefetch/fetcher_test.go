package pagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

func newTestFetcher(retries int) *Fetcher {
	f := New(Config{MaxRetries: retries, Logger: logging.NewNop()})
	f.backoff = func(int) time.Duration { return time.Millisecond }
	return f
}

func TestFetcher_DocumentRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected user agent header")
		}
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`<html><body><span class="geo">31.75; 35.19</span></body></html>`))
	}))
	defer server.Close()

	doc, err := newTestFetcher(2).Document(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if got := doc.Find("span.geo").Text(); got != "31.75; 35.19" {
		t.Fatalf("unexpected geo text %q", got)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestFetcher_NotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestFetcher(3).Get(context.Background(), server.URL)
	if !crerr.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries for 404, got %d calls", calls.Load())
	}
}
