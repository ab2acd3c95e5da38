package wikipedia

import (
	"context"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/stadium-matchmap/external/pagefetch"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultBaseURL        = "https://en.wikipedia.org"
	DefaultStadiumListURL = DefaultBaseURL + "/wiki/List_of_football_stadiums_in_Israel"
	defaultConcurrency    = 8
	unknownName           = "Unknown"
)

type ClientConfig struct {
	Pages       *pagefetch.Fetcher
	BaseURL     string
	ListURL     string
	Concurrency int
	Logger      *logging.Logger
}

// Client scrapes the stadium list article and the per-stadium articles.
type Client struct {
	pages       *pagefetch.Fetcher
	baseURL     *url.URL
	listURL     string
	concurrency int
	logger      *logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	pages := cfg.Pages
	if pages == nil {
		pages = pagefetch.New(pagefetch.Config{Logger: logger})
	}

	rawBase := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	base, err := url.Parse(rawBase)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse wikipedia base url %q", rawBase)
	}

	listURL := strings.TrimSpace(cfg.ListURL)
	if listURL == "" {
		listURL = DefaultStadiumListURL
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Client{
		pages:       pages,
		baseURL:     base,
		listURL:     listURL,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

// ListStadiums reads the first wikitable of the list article. The returned
// rows carry names and article URLs only.
func (c *Client) ListStadiums(ctx context.Context) ([]stadium.RawCoordinateRow, error) {
	doc, err := c.pages.Document(ctx, c.listURL)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch stadium list")
	}

	rows := ParseStadiumList(doc, c.baseURL)
	if len(rows) == 0 {
		return nil, crerr.Newf("no stadium rows found at %s", c.listURL)
	}
	return rows, nil
}

// FetchCoordinates visits each stadium article and fills latitude and
// longitude from its geo microformat. Pages that fail or carry no geo span
// leave the row's coordinates empty.
func (c *Client) FetchCoordinates(ctx context.Context, rows []stadium.RawCoordinateRow) ([]stadium.RawCoordinateRow, error) {
	out := append([]stadium.RawCoordinateRow(nil), rows...)

	p := pool.New().WithMaxGoroutines(c.concurrency).WithContext(ctx)
	for i := range out {
		if strings.TrimSpace(out[i].StadiumURL) == "" {
			continue
		}
		p.Go(func(ctx context.Context) error {
			doc, err := c.pages.Document(ctx, out[i].StadiumURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.WarnContext(ctx, "skip stadium page", "stadium", out[i].Stadium, "error", err)
				return nil
			}
			if lat, lng, ok := ParseGeo(doc); ok {
				out[i].Latitude = lat
				out[i].Longitude = lng
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// FetchInfos scrapes the infobox of every row's article, in row order.
// Pages that cannot be fetched are skipped.
func (c *Client) FetchInfos(ctx context.Context, rows []stadium.RawCoordinateRow) ([]stadium.Info, error) {
	results := make([]*stadium.Info, len(rows))

	p := pool.New().WithMaxGoroutines(c.concurrency).WithContext(ctx)
	for i, row := range rows {
		if strings.TrimSpace(row.StadiumURL) == "" {
			continue
		}
		p.Go(func(ctx context.Context) error {
			doc, err := c.pages.Document(ctx, row.StadiumURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.WarnContext(ctx, "skip stadium info page", "stadium", row.Stadium, "error", err)
				return nil
			}
			info := ParseInfobox(doc, row.Stadium, row.StadiumURL)
			results[i] = &info
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make([]stadium.Info, 0, len(results))
	for _, item := range results {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out, nil
}
