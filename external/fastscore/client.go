package fastscore

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/stadium-matchmap/external/pagefetch"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

const (
	DefaultBaseURL     = "https://www.fastscore.com"
	DefaultFixturesURL = DefaultBaseURL + "/israel/ligat-haal/fixtures"

	defaultWorkers   = 40
	defaultTimeShift = 3 * time.Hour
	defaultMaxPages  = 50

	beerShevaHomeTeam = "Hapoel Be'er Sheva"
	beerShevaStadium  = "Turner Stadium (Be'er Sheva)"
)

type ClientConfig struct {
	Pages       *pagefetch.Fetcher
	BaseURL     string
	FixturesURL string
	Workers     int
	TimeShift   time.Duration
	MaxPages    int
	Logger      *logging.Logger
}

// Client scrapes the league fixtures grid and the per-match preview pages.
type Client struct {
	pages         *pagefetch.Fetcher
	baseURL       *url.URL
	fixturesURL   string
	stadiumPrefix string
	workers       int
	timeShift     time.Duration
	maxPages      int
	logger        *logging.Logger
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
		return nil, crerr.Wrapf(err, "parse fastscore base url %q", rawBase)
	}

	fixturesURL := strings.TrimSpace(cfg.FixturesURL)
	if fixturesURL == "" {
		fixturesURL = DefaultFixturesURL
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	shift := cfg.TimeShift
	if shift == 0 {
		shift = defaultTimeShift
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		pages:         pages,
		baseURL:       base,
		fixturesURL:   fixturesURL,
		stadiumPrefix: rawBase + "/stadium/",
		workers:       workers,
		timeShift:     shift,
		maxPages:      maxPages,
		logger:        logger,
	}, nil
}

// ListMatches walks "?page=N" from 1 until a page lists no match. A page that
// cannot be fetched ends the walk.
func (c *Client) ListMatches(ctx context.Context) ([]Match, error) {
	var matches []Match
	for page := 1; page <= c.maxPages; page++ {
		pageURL := fmt.Sprintf("%s?page=%d", c.fixturesURL, page)
		doc, err := c.pages.Document(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.WarnContext(ctx, "stop fixtures paging", "page", page, "error", err)
			break
		}
		if !HasMatches(doc) {
			break
		}
		matches = append(matches, ParseMatchList(doc, c.baseURL)...)
	}
	return matches, nil
}

// Hydrate fetches every preview page on the worker pool. The result keeps
// the order of matches; a failed page yields empty details.
func (c *Client) Hydrate(ctx context.Context, matches []Match) ([]MatchDetails, error) {
	details := make([]MatchDetails, len(matches))
	if len(matches) == 0 {
		return details, nil
	}

	pool, err := ants.NewPool(min(c.workers, len(matches)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, match := range matches {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			doc, err := c.pages.Document(ctx, match.PreviewURL)
			if err != nil {
				c.logger.WarnContext(ctx, "match preview unavailable",
					"match", match.HomeTeam+" vs "+match.AwayTeam,
					"error", err,
				)
				return
			}
			details[i] = ParseMatchDetails(doc, c.stadiumPrefix, c.timeShift)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListFixtures scrapes the whole league schedule and returns it normalized and
// sorted by date.
func (c *Client) ListFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	start := time.Now()

	matches, err := c.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.New("no matches found on fixtures pages")
	}

	details, err := c.Hydrate(ctx, matches)
	if err != nil {
		return nil, err
	}

	fixtures := Normalize(matches, details)
	c.logger.InfoContext(ctx, "fixtures scraped",
		"matches", len(matches),
		"fixtures", len(fixtures),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return fixtures, nil
}

// Normalize joins matches with their details. Home games of Hapoel Be'er Sheva
// are pinned to Turner Stadium, venue-less matches are dropped and the result
// is stable-sorted by date with undated fixtures last.
func Normalize(matches []Match, details []MatchDetails) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(matches))
	for i, match := range matches {
		var d MatchDetails
		if i < len(details) {
			d = details[i]
		}

		venue := d.Stadium
		if strings.Contains(match.HomeTeam, beerShevaHomeTeam) {
			venue = beerShevaStadium
		}
		if strings.TrimSpace(venue) == "" {
			continue
		}

		item := fixture.Fixture{
			HomeTeam: match.HomeTeam,
			AwayTeam: match.AwayTeam,
			Stadium:  CleanStadiumName(venue),
			City:     CityFromStadium(venue),
			Day:      d.Day,
			Time:     d.Time,
		}
		if date, ok := ParseDayFirstDate(d.Date); ok {
			item.Date = date
		}
		out = append(out, item)
	}

	slices.SortStableFunc(out, func(a, b fixture.Fixture) int {
		switch {
		case a.HasDate() && !b.HasDate():
			return -1
		case !a.HasDate() && b.HasDate():
			return 1
		}
		return cmp.Compare(a.Date.Unix(), b.Date.Unix())
	})
	return out
}
