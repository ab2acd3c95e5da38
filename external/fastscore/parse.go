package fastscore

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	matchSelector = "div.match-grid-match"
	teamSelector  = "div.col-12.text-left.text-truncate.align-self-center.p-0"
	clockLayout   = "15:04"
)

// Match is one row of the fixtures grid.
type Match struct {
	HomeTeam   string
	AwayTeam   string
	PreviewURL string
}

// MatchDetails is what a match preview page carries. Missing values are empty.
type MatchDetails struct {
	Day     string
	Date    string
	Time    string
	Stadium string
}

// ParseMatchList reads the matches of one fixtures page. Rows without exactly
// two team cells are skipped.
func ParseMatchList(doc *goquery.Document, base *url.URL) []Match {
	var out []Match
	doc.Find(matchSelector).Each(func(_ int, sel *goquery.Selection) {
		teams := sel.Find(teamSelector)
		if teams.Length() != 2 {
			return
		}

		href, _ := sel.Attr("data-href")
		out = append(out, Match{
			HomeTeam:   strings.TrimSpace(teams.Eq(0).Text()),
			AwayTeam:   strings.TrimSpace(teams.Eq(1).Text()),
			PreviewURL: resolve(base, href),
		})
	})
	return out
}

// HasMatches reports whether a fixtures page still lists any match.
func HasMatches(doc *goquery.Document) bool {
	return doc.Find(matchSelector).Length() > 0
}

// ParseMatchDetails reads date, kick-off and venue from a preview page. The
// kick-off is moved by shift and wraps around midnight.
func ParseMatchDetails(doc *goquery.Document, stadiumPrefix string, shift time.Duration) MatchDetails {
	var details MatchDetails

	if span := doc.Find("span[data-date-match]").First(); span.Length() > 0 {
		day, date, ok := strings.Cut(strings.TrimSpace(span.Text()), ", ")
		if ok {
			details.Day = strings.TrimSpace(day)
			details.Date = strings.TrimSpace(date)
		}
	}

	if span := doc.Find("span[data-time-match]").First(); span.Length() > 0 {
		details.Time = ShiftClock(strings.TrimSpace(span.Text()), shift)
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.HasPrefix(href, stadiumPrefix) {
			return true
		}
		details.Stadium = strings.TrimSpace(a.Text())
		return false
	})

	return details
}

// ShiftClock moves an "HH:MM" clock by shift. Unparseable input yields "".
func ShiftClock(raw string, shift time.Duration) string {
	clock, err := time.Parse(clockLayout, raw)
	if err != nil {
		return ""
	}
	return clock.Add(shift).Format(clockLayout)
}

var parenGroup = regexp.MustCompile(`\(([^()]+)\)`)

// CityFromStadium takes the city from the last parenthesised group of a venue
// label such as "Sammy Ofer Stadium (Haifa-Israel)".
func CityFromStadium(label string) string {
	groups := parenGroup.FindAllStringSubmatch(label, -1)
	if len(groups) == 0 {
		return ""
	}
	city := groups[len(groups)-1][1]
	city = strings.ReplaceAll(city, "-", " ")
	city = strings.ReplaceAll(city, "Israel", "")
	return strings.TrimSpace(city)
}

var stadiumAliases = map[string]string{
	"Teddi Malcha Stadium": "Teddy Stadium",
}

// CleanStadiumName drops everything from the first parenthesis and applies the
// known spelling aliases.
func CleanStadiumName(label string) string {
	name := label
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if alias, ok := stadiumAliases[name]; ok {
		return alias
	}
	return name
}

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"02-01-2006",
	"2006-01-02",
}

// ParseDayFirstDate parses a day-first calendar date into a UTC midnight.
func ParseDayFirstDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(ref).String()
}
