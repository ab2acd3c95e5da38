package fastscore

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/stadium-matchmap/internal/domain/fixture"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestParseMatchList(t *testing.T) {
	doc := mustDoc(t, `
<div class="match-grid-match" data-href="/match/1">
  <div class="col-12 text-left text-truncate align-self-center p-0"> Maccabi Haifa </div>
  <div class="col-12 text-left text-truncate align-self-center p-0">Hapoel Tel Aviv</div>
</div>
<div class="match-grid-match" data-href="/match/2">
  <div class="col-12 text-left text-truncate align-self-center p-0">Only one</div>
</div>`)
	base, _ := url.Parse(DefaultBaseURL)

	got := ParseMatchList(doc, base)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].HomeTeam != "Maccabi Haifa" || got[0].AwayTeam != "Hapoel Tel Aviv" {
		t.Fatalf("unexpected teams: %+v", got[0])
	}
	if got[0].PreviewURL != "https://www.fastscore.com/match/1" {
		t.Fatalf("unexpected preview url: %s", got[0].PreviewURL)
	}
}

func TestParseMatchDetails(t *testing.T) {
	doc := mustDoc(t, `
<span data-date-match="1">Saturday, 24/08/2024</span>
<span data-time-match="1">22:30</span>
<a href="https://www.fastscore.com/team/x">Team</a>
<a href="https://www.fastscore.com/stadium/sammy-ofer">Sammy Ofer Stadium (Haifa-Israel)</a>`)

	got := ParseMatchDetails(doc, DefaultBaseURL+"/stadium/", 3*time.Hour)
	want := MatchDetails{
		Day:     "Saturday",
		Date:    "24/08/2024",
		Time:    "01:30",
		Stadium: "Sammy Ofer Stadium (Haifa-Israel)",
	}
	if got != want {
		t.Fatalf("unexpected details: got %+v want %+v", got, want)
	}
}

func TestParseMatchDetails_Missing(t *testing.T) {
	got := ParseMatchDetails(mustDoc(t, `<p>empty</p>`), DefaultBaseURL+"/stadium/", 3*time.Hour)
	if got != (MatchDetails{}) {
		t.Fatalf("expected empty details, got %+v", got)
	}
}

func TestShiftClock(t *testing.T) {
	cases := map[string]string{
		"19:00": "22:00",
		"21:15": "00:15",
		"TBD":   "",
	}
	for in, want := range cases {
		if got := ShiftClock(in, 3*time.Hour); got != want {
			t.Fatalf("ShiftClock(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCityFromStadium(t *testing.T) {
	cases := map[string]string{
		"Sammy Ofer Stadium (Haifa-Israel)":         "Haifa",
		"Turner Stadium (Be'er Sheva)":              "Be'er Sheva",
		"HaMoshava Stadium (Old) (Petah-Tikva)":     "Petah Tikva",
		"Bloomfield Stadium":                        "",
		"Teddi Malcha Stadium (Jerusalem - Israel)": "Jerusalem",
	}
	for in, want := range cases {
		if got := CityFromStadium(in); got != want {
			t.Fatalf("CityFromStadium(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanStadiumName(t *testing.T) {
	cases := map[string]string{
		"Sammy Ofer Stadium (Haifa-Israel)": "Sammy Ofer Stadium",
		"Teddi Malcha Stadium (Jerusalem)":  "Teddy Stadium",
		"Bloomfield Stadium":                "Bloomfield Stadium",
	}
	for in, want := range cases {
		if got := CleanStadiumName(in); got != want {
			t.Fatalf("CleanStadiumName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	matches := []Match{
		{HomeTeam: "Maccabi Haifa", AwayTeam: "Hapoel Tel Aviv"},
		{HomeTeam: "Hapoel Be'er Sheva", AwayTeam: "Beitar Jerusalem"},
		{HomeTeam: "Bnei Sakhnin", AwayTeam: "Maccabi Netanya"},
		{HomeTeam: "Beitar Jerusalem", AwayTeam: "Maccabi Tel Aviv"},
		{HomeTeam: "Hapoel Haifa", AwayTeam: "Ashdod"},
	}
	details := []MatchDetails{
		{Day: "Sunday", Date: "25/08/2024", Time: "21:00", Stadium: "Sammy Ofer Stadium (Haifa-Israel)"},
		{Day: "Saturday", Date: "24/08/2024", Time: "20:30", Stadium: "Something Else (Nowhere)"},
		{Day: "Monday", Date: "26/08/2024", Time: "19:00"},
		{Day: "Sunday", Date: "?", Stadium: "Teddi Malcha Stadium (Jerusalem-Israel)"},
		{Day: "Sunday", Date: "25/08/2024", Time: "19:00", Stadium: "Sammy Ofer Stadium (Haifa-Israel)"},
	}

	got := Normalize(matches, details)
	if len(got) != 4 {
		t.Fatalf("expected 4 fixtures, got %d: %+v", len(got), got)
	}

	if got[0].HomeTeam != "Hapoel Be'er Sheva" || got[0].Stadium != "Turner Stadium" || got[0].City != "Be'er Sheva" {
		t.Fatalf("expected Be'er Sheva home game first, got %+v", got[0])
	}
	if got[1].HomeTeam != "Maccabi Haifa" || got[2].HomeTeam != "Hapoel Haifa" {
		t.Fatalf("expected stable order for same date, got %s then %s", got[1].HomeTeam, got[2].HomeTeam)
	}
	if got[1].DateString() != "2024-08-25" || got[1].City != "Haifa" {
		t.Fatalf("unexpected normalized fixture: %+v", got[1])
	}
	if got[3].HasDate() || got[3].Stadium != "Teddy Stadium" {
		t.Fatalf("expected undated fixture last, got %+v", got[3])
	}
}

func TestParseDayFirstDate(t *testing.T) {
	got, ok := ParseDayFirstDate("03/02/2024")
	if !ok {
		t.Fatalf("expected date to parse")
	}
	want := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format(fixture.DateLayout), want.Format(fixture.DateLayout))
	}
	if _, ok := ParseDayFirstDate("N/A"); ok {
		t.Fatalf("expected N/A to be rejected")
	}
}
