package fixture

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func sampleFixtures(t *testing.T) []Fixture {
	return []Fixture{
		{HomeTeam: "Maccabi Haifa", AwayTeam: "Hapoel Beer Sheva", Stadium: "Sammy Ofer", City: "Haifa", Date: date(t, "2024-03-01")},
		{HomeTeam: "Maccabi Tel Aviv", AwayTeam: "Beitar Jerusalem", Stadium: "Bloomfield", City: "Tel Aviv", Date: date(t, "2024-03-10")},
		{HomeTeam: "Beitar Jerusalem", AwayTeam: "Hapoel Haifa", Stadium: "Teddy", City: "Jerusalem"},
	}
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	fixtures := sampleFixtures(t)
	got := Apply(fixtures, Criteria{})
	if len(got) != len(fixtures) {
		t.Fatalf("expected %d fixtures, got %d", len(fixtures), len(got))
	}
	for i := range fixtures {
		if got[i].Stadium != fixtures[i].Stadium {
			t.Fatalf("expected input order preserved at %d", i)
		}
	}
}

func TestApply_InvalidBoundBehavesAsAbsent(t *testing.T) {
	fixtures := sampleFixtures(t)
	withInvalid := Apply(fixtures, Criteria{Start: ParseDateBound("not-a-date"), TeamContains: "haifa"})
	without := Apply(fixtures, Criteria{TeamContains: "haifa"})

	if len(withInvalid) != len(without) {
		t.Fatalf("expected invalid bound to be ignored: %d vs %d", len(withInvalid), len(without))
	}
}

func TestApply_DateBoundsAreInclusive(t *testing.T) {
	fixtures := sampleFixtures(t)
	got := Apply(fixtures, Criteria{Start: date(t, "2024-03-01"), End: date(t, "2024-03-01")})
	if len(got) != 1 || got[0].Stadium != "Sammy Ofer" {
		t.Fatalf("expected only the 2024-03-01 fixture, got %+v", got)
	}
}

func TestApply_UndatedFixtureExcludedWhenBoundPresent(t *testing.T) {
	fixtures := sampleFixtures(t)
	got := Apply(fixtures, Criteria{End: date(t, "2030-01-01")})
	if len(got) != 2 {
		t.Fatalf("expected undated fixture to be dropped, got %d fixtures", len(got))
	}
	for _, item := range got {
		if !item.HasDate() {
			t.Fatalf("unexpected undated fixture in result: %+v", item)
		}
	}
}

func TestApply_TextFilters(t *testing.T) {
	fixtures := sampleFixtures(t)

	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{name: "team matches home or away", criteria: Criteria{TeamContains: "HAIFA"}, want: 2},
		{name: "team without match", criteria: Criteria{TeamContains: "barcelona"}, want: 0},
		{name: "city substring", criteria: Criteria{CityContains: " tel "}, want: 1},
		{name: "city and team combined", criteria: Criteria{CityContains: "jerusalem", TeamContains: "beitar"}, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(fixtures, tc.criteria); len(got) != tc.want {
				t.Fatalf("expected %d fixtures, got %d", tc.want, len(got))
			}
		})
	}
}

func TestParseDateBound(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2024-03-01", want: "2024-03-01"},
		{raw: "01/03/2024", want: ""},
		{raw: "2024-03-01T00:00:00Z", want: "2024-03-01"},
		{raw: "garbage", want: ""},
		{raw: "  ", want: ""},
	}

	for _, tc := range tests {
		got := ParseDateBound(tc.raw)
		if tc.want == "" {
			if !got.IsZero() {
				t.Fatalf("ParseDateBound(%q) = %v, want zero", tc.raw, got)
			}
			continue
		}
		if got.Format(DateLayout) != tc.want {
			t.Fatalf("ParseDateBound(%q) = %v, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestCriteria_Key(t *testing.T) {
	a := Criteria{CityContains: " Haifa ", TeamContains: "Maccabi"}
	b := Criteria{CityContains: "haifa", TeamContains: "MACCABI"}
	if a.Key() != b.Key() {
		t.Fatalf("expected equivalent criteria to share a key: %q vs %q", a.Key(), b.Key())
	}
	if !(Criteria{}).IsZero() || a.IsZero() {
		t.Fatalf("unexpected IsZero result")
	}
}
